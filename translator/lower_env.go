package translator

import (
	"github.com/evmc-go/evmc/core/types"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerEnvOp implements the environment- and block-information opcodes:
// the ones that read Env directly or that touch Host for another account's
// state (BALANCE, EXTCODE*, BLOCKHASH).
func (tr *lowering) lowerEnvOp(op opcodes.OpCode) {
	b := tr.b
	switch op {
	case opcodes.ADDRESS:
		tr.pushAddress(func(ctx *execctx.Context) types.Address { return ctx.Env.Address })
	case opcodes.ORIGIN:
		tr.pushAddress(func(ctx *execctx.Context) types.Address { return ctx.Env.Origin })
	case opcodes.CALLER:
		tr.pushAddress(func(ctx *execctx.Context) types.Address { return ctx.Env.Caller })
	case opcodes.CALLVALUE:
		tr.push(func(ctx *execctx.Context) execctx.Word { return ctx.Env.CallValue })
	case opcodes.CALLDATALOAD:
		var offset uint64
		b.Emit(func(ctx *execctx.Context) { offset = pop(ctx).Uint64() })
		tr.push(func(ctx *execctx.Context) execctx.Word {
			return wordFromWindow(ctx.Env.CallData, offset, 32)
		})
	case opcodes.CALLDATASIZE:
		tr.push(func(ctx *execctx.Context) execctx.Word {
			var w execctx.Word
			w.SetUint64(uint64(len(ctx.Env.CallData)))
			return w
		})
	case opcodes.CALLDATACOPY:
		tr.lowerCopyOp(func(ctx *execctx.Context) []byte { return ctx.Env.CallData })
	case opcodes.CODESIZE:
		tr.push(func(ctx *execctx.Context) execctx.Word {
			var w execctx.Word
			w.SetUint64(uint64(len(ctx.Env.Code)))
			return w
		})
	case opcodes.CODECOPY:
		tr.lowerCopyOp(func(ctx *execctx.Context) []byte { return ctx.Env.Code })
	case opcodes.GASPRICE:
		tr.push(func(ctx *execctx.Context) execctx.Word { return ctx.Env.GasPrice })
	case opcodes.RETURNDATASIZE:
		tr.push(func(ctx *execctx.Context) execctx.Word {
			var w execctx.Word
			w.SetUint64(uint64(len(ctx.ReturnData)))
			return w
		})
	case opcodes.RETURNDATACOPY:
		tr.lowerCopyOp(func(ctx *execctx.Context) []byte { return ctx.ReturnData })
	case opcodes.COINBASE:
		tr.pushAddress(func(ctx *execctx.Context) types.Address { return ctx.Env.Coinbase })
	case opcodes.TIMESTAMP:
		tr.pushUint64Env(func(ctx *execctx.Context) uint64 { return ctx.Env.Timestamp })
	case opcodes.NUMBER:
		tr.pushUint64Env(func(ctx *execctx.Context) uint64 { return ctx.Env.BlockNumber })
	case opcodes.PREVRANDAO:
		tr.push(func(ctx *execctx.Context) execctx.Word { return ctx.Env.PrevRandao })
	case opcodes.GASLIMIT:
		tr.pushUint64Env(func(ctx *execctx.Context) uint64 { return ctx.Env.GasLimit })
	case opcodes.CHAINID:
		tr.push(func(ctx *execctx.Context) execctx.Word { return ctx.Env.ChainID })
	case opcodes.SELFBALANCE:
		tr.push(func(ctx *execctx.Context) execctx.Word {
			v, _ := ctx.Host.Balance(ctx.Env.Address)
			return v
		})
	case opcodes.BASEFEE:
		tr.push(func(ctx *execctx.Context) execctx.Word { return ctx.Env.BaseFee })
	case opcodes.BLOBBASEFEE:
		tr.push(func(ctx *execctx.Context) execctx.Word { return ctx.Env.BlobBaseFee })
	case opcodes.BLOBHASH:
		var index uint64
		b.Emit(func(ctx *execctx.Context) { index = pop(ctx).Uint64() })
		tr.push(func(ctx *execctx.Context) execctx.Word {
			var w execctx.Word
			if index < uint64(len(ctx.Env.BlobHashes)) {
				w.SetBytes(ctx.Env.BlobHashes[index].Bytes())
			}
			return w
		})
	case opcodes.BALANCE:
		var addr types.Address
		b.Emit(func(ctx *execctx.Context) { addr = addressFromWord(pop(ctx)) })
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			_, warm := ctx.Host.Balance(addr)
			return coldSurcharge(warm)
		})
		tr.push(func(ctx *execctx.Context) execctx.Word {
			v, _ := ctx.Host.Balance(addr)
			return v
		})
	case opcodes.EXTCODESIZE:
		var addr types.Address
		b.Emit(func(ctx *execctx.Context) { addr = addressFromWord(pop(ctx)) })
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			_, warm := ctx.Host.ExtCodeSize(addr)
			return coldSurcharge(warm)
		})
		tr.push(func(ctx *execctx.Context) execctx.Word {
			size, _ := ctx.Host.ExtCodeSize(addr)
			var w execctx.Word
			w.SetUint64(size)
			return w
		})
	case opcodes.EXTCODEHASH:
		var addr types.Address
		b.Emit(func(ctx *execctx.Context) { addr = addressFromWord(pop(ctx)) })
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			_, warm := ctx.Host.ExtCodeHash(addr)
			return coldSurcharge(warm)
		})
		tr.push(func(ctx *execctx.Context) execctx.Word {
			hash, _ := ctx.Host.ExtCodeHash(addr)
			var w execctx.Word
			w.SetBytes(hash.Bytes())
			return w
		})
	case opcodes.EXTCODECOPY:
		var addr types.Address
		var destOffset, srcOffset, length uint64
		b.Emit(func(ctx *execctx.Context) {
			addr = addressFromWord(pop(ctx))
			destOffset = pop(ctx).Uint64()
			srcOffset = pop(ctx).Uint64()
			length = pop(ctx).Uint64()
		})
		tr.ensureMemory(
			func(ctx *execctx.Context) uint64 { return destOffset },
			func(ctx *execctx.Context) uint64 { return length },
		)
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			_, warm := ctx.Host.ExtCodeCopy(addr)
			return coldSurcharge(warm) + opcodes.GasCopyWord*execctx.WordCount(length)
		})
		b.Emit(func(ctx *execctx.Context) {
			code, _ := ctx.Host.ExtCodeCopy(addr)
			ctx.Memory.Set(destOffset, windowBytes(code, srcOffset, length))
		})
	case opcodes.BLOCKHASH:
		var number uint64
		b.Emit(func(ctx *execctx.Context) { number = pop(ctx).Uint64() })
		tr.push(func(ctx *execctx.Context) execctx.Word {
			hash := ctx.Host.BlockHash(number)
			var w execctx.Word
			w.SetBytes(hash.Bytes())
			return w
		})
	}
}

func coldSurcharge(warm bool) uint64 {
	if warm {
		return 0
	}
	return opcodes.GasBalanceCold - opcodes.GasBalanceWarm
}

func (tr *lowering) pushAddress(get func(ctx *execctx.Context) types.Address) {
	tr.push(func(ctx *execctx.Context) execctx.Word {
		addr := get(ctx)
		var w execctx.Word
		w.SetBytes(addr.Bytes())
		return w
	})
}

func (tr *lowering) pushUint64Env(get func(ctx *execctx.Context) uint64) {
	tr.push(func(ctx *execctx.Context) execctx.Word {
		var w execctx.Word
		w.SetUint64(get(ctx))
		return w
	})
}

func addressFromWord(w execctx.Word) types.Address {
	b32 := w.Bytes32()
	return types.BytesToAddress(b32[12:])
}

// wordFromWindow reads a 32-byte word starting at offset from src,
// zero-padding past the end -- the CALLDATALOAD convention.
func wordFromWindow(src []byte, offset uint64, n int) execctx.Word {
	var w execctx.Word
	w.SetBytes(windowBytes(src, offset, uint64(n)))
	return w
}

// windowBytes returns n bytes of src starting at offset, zero-padded past
// the end of src (the CALLDATACOPY/CODECOPY/EXTCODECOPY convention).
func windowBytes(src []byte, offset, n uint64) []byte {
	out := make([]byte, n)
	if offset >= uint64(len(src)) {
		return out
	}
	end := offset + n
	if end > uint64(len(src)) {
		end = uint64(len(src))
	}
	copy(out, src[offset:end])
	return out
}

// lowerCopyOp implements the *COPY family: pop(destOffset, srcOffset,
// length), expand memory, charge per-word copy gas, then copy length bytes
// from src() starting at srcOffset into memory at destOffset.
func (tr *lowering) lowerCopyOp(src func(ctx *execctx.Context) []byte) {
	var destOffset, srcOffset, length uint64
	tr.b.Emit(func(ctx *execctx.Context) {
		destOffset = pop(ctx).Uint64()
		srcOffset = pop(ctx).Uint64()
		length = pop(ctx).Uint64()
	})
	tr.ensureMemory(
		func(ctx *execctx.Context) uint64 { return destOffset },
		func(ctx *execctx.Context) uint64 { return length },
	)
	tr.chargeGas(func(ctx *execctx.Context) uint64 {
		return opcodes.GasCopyWord * execctx.WordCount(length)
	})
	tr.b.Emit(func(ctx *execctx.Context) {
		if length == 0 {
			return
		}
		ctx.Memory.Set(destOffset, windowBytes(src(ctx), srcOffset, length))
	})
}
