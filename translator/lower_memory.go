package translator

import (
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerMemoryOp implements MLOAD, MSTORE, MSTORE8, MSIZE and MCOPY. Each
// variant pops its own operands, grows memory as needed (MSIZE never does),
// and performs its effect.
func (tr *lowering) lowerMemoryOp(op opcodes.OpCode) {
	switch op {
	case opcodes.MLOAD:
		var offset uint64
		tr.b.Emit(func(ctx *execctx.Context) { offset = pop(ctx).Uint64() })
		tr.ensureMemory(
			func(ctx *execctx.Context) uint64 { return offset },
			func(ctx *execctx.Context) uint64 { return 32 },
		)
		tr.push(func(ctx *execctx.Context) execctx.Word {
			var w execctx.Word
			w.SetBytes(ctx.Memory.Get(offset, 32))
			return w
		})

	case opcodes.MSTORE:
		var offset uint64
		var value execctx.Word
		tr.b.Emit(func(ctx *execctx.Context) {
			offset = pop(ctx).Uint64()
			value = pop(ctx)
		})
		tr.ensureMemory(
			func(ctx *execctx.Context) uint64 { return offset },
			func(ctx *execctx.Context) uint64 { return 32 },
		)
		tr.b.Emit(func(ctx *execctx.Context) { ctx.Memory.Set32(offset, &value) })

	case opcodes.MSTORE8:
		var offset uint64
		var value execctx.Word
		tr.b.Emit(func(ctx *execctx.Context) {
			offset = pop(ctx).Uint64()
			value = pop(ctx)
		})
		tr.ensureMemory(
			func(ctx *execctx.Context) uint64 { return offset },
			func(ctx *execctx.Context) uint64 { return 1 },
		)
		tr.b.Emit(func(ctx *execctx.Context) {
			ctx.Memory.Set(offset, []byte{byte(value.Uint64())})
		})

	case opcodes.MSIZE:
		tr.push(func(ctx *execctx.Context) execctx.Word {
			var w execctx.Word
			w.SetUint64(uint64(ctx.Memory.Len()))
			return w
		})

	case opcodes.MCOPY:
		var dst, src, length uint64
		tr.b.Emit(func(ctx *execctx.Context) {
			dst = pop(ctx).Uint64()
			src = pop(ctx).Uint64()
			length = pop(ctx).Uint64()
		})
		tr.ensureMemory(
			func(ctx *execctx.Context) uint64 { return maxU64(dst, src) },
			func(ctx *execctx.Context) uint64 { return length },
		)
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			return opcodes.GasMcopyWord * execctx.WordCount(length)
		})
		tr.b.Emit(func(ctx *execctx.Context) {
			if length == 0 {
				return
			}
			data := ctx.Memory.Get(src, length)
			ctx.Memory.Set(dst, data)
		})
	}
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
