package translator

import (
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerByte implements BYTE(i, x): pops i (top) then x; if i>=32 the
// result is 0, else the i-th most-significant byte of x.
func (tr *lowering) lowerByte() {
	tr.b.Emit(func(ctx *execctx.Context) {
		i := pop(ctx)
		x := pop(ctx)
		var result execctx.Word
		if i.LtUint64(32) {
			b32 := x.Bytes32()
			result.SetUint64(uint64(b32[i.Uint64()]))
		}
		ctx.Stack.Push(&result)
	})
}

// lowerSignExtend implements SIGNEXTEND(k, x): pops k (top) then x; if
// k>=31 the result is x unchanged, else x sign-extended from bit
// 8*(k+1)-1.
func (tr *lowering) lowerSignExtend() {
	tr.b.Emit(func(ctx *execctx.Context) {
		k := pop(ctx)
		x := pop(ctx)
		var result execctx.Word
		if k.GtUint64(31) {
			result = x
		} else {
			result.ExtendSign(&x, &k)
		}
		ctx.Stack.Push(&result)
	})
}

// lowerExp implements EXP(base, exponent): pops base (top) then exponent,
// charging GasExpByte per byte of the exponent's big-endian encoding
// (leading zero bytes not counted) before computing base**exponent mod
// 2^256.
func (tr *lowering) lowerExp() {
	var base, exponent execctx.Word
	tr.b.Emit(func(ctx *execctx.Context) {
		base = pop(ctx)
		exponent = pop(ctx)
	})
	tr.chargeGas(func(ctx *execctx.Context) uint64 {
		return expByteGas(&exponent)
	})
	tr.push(func(ctx *execctx.Context) execctx.Word {
		var r execctx.Word
		return *r.Exp(&base, &exponent)
	})
}

func expByteGas(exponent *execctx.Word) uint64 {
	bitlen := exponent.BitLen()
	if bitlen == 0 {
		return 0
	}
	byteLen := uint64((bitlen + 7) / 8)
	return byteLen * opcodes.GasExpByte
}
