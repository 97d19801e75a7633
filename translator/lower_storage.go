package translator

import (
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerStorageOp implements SLOAD, SSTORE, TLOAD and TSTORE. The cold/warm
// access-list surcharge (EIP-2929) is charged dynamically here since it
// depends on the Host's report, not on the static opcode table; SLOAD's
// BaseGas covers the warm read, while SSTORE's BaseGas is 0 and its whole
// cost is charged here (opcodes/metadata.go). SSTORE's
// cost here is the simplified set/reset schedule, not the full EIP-2200/
// EIP-3529 net-gas-metering refund calculation -- see DESIGN.md.
func (tr *lowering) lowerStorageOp(op opcodes.OpCode) {
	switch op {
	case opcodes.SLOAD:
		var key execctx.Word
		var warm bool
		tr.b.Emit(func(ctx *execctx.Context) { key = pop(ctx) })
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			_, w := ctx.Host.SLoad(ctx.Env.Address, key)
			warm = w
			if warm {
				return 0
			}
			return opcodes.GasSloadCold - opcodes.GasSloadWarm
		})
		tr.push(func(ctx *execctx.Context) execctx.Word {
			value, _ := ctx.Host.SLoad(ctx.Env.Address, key)
			return value
		})

	case opcodes.SSTORE:
		var key, value execctx.Word
		tr.b.Emit(func(ctx *execctx.Context) {
			key = pop(ctx)
			value = pop(ctx)
		})
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			// SLoad is a read-only peek: it reports the pre-store value and
			// warms the slot without committing the pending write, so a
			// rejected (out-of-gas) SSTORE never mutates state.
			current, warm := ctx.Host.SLoad(ctx.Env.Address, key)
			cost := opcodes.GasSstoreReset
			if current.IsZero() && !value.IsZero() {
				cost = opcodes.GasSstoreSet
			}
			if !warm {
				cost += opcodes.GasSloadCold - opcodes.GasSloadWarm
			}
			return cost
		})
		tr.b.Emit(func(ctx *execctx.Context) {
			ctx.Host.SStore(ctx.Env.Address, key, value)
		})

	case opcodes.TLOAD:
		var key execctx.Word
		tr.b.Emit(func(ctx *execctx.Context) { key = pop(ctx) })
		tr.push(func(ctx *execctx.Context) execctx.Word {
			return ctx.Host.TLoad(ctx.Env.Address, key)
		})

	case opcodes.TSTORE:
		var key, value execctx.Word
		tr.b.Emit(func(ctx *execctx.Context) {
			key = pop(ctx)
			value = pop(ctx)
		})
		tr.b.Emit(func(ctx *execctx.Context) {
			ctx.Host.TStore(ctx.Env.Address, key, value)
		})
	}
}
