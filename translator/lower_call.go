package translator

import (
	"github.com/evmc-go/evmc/analyzer"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerCall implements CALL, CALLCODE, DELEGATECALL and STATICCALL. Each
// pops a different operand set (DELEGATECALL and STATICCALL have no value
// operand) but all populate NextAction and suspend; the host performs the
// sub-call out of band and resumes with success/failure pushed onto the
// stack and ReturnData set to the sub-call's output.
func (tr *lowering) lowerCall(inst analyzer.Instruction, op opcodes.OpCode) {
	hasValue := op == opcodes.CALL || op == opcodes.CALLCODE

	var gas execctx.Word
	var to execctx.Word
	var value execctx.Word
	var argsOffset, argsSize, retOffset, retSize uint64
	tr.b.Emit(func(ctx *execctx.Context) {
		gas = pop(ctx)
		to = pop(ctx)
		if hasValue {
			value = pop(ctx)
		}
		argsOffset = pop(ctx).Uint64()
		argsSize = pop(ctx).Uint64()
		retOffset = pop(ctx).Uint64()
		retSize = pop(ctx).Uint64()
	})
	tr.ensureMemory(
		func(ctx *execctx.Context) uint64 { return argsOffset },
		func(ctx *execctx.Context) uint64 { return argsSize },
	)
	tr.ensureMemory(
		func(ctx *execctx.Context) uint64 { return retOffset },
		func(ctx *execctx.Context) uint64 { return retSize },
	)
	tr.chargeGas(func(ctx *execctx.Context) uint64 {
		_, warm := ctx.Host.Balance(addressFromWord(to))
		cost := coldSurcharge(warm)
		if hasValue && !value.IsZero() {
			cost += opcodes.GasSstoreSet / 10 // positive-value transfer stipend surcharge, simplified
		}
		return cost
	})

	tr.b.Emit(func(ctx *execctx.Context) {
		kind := callKind(op)
		requested := gas.Uint64()
		if !gas.IsUint64() || requested > retentionGas(ctx.GasRemaining) {
			requested = retentionGas(ctx.GasRemaining)
		}
		stipend := uint64(0)
		if hasValue && !value.IsZero() {
			stipend = opcodes.GasCallWarm * 23 // positive-value call stipend, simplified (EIP-150 2300 gas)
		}
		ctx.NextAction = execctx.NextAction{
			Kind:  kind,
			Gas:   requested + stipend,
			To:    addressFromWord(to),
			Value: value,
			Input: append([]byte(nil), ctx.Memory.Get(argsOffset, argsSize)...),
		}
	})

	// The host writes its result into memory at retOffset (truncated/
	// padded to retSize) before resuming; that splice happens on the host
	// side of the suspend boundary, not here.
	tr.suspendTo(tr.nextOffset(inst), execctx.ReasonCallOrCreate)
}

func callKind(op opcodes.OpCode) execctx.ActionKind {
	switch op {
	case opcodes.CALL:
		return execctx.ActionCall
	case opcodes.CALLCODE:
		return execctx.ActionCallCode
	case opcodes.DELEGATECALL:
		return execctx.ActionDelegateCall
	default:
		return execctx.ActionStaticCall
	}
}
