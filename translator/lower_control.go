package translator

import (
	"github.com/evmc-go/evmc/analyzer"
	"github.com/evmc-go/evmc/execctx"
)

// lowerJump implements JUMP and JUMPI. JUMP pops dest; JUMPI pops dest
// (top) then cond. Both validate dest against the jumpdest set before
// transferring control -- a jump to a non-JUMPDEST offset, or one that
// falls inside a PUSH immediate, always fails with InvalidJump.
func (tr *lowering) lowerJump(inst analyzer.Instruction, conditional bool) {
	if !conditional {
		var dest execctx.Word
		tr.b.Emit(func(ctx *execctx.Context) { dest = pop(ctx) })
		tr.b.Switch(func(ctx *execctx.Context) execctx.Word { return dest }, tr.jumpTargets, tr.exits.invalidJump)
		return
	}

	takeBranch := tr.b.NewBlock()
	noBranch := tr.b.NewBlock()

	var dest, cond execctx.Word
	tr.b.Emit(func(ctx *execctx.Context) {
		dest = pop(ctx)
		cond = pop(ctx)
	})
	condValue := func(ctx *execctx.Context) execctx.Word { return cond }
	tr.b.CondBranch(condValue, takeBranch, noBranch)

	tr.b.SetInsertPoint(takeBranch)
	tr.b.Switch(func(ctx *execctx.Context) execctx.Word { return dest }, tr.jumpTargets, tr.exits.invalidJump)

	tr.b.SetInsertPoint(noBranch)
	tr.b.Branch(tr.blockAt(tr.nextOffset(inst)))
}

// lowerHalt implements RETURN and REVERT: pop(offset, size), capture that
// memory range as ReturnData, then return reason.
func (tr *lowering) lowerHalt(reason execctx.Reason) {
	var offset, size uint64
	tr.b.Emit(func(ctx *execctx.Context) {
		offset = pop(ctx).Uint64()
		size = pop(ctx).Uint64()
	})
	tr.ensureMemory(
		func(ctx *execctx.Context) uint64 { return offset },
		func(ctx *execctx.Context) uint64 { return size },
	)
	tr.b.Emit(func(ctx *execctx.Context) {
		ctx.ReturnData = append([]byte(nil), ctx.Memory.Get(offset, size)...)
	})
	tr.b.Return(reason)
}

// lowerSelfDestruct implements SELFDESTRUCT: pop(beneficiary), ask the
// host to perform the transfer and account removal, charge the cold
// surcharge if the beneficiary was cold, then halt. Per
// EIP-6780 (Cancun+) SELFDESTRUCT only actually deletes the account when
// called in the same transaction that created it; that distinction is the
// host's responsibility, not the compiled code's -- see DESIGN.md Open
// Question 2.
func (tr *lowering) lowerSelfDestruct() {
	var beneficiary execctx.Word
	var warm bool
	tr.b.Emit(func(ctx *execctx.Context) {
		beneficiary = pop(ctx)
		warm = ctx.Host.SelfDestruct(ctx.Env.Address, addressFromWord(beneficiary))
	})
	tr.chargeGas(func(ctx *execctx.Context) uint64 { return coldSurcharge(warm) })
	tr.b.Return(execctx.ReasonStop)
}
