package translator

import (
	"github.com/evmc-go/evmc/analyzer"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerCreate implements CREATE and CREATE2: pop the init-code window and
// (for CREATE2) salt, expand memory, populate NextAction, and suspend. The
// host performs account creation out of band and resumes with the created
// address (or 0 on failure) pushed onto the stack.
func (tr *lowering) lowerCreate(inst analyzer.Instruction, op opcodes.OpCode) {
	isCreate2 := op == opcodes.CREATE2

	var value execctx.Word
	var offset, size uint64
	var salt execctx.Word
	tr.b.Emit(func(ctx *execctx.Context) {
		value = pop(ctx)
		offset = pop(ctx).Uint64()
		size = pop(ctx).Uint64()
		if isCreate2 {
			salt = pop(ctx)
		}
	})
	tr.ensureMemory(
		func(ctx *execctx.Context) uint64 { return offset },
		func(ctx *execctx.Context) uint64 { return size },
	)
	if isCreate2 {
		tr.chargeGas(func(ctx *execctx.Context) uint64 {
			return opcodes.GasKeccak256Word * execctx.WordCount(size)
		})
	}

	tr.b.Emit(func(ctx *execctx.Context) {
		kind := execctx.ActionCreate
		if isCreate2 {
			kind = execctx.ActionCreate2
		}
		ctx.NextAction = execctx.NextAction{
			Kind:  kind,
			Gas:   retentionGas(ctx.GasRemaining),
			Value: value,
			Input: append([]byte(nil), ctx.Memory.Get(offset, size)...),
			Salt:  salt,
		}
	})

	tr.suspendTo(tr.nextOffset(inst), execctx.ReasonCallOrCreate)
}

// retentionGas implements the 63/64-rule gas stipend: the callee receives
// remaining - remaining/64 (integer division), the caller keeping the
// 1/64th reserve (EIP-150). A non-positive remaining yields 0.
func retentionGas(remaining int64) uint64 {
	if remaining <= 0 {
		return 0
	}
	r := uint64(remaining)
	return r - r/64
}
