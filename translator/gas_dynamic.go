package translator

import (
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// chargeGas charges an additional cost computed from the live context,
// splitting the current block so the charge can branch to OutOfGas without
// committing any effect emitted after it. After
// this call the builder's insertion point is a fresh continuation block;
// callers emit the instruction's actual effect into it.
func (tr *lowering) chargeGas(cost func(ctx *execctx.Context) uint64) {
	cont := tr.b.NewBlock()
	cond := func(ctx *execctx.Context) execctx.Word {
		return wordFromBool(ctx.GasRemaining < int64(cost(ctx)))
	}
	tr.b.CondBranch(cond, tr.exits.outOfGas, cont)
	tr.b.SetInsertPoint(cont)
	tr.b.Emit(func(ctx *execctx.Context) { ctx.GasRemaining -= int64(cost(ctx)) })
}

// memoryExpansionCost returns the additional gas to grow memory to cover
// [offset, offset+size), or 0 if size is 0 (zero-length ops never expand
// memory) or the range is already covered. The formula is the standard
// quadratic memory-cost expansion: cost(words) = 3*words + words^2/512,
// charged as a delta against the memory size already paid for.
func memoryExpansionCost(mem *execctx.Memory, offset, size uint64) uint64 {
	if size == 0 {
		return 0
	}
	newLen := offset + size
	if newLen <= uint64(mem.Len()) {
		return 0
	}
	oldWords := execctx.WordCount(uint64(mem.Len()))
	newWords := execctx.WordCount(newLen)
	cost := func(words uint64) uint64 {
		return opcodes.GasMemoryWord*words + words*words/512
	}
	return cost(newWords) - cost(oldWords)
}

// ensureMemory charges the expansion cost (if any) and grows memory to
// cover [offset, offset+size). Safe to call with size 0.
func (tr *lowering) ensureMemory(offset, size func(ctx *execctx.Context) uint64) {
	tr.chargeGas(func(ctx *execctx.Context) uint64 {
		return memoryExpansionCost(ctx.Memory, offset(ctx), size(ctx))
	})
	tr.b.Emit(func(ctx *execctx.Context) {
		sz := size(ctx)
		if sz == 0 {
			return
		}
		ctx.Memory.Resize(offset(ctx) + sz)
	})
}
