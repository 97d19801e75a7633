package translator

import (
	"github.com/evmc-go/evmc/analyzer"
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

type lowering struct {
	b            backend.Builder
	instructions []analyzer.Instruction
	blocks       []analyzer.Block
	blockIDs     map[uint64]backend.BlockID
	jumpTargets  map[uint64]backend.BlockID
	spec         opcodes.SpecID
	exits        exits
	codeEndBlock backend.BlockID
}

// pop returns a Value that pops one element off the stack each time it is
// evaluated.
func pop(ctx *execctx.Context) execctx.Word { return ctx.Stack.Pop() }

func (tr *lowering) push(v backend.Value) {
	tr.b.Emit(func(ctx *execctx.Context) {
		w := v(ctx)
		ctx.Stack.Push(&w)
	})
}

func wordFromBool(v bool) execctx.Word {
	var w execctx.Word
	if v {
		w.SetOne()
	}
	return w
}

func constUint64(v uint64) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		var w execctx.Word
		w.SetUint64(v)
		return w
	}
}

// lowerBlock emits: the fused stack-bounds check, the fused static-gas
// deduction, then each instruction's effect in order, then the block's
// terminator.
func (tr *lowering) lowerBlock(bi int, blk analyzer.Block) {
	entryOff := tr.instructions[blk.Start].Offset
	entryID := tr.blockIDs[entryOff]

	checkOverflow := tr.b.NewBlock()
	checkGas := tr.b.NewBlock()
	body := tr.b.NewBlock()

	minIn, maxIn := blk.MinIn, blk.MaxIn
	tr.b.SetInsertPoint(entryID)
	underflowCond := func(ctx *execctx.Context) execctx.Word {
		return wordFromBool(ctx.Stack.Len+minIn < 0)
	}
	tr.b.CondBranch(underflowCond, tr.exits.underflow, checkOverflow)

	tr.b.SetInsertPoint(checkOverflow)
	overflowCond := func(ctx *execctx.Context) execctx.Word {
		return wordFromBool(ctx.Stack.Len+maxIn > execctx.StackSlots)
	}
	tr.b.CondBranch(overflowCond, tr.exits.overflow, checkGas)

	staticGas := blk.StaticGas
	tr.b.SetInsertPoint(checkGas)
	gasCond := func(ctx *execctx.Context) execctx.Word {
		return wordFromBool(ctx.GasRemaining < int64(staticGas))
	}
	tr.b.CondBranch(gasCond, tr.exits.outOfGas, body)

	tr.b.SetInsertPoint(body)
	tr.b.Emit(func(ctx *execctx.Context) { ctx.GasRemaining -= int64(staticGas) })

	for i := blk.Start; i <= blk.End; i++ {
		last := i == blk.End
		tr.lowerInstruction(tr.instructions[i], last && blk.IsTerminated)
	}

	if !blk.IsTerminated {
		// Fallthrough: the block ends because the next instruction
		// starts a new block (a jumpdest) or because bytecode ran out.
		// Either way control simply continues there.
		if blk.End+1 < len(tr.instructions) {
			tr.b.Branch(tr.blockAt(tr.instructions[blk.End+1].Offset))
		} else {
			tr.b.Branch(tr.codeEndBlock)
		}
	}
}

// nextOffset returns the byte offset of the instruction immediately after
// inst (used for ordinary, non-jumping control flow and as the resume_at
// destination for suspending instructions).
func (tr *lowering) nextOffset(inst analyzer.Instruction) uint64 {
	if inst.Op.IsPush() {
		return inst.Offset + 1 + uint64(inst.Op.ImmediateLen())
	}
	return inst.Offset + 1
}

func (tr *lowering) blockAt(off uint64) backend.BlockID {
	if id, ok := tr.blockIDs[off]; ok {
		return id
	}
	return tr.codeEndBlock
}

// suspendTo commits the instruction boundary and returns the given
// suspend reason -- the shared tail of every suspension point (the CALL
// family, CREATE/CREATE2 and TEST_SUSPEND).
func (tr *lowering) suspendTo(resumeOffset uint64, reason execctx.Reason) {
	tr.b.Emit(func(ctx *execctx.Context) { ctx.ResumeAt = uint32(resumeOffset) })
	tr.b.Return(reason)
}
