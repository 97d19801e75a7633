// Package translator lowers analyzed EVM bytecode to backend IR, emitting
// one native function per contract with the suspend/resume ABI. It is the
// only package that understands EVM semantics; everything it calls
// through backend.Builder is language-neutral.
package translator

import (
	"github.com/evmc-go/evmc/analyzer"
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// Module is the result of translation: a callable function plus the
// analysis artifacts kept around for diagnostics (dump_to, debug
// assertions) and for the jumpdest-discipline property test.
type Module struct {
	Func      backend.Func
	Blocks    []analyzer.Block
	Jumpdests map[uint64]bool
}

// shared exit blocks, one per non-suspend failure reason -- they take no
// block-specific data, so every calling block can branch to the same exit
// rather than each emitting its own copy.
type exits struct {
	underflow, overflow, outOfGas, invalidJump, invalidOpcode, notActivated backend.BlockID
	memoryOOG                                                               backend.BlockID
}

func buildExits(b backend.Builder) exits {
	mk := func(r execctx.Reason) backend.BlockID {
		id := b.NewBlock()
		b.SetInsertPoint(id)
		b.Unreachable(id)
		b.Return(r)
		return id
	}
	return exits{
		underflow:     mk(execctx.ReasonStackUnderflow),
		overflow:      mk(execctx.ReasonStackOverflow),
		outOfGas:      mk(execctx.ReasonOutOfGas),
		invalidJump:   mk(execctx.ReasonInvalidJump),
		invalidOpcode: mk(execctx.ReasonInvalidOpcode),
		notActivated:  mk(execctx.ReasonNotActivated),
		memoryOOG:     mk(execctx.ReasonMemoryOOG),
	}
}

// Translate analyzes code and emits IR into b, returning the finalized
// Module. Compile time is infallible on the bytecode axis: every byte sequence translates to something.
func Translate(code []byte, spec opcodes.SpecID, b backend.Builder) *Module {
	return translateInstructions(analyzer.Decode(code), spec, b)
}

// translateInstructions is Translate's body, factored out so tests can
// drive it from a hand-built instruction stream that includes the
// TestSuspend pseudo-opcode -- a value Decode can never produce from a real
// []byte, since it decodes only single bytes in 0x00-0xff.
func translateInstructions(instructions []analyzer.Instruction, spec opcodes.SpecID, b backend.Builder) *Module {
	jumpdests := analyzer.Jumpdests(instructions)
	blocks := analyzer.Blocks(instructions, jumpdests, spec)

	dispatch := backend.BlockID(0) // the entry block the Builder starts with; Finalize's function begins here
	ex := buildExits(b)

	// Pre-allocate one backend block per analyzer block, keyed by the
	// analyzer block's starting instruction offset -- every resumable
	// point maps directly to
	// one of these ids.
	blockIDs := make(map[uint64]backend.BlockID, len(blocks))
	jumpTargets := make(map[uint64]backend.BlockID, len(jumpdests))
	for _, blk := range blocks {
		id := b.NewBlock()
		off := instructions[blk.Start].Offset
		blockIDs[off] = id
		if jumpdests[off] {
			jumpTargets[off] = id
		}
	}

	// The offset one past the last instruction: a block that falls off the
	// end of the instruction stream (no explicit STOP) resumes here and
	// immediately returns Stop, the implicit halt at the end of a
	// contract's code.
	var codeEnd uint64
	if n := len(instructions); n > 0 {
		last := instructions[n-1]
		codeEnd = last.Offset + 1
		if last.Op.IsPush() {
			codeEnd = last.Offset + 1 + uint64(last.Op.ImmediateLen())
		}
	}
	implicitStop := b.NewBlock()
	b.SetInsertPoint(implicitStop)
	b.Return(execctx.ReasonStop)
	blockIDs[codeEnd] = implicitStop

	b.SetInsertPoint(dispatch)
	resumeAt := func(ctx *execctx.Context) execctx.Word {
		var w execctx.Word
		w.SetUint64(uint64(ctx.ResumeAt))
		return w
	}
	cases := make(map[uint64]backend.BlockID, len(blockIDs))
	for off, id := range blockIDs {
		cases[off] = id
	}
	b.Switch(resumeAt, cases, ex.invalidOpcode)

	tr := &lowering{
		b: b, instructions: instructions, blocks: blocks,
		blockIDs: blockIDs, jumpTargets: jumpTargets, spec: spec,
		exits: ex, codeEndBlock: implicitStop,
	}
	for bi, blk := range blocks {
		tr.lowerBlock(bi, blk)
	}

	return &Module{Func: b.Finalize(), Blocks: blocks, Jumpdests: jumpdests}
}
