// Package analyzer decodes raw EVM bytecode into an indexed instruction
// sequence, discovers jump destinations, and partitions the sequence into
// basic blocks with static gas and stack-height bounds. It never rejects
// bytecode: every byte sequence decodes to something, and unknown opcodes
// simply become instructions whose only effect, at translation time, is to
// terminate with InvalidOpcode.
package analyzer

import "github.com/evmc-go/evmc/opcodes"

// Instruction is one decoded position in the bytecode: its byte offset, its
// opcode, and (for PUSH1..PUSH32) its immediate bytes.
type Instruction struct {
	Offset    uint64
	Op        opcodes.OpCode
	Immediate []byte
}

// Decode walks code left to right. A PUSHk at offset i consumes k bytes of
// immediate; if code ends before k bytes are available, the immediate is
// clamped and right-padded with zeros -- the emitted PUSH must use the
// zero-padded value to match reference semantics.
func Decode(code []byte) []Instruction {
	var out []Instruction
	for i := 0; i < len(code); {
		op := opcodes.OpCode(code[i])
		inst := Instruction{Offset: uint64(i), Op: op}
		if op.IsPush() {
			k := op.ImmediateLen()
			imm := make([]byte, k)
			avail := len(code) - (i + 1)
			if avail > 0 {
				n := avail
				if n > k {
					n = k
				}
				copy(imm, code[i+1:i+1+n])
			}
			inst.Immediate = imm
			i += 1 + k
		} else {
			i++
		}
		out = append(out, inst)
	}
	return out
}

// Jumpdests returns the set of instruction offsets that are JUMPDEST and
// lie on a true instruction boundary -- i.e. not inside the immediate span
// of an earlier PUSH. Decode already guarantees this by construction (the
// walk always advances past immediates), so this is a straight filter over
// the already-correct instruction stream: membership is determined by the
// single left-to-right scan Decode performed.
func Jumpdests(instructions []Instruction) map[uint64]bool {
	set := make(map[uint64]bool)
	for _, inst := range instructions {
		if inst.Op == opcodes.JUMPDEST {
			set[inst.Offset] = true
		}
	}
	return set
}

// Block is a maximal contiguous range of instructions such that only the
// last may be a terminator, and the range starts at offset 0, a jumpdest,
// or the instruction following a terminator.
type Block struct {
	Start         int // index into the Instruction slice, inclusive
	End           int // index into the Instruction slice, inclusive
	MinIn         int // lowest stack height reached relative to entry, <=0
	MaxIn         int // highest stack height demanded relative to entry, >=0
	NetDelta      int // net stack height change across the block
	StaticGas     uint64
	HasDynamicGas bool
	Terminator    opcodes.OpCode
	IsTerminated  bool // false for a block that falls off the end of code
}

// isTerminator reports whether op ends a basic block: the explicit
// control-flow and halt opcodes, plus every opcode that unconditionally
// suspends.
func isTerminator(op opcodes.OpCode) bool {
	switch op {
	case opcodes.JUMP, opcodes.JUMPI, opcodes.STOP, opcodes.RETURN,
		opcodes.REVERT, opcodes.INVALID, opcodes.SELFDESTRUCT,
		opcodes.CALL, opcodes.CALLCODE, opcodes.DELEGATECALL, opcodes.STATICCALL,
		opcodes.CREATE, opcodes.CREATE2,
		opcodes.TestSuspend:
		return true
	default:
		return false
	}
}

// Blocks partitions instructions into basic blocks under the given spec,
// computing each block's static gas sum and stack-height bounds so the
// translator can emit one fused bounds check and one fused gas deduction
// per block. An undefined opcode forms its own
// one-instruction block, terminated unconditionally.
func Blocks(instructions []Instruction, jumpdests map[uint64]bool, spec opcodes.SpecID) []Block {
	var blocks []Block
	n := len(instructions)
	i := 0
	for i < n {
		start := i
		height := 0
		minIn, maxIn := 0, 0
		var gas uint64
		dynamic := false
		var term opcodes.OpCode
		terminated := false

		for i < n {
			inst := instructions[i]
			if i != start && jumpdests[inst.Offset] {
				break
			}
			meta, ok := opcodes.Lookup(inst.Op, spec)
			if !ok {
				if i == start {
					term = inst.Op
					terminated = true
					i++
				}
				break
			}
			if d := height - meta.StackIn; d < minIn {
				minIn = d
			}
			height = height - meta.StackIn + meta.StackOut
			if height > maxIn {
				maxIn = height
			}
			gas += meta.BaseGas
			if meta.DynamicGas {
				dynamic = true
			}
			i++
			if isTerminator(inst.Op) {
				term = inst.Op
				terminated = true
				break
			}
		}

		blocks = append(blocks, Block{
			Start: start, End: i - 1,
			MinIn: minIn, MaxIn: maxIn, NetDelta: height,
			StaticGas: gas, HasDynamicGas: dynamic,
			Terminator: term, IsTerminated: terminated,
		})
	}
	return blocks
}
