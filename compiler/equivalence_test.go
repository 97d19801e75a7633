package compiler

import (
	"testing"

	"github.com/evmc-go/evmc/analyzer"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

func wordOf(v uint64) execctx.Word {
	var w execctx.Word
	w.SetUint64(v)
	return w
}

func boolWord(v bool) execctx.Word {
	if v {
		return wordOf(1)
	}
	return execctx.Word{}
}

// refBinOps/refCmpOps give each binary opcode's effect as a function of
// (top, second) -- top is the value popped first (the stack's top
// element), second is popped next, matching the pop order translator's
// lowering uses for every binary op.
var refBinOps = map[opcodes.OpCode]func(top, second *execctx.Word) execctx.Word{
	opcodes.ADD: func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.Add(top, second); return r },
	opcodes.MUL: func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.Mul(top, second); return r },
	opcodes.SUB: func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.Sub(top, second); return r },
	opcodes.DIV: func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.Div(top, second); return r },
	opcodes.MOD: func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.Mod(top, second); return r },
	opcodes.AND: func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.And(top, second); return r },
	opcodes.OR:  func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.Or(top, second); return r },
	opcodes.XOR: func(top, second *execctx.Word) execctx.Word { var r execctx.Word; r.Xor(top, second); return r },
}

var refCmpOps = map[opcodes.OpCode]func(top, second *execctx.Word) bool{
	opcodes.LT: func(top, second *execctx.Word) bool { return top.Lt(second) },
	opcodes.GT: func(top, second *execctx.Word) bool { return top.Gt(second) },
	opcodes.EQ: func(top, second *execctx.Word) bool { return top.Eq(second) },
}

// referenceStepper evaluates code the way one fused basic block does: a
// static pass aggregates the stack-height bounds and gas cost over the
// whole sequence exactly as analyzer.Blocks does, then -- only if that
// pass clears -- a second pass performs the stack effects by hand,
// working the uint256 methods directly rather than going through
// backend.Builder or translator's lowering. It understands only the
// stack-only, static-gas subset of opcodes (no control flow, memory,
// storage, or calls); that subset is what this file's tests exercise
// differentially against the compiled path.
func referenceStepper(code []byte, gas int64, spec opcodes.SpecID) (execctx.Reason, int64, []execctx.Word) {
	instructions := analyzer.Decode(code)

	height, minIn, maxIn := 0, 0, 0
	var totalGas uint64
	end := len(instructions)
	for i, inst := range instructions {
		meta, ok := opcodes.Lookup(inst.Op, spec)
		if !ok {
			return execctx.ReasonInvalidOpcode, gas, nil
		}
		if d := height - meta.StackIn; d < minIn {
			minIn = d
		}
		height = height - meta.StackIn + meta.StackOut
		if height > maxIn {
			maxIn = height
		}
		totalGas += meta.BaseGas
		if inst.Op == opcodes.STOP {
			end = i + 1
			break
		}
	}

	if minIn < 0 {
		return execctx.ReasonStackUnderflow, gas, nil
	}
	if maxIn > execctx.StackSlots {
		return execctx.ReasonStackOverflow, gas, nil
	}
	if gas < int64(totalGas) {
		return execctx.ReasonOutOfGas, gas, nil
	}

	stack := make([]execctx.Word, 0, maxIn)
	for _, inst := range instructions[:end] {
		switch {
		case inst.Op == opcodes.STOP:
		case inst.Op == opcodes.PUSH0:
			stack = append(stack, execctx.Word{})
		case inst.Op.IsPush():
			var w execctx.Word
			w.SetBytes(inst.Immediate)
			stack = append(stack, w)
		case inst.Op == opcodes.JUMPDEST:
		case inst.Op == opcodes.POP:
			stack = stack[:len(stack)-1]
		case inst.Op >= opcodes.DUP1 && inst.Op <= opcodes.DUP16:
			n := int(inst.Op-opcodes.DUP1) + 1
			stack = append(stack, stack[len(stack)-n])
		case inst.Op >= opcodes.SWAP1 && inst.Op <= opcodes.SWAP16:
			n := int(inst.Op-opcodes.SWAP1) + 1
			top := len(stack) - 1
			stack[top], stack[top-n] = stack[top-n], stack[top]
		case inst.Op == opcodes.ISZERO:
			top := stack[len(stack)-1]
			stack[len(stack)-1] = boolWord(top.IsZero())
		case inst.Op == opcodes.NOT:
			top := stack[len(stack)-1]
			var r execctx.Word
			r.Not(&top)
			stack[len(stack)-1] = r
		default:
			top, second := stack[len(stack)-1], stack[len(stack)-2]
			if fn, ok := refBinOps[inst.Op]; ok {
				stack = append(stack[:len(stack)-2], fn(&top, &second))
				continue
			}
			if fn, ok := refCmpOps[inst.Op]; ok {
				stack = append(stack[:len(stack)-2], boolWord(fn(&top, &second)))
				continue
			}
			return execctx.ReasonInvalidOpcode, gas, nil
		}
	}
	return execctx.ReasonStop, gas - int64(totalGas), stack
}

func runCompiled(t *testing.T, code []byte, gas int64) (execctx.Reason, int64, []execctx.Word) {
	t.Helper()
	c := New(DefaultConfig(), refvmBuilder)
	entry, err := c.Compile(code)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	ctx := execctx.NewContext(gas, nil, execctx.Env{})
	reason := c.Call(entry.Func, ctx)
	stack := make([]execctx.Word, ctx.Stack.Len)
	copy(stack, ctx.Stack.Data[:ctx.Stack.Len])
	return reason, ctx.GasRemaining, stack
}

func checkEquivalence(t *testing.T, code []byte, gas int64) {
	t.Helper()
	wantReason, wantGas, wantStack := referenceStepper(code, gas, opcodes.Cancun)
	gotReason, gotGas, gotStack := runCompiled(t, code, gas)

	if gotReason != wantReason {
		t.Fatalf("reason = %v, want %v (code % x)", gotReason, wantReason, code)
	}
	if wantReason != execctx.ReasonStop {
		return
	}
	if gotGas != wantGas {
		t.Fatalf("gas remaining = %d, want %d (code % x)", gotGas, wantGas, code)
	}
	if len(gotStack) != len(wantStack) {
		t.Fatalf("stack length = %d, want %d (code % x)", len(gotStack), len(wantStack), code)
	}
	for i := range gotStack {
		if !gotStack[i].Eq(&wantStack[i]) {
			t.Errorf("stack[%d] = %s, want %s (code % x)", i, gotStack[i].Hex(), wantStack[i].Hex(), code)
		}
	}
}

func TestEquivalenceTableCases(t *testing.T) {
	cases := [][]byte{
		{byte(opcodes.STOP)},
		{byte(opcodes.PUSH1), 3, byte(opcodes.PUSH1), 4, byte(opcodes.ADD), byte(opcodes.STOP)},
		{byte(opcodes.PUSH1), 10, byte(opcodes.PUSH1), 3, byte(opcodes.SUB), byte(opcodes.STOP)},
		{byte(opcodes.PUSH1), 20, byte(opcodes.PUSH1), 6, byte(opcodes.DIV), byte(opcodes.STOP)},
		{byte(opcodes.PUSH1), 1, byte(opcodes.DUP1), byte(opcodes.ADD), byte(opcodes.STOP)},
		{byte(opcodes.PUSH1), 1, byte(opcodes.PUSH1), 2, byte(opcodes.SWAP1), byte(opcodes.SUB), byte(opcodes.STOP)},
		{byte(opcodes.PUSH1), 5, byte(opcodes.ISZERO), byte(opcodes.STOP)},
		{byte(opcodes.PUSH1), 0, byte(opcodes.ISZERO), byte(opcodes.STOP)},
		{byte(opcodes.JUMPDEST), byte(opcodes.PUSH1), 1, byte(opcodes.STOP)},
		{byte(opcodes.ADD), byte(opcodes.STOP)}, // underflow: no operands pushed
	}
	for _, code := range cases {
		checkEquivalence(t, code, 100000)
	}
}

// fuzzOps is the small, known-equivalent opcode set buildFuzzCode draws
// from -- control flow, memory, storage, and calls are excluded since
// referenceStepper doesn't model them.
var fuzzOps = []opcodes.OpCode{
	opcodes.ADD, opcodes.MUL, opcodes.SUB, opcodes.DIV, opcodes.MOD,
	opcodes.AND, opcodes.OR, opcodes.XOR, opcodes.NOT,
	opcodes.LT, opcodes.GT, opcodes.EQ, opcodes.ISZERO,
	opcodes.POP, opcodes.JUMPDEST,
	opcodes.DUP1, opcodes.DUP2, opcodes.DUP3, opcodes.DUP4,
	opcodes.SWAP1, opcodes.SWAP2, opcodes.SWAP3, opcodes.SWAP4,
	opcodes.PUSH1,
}

// buildFuzzCode maps arbitrary fuzzer bytes onto fuzzOps rather than using
// them as raw bytecode, always appending a trailing STOP -- this keeps
// every generated program inside the subset referenceStepper models.
func buildFuzzCode(raw []byte) []byte {
	const maxLen = 64
	if len(raw) > maxLen {
		raw = raw[:maxLen]
	}
	var code []byte
	for i := 0; i < len(raw); i++ {
		op := fuzzOps[int(raw[i])%len(fuzzOps)]
		code = append(code, byte(op))
		if op.IsPush() {
			i++
			var imm byte
			if i < len(raw) {
				imm = raw[i]
			}
			code = append(code, imm)
		}
	}
	code = append(code, byte(opcodes.STOP))
	return code
}

func FuzzEquivalence(f *testing.F) {
	f.Add([]byte{byte(opcodes.PUSH1), 3, byte(opcodes.PUSH1), 4})
	f.Add([]byte{byte(opcodes.ADD)})
	f.Add([]byte{byte(opcodes.PUSH1), 9, byte(opcodes.DUP1), byte(opcodes.SWAP1), byte(opcodes.SUB)})
	f.Add([]byte{byte(opcodes.POP), byte(opcodes.POP)})

	f.Fuzz(func(t *testing.T, raw []byte) {
		code := buildFuzzCode(raw)
		checkEquivalence(t, code, 1000000)
	})
}
