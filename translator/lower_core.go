package translator

import (
	"github.com/evmc-go/evmc/analyzer"
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerInstruction emits inst's effect into the current insertion point
// (always the block's body, set by lowerBlock). isTerm indicates inst is
// its block's terminator.
func (tr *lowering) lowerInstruction(inst analyzer.Instruction, isTerm bool) {
	b := tr.b
	op := inst.Op

	meta, ok := opcodes.Lookup(op, tr.spec)
	if !ok {
		if opcodes.NotActivated(op, tr.spec) {
			b.Return(execctx.ReasonNotActivated)
		} else {
			b.Return(execctx.ReasonInvalidOpcode)
		}
		return
	}
	_ = meta

	switch {
	case op == opcodes.PUSH0:
		tr.push(func(ctx *execctx.Context) execctx.Word { return execctx.Word{} })
		return
	case op.IsPush():
		tr.lowerPush(inst)
		return
	case op >= opcodes.DUP1 && op <= opcodes.DUP16:
		n := int(op-opcodes.DUP1) + 1
		b.Emit(func(ctx *execctx.Context) { ctx.Stack.Dup(n) })
		return
	case op >= opcodes.SWAP1 && op <= opcodes.SWAP16:
		n := int(op-opcodes.SWAP1) + 1
		b.Emit(func(ctx *execctx.Context) { ctx.Stack.Swap(n) })
		return
	case op >= opcodes.LOG0 && op <= opcodes.LOG4:
		tr.lowerLog(op)
		return
	}

	switch op {
	case opcodes.STOP:
		b.Return(execctx.ReasonStop)
	case opcodes.ADD:
		tr.push(b.Add(pop, pop))
	case opcodes.MUL:
		tr.push(b.Mul(pop, pop))
	case opcodes.SUB:
		tr.push(b.Sub(pop, pop))
	case opcodes.DIV:
		tr.push(b.Div(pop, pop))
	case opcodes.SDIV:
		tr.push(b.SDiv(pop, pop))
	case opcodes.MOD:
		tr.push(b.Mod(pop, pop))
	case opcodes.SMOD:
		tr.push(b.SMod(pop, pop))
	case opcodes.ADDMOD:
		tr.push(b.AddMod(pop, pop, pop))
	case opcodes.MULMOD:
		tr.push(b.MulMod(pop, pop, pop))
	case opcodes.EXP:
		tr.lowerExp()
	case opcodes.SIGNEXTEND:
		tr.lowerSignExtend()
	case opcodes.LT:
		tr.pushBoolCompare(func(a, c *execctx.Word) bool { return a.Lt(c) })
	case opcodes.GT:
		tr.pushBoolCompare(func(a, c *execctx.Word) bool { return a.Gt(c) })
	case opcodes.SLT:
		tr.pushBoolCompare(func(a, c *execctx.Word) bool { return a.Slt(c) })
	case opcodes.SGT:
		tr.pushBoolCompare(func(a, c *execctx.Word) bool { return a.Sgt(c) })
	case opcodes.EQ:
		tr.pushBoolCompare(func(a, c *execctx.Word) bool { return a.Eq(c) })
	case opcodes.ISZERO:
		tr.b.Emit(func(ctx *execctx.Context) {
			a := pop(ctx)
			ctx.Stack.Push(ptrWord(wordFromBool(a.IsZero())))
		})
	case opcodes.AND:
		tr.push(b.And(pop, pop))
	case opcodes.OR:
		tr.push(b.Or(pop, pop))
	case opcodes.XOR:
		tr.push(b.Xor(pop, pop))
	case opcodes.NOT:
		tr.push(b.Not(pop))
	case opcodes.BYTE:
		tr.lowerByte()
	case opcodes.SHL:
		tr.lowerShift(b.Shl)
	case opcodes.SHR:
		tr.lowerShift(b.Shr)
	case opcodes.SAR:
		tr.lowerShift(b.Sar)
	case opcodes.POP:
		b.Emit(func(ctx *execctx.Context) { ctx.Stack.Pop() })
	case opcodes.PC:
		off := inst.Offset
		tr.push(constUint64(off))
	case opcodes.GAS:
		tr.push(func(ctx *execctx.Context) execctx.Word {
			var w execctx.Word
			w.SetUint64(uint64(ctx.GasRemaining))
			return w
		})
	case opcodes.JUMPDEST:
		// no-op; its gas (1) is already folded into the block's static sum.
	case opcodes.KECCAK256:
		tr.lowerKeccak256()
	case opcodes.MLOAD, opcodes.MSTORE, opcodes.MSTORE8, opcodes.MSIZE, opcodes.MCOPY:
		tr.lowerMemoryOp(op)
	case opcodes.SLOAD, opcodes.SSTORE, opcodes.TLOAD, opcodes.TSTORE:
		tr.lowerStorageOp(op)
	case opcodes.ADDRESS, opcodes.ORIGIN, opcodes.CALLER, opcodes.CALLVALUE,
		opcodes.CALLDATALOAD, opcodes.CALLDATASIZE, opcodes.CALLDATACOPY,
		opcodes.CODESIZE, opcodes.CODECOPY, opcodes.GASPRICE,
		opcodes.RETURNDATASIZE, opcodes.RETURNDATACOPY,
		opcodes.COINBASE, opcodes.TIMESTAMP, opcodes.NUMBER, opcodes.PREVRANDAO,
		opcodes.GASLIMIT, opcodes.CHAINID, opcodes.SELFBALANCE, opcodes.BASEFEE,
		opcodes.BLOBHASH, opcodes.BLOBBASEFEE,
		opcodes.BALANCE, opcodes.EXTCODESIZE, opcodes.EXTCODECOPY, opcodes.EXTCODEHASH,
		opcodes.BLOCKHASH:
		tr.lowerEnvOp(op)
	case opcodes.JUMP:
		tr.lowerJump(inst, false)
	case opcodes.JUMPI:
		tr.lowerJump(inst, true)
	case opcodes.RETURN:
		tr.lowerHalt(execctx.ReasonReturn)
	case opcodes.REVERT:
		tr.lowerHalt(execctx.ReasonRevert)
	case opcodes.INVALID:
		b.Return(execctx.ReasonInvalidOpcode)
	case opcodes.SELFDESTRUCT:
		tr.lowerSelfDestruct()
	case opcodes.CREATE, opcodes.CREATE2:
		tr.lowerCreate(inst, op)
	case opcodes.CALL, opcodes.CALLCODE, opcodes.DELEGATECALL, opcodes.STATICCALL:
		tr.lowerCall(inst, op)
	case opcodes.TestSuspend:
		tr.suspendTo(tr.nextOffset(inst), execctx.ReasonTestSuspend)
	default:
		b.Return(execctx.ReasonInvalidOpcode)
	}

	if !isTerm {
		return
	}
	// Opcodes above that are block terminators but didn't already emit a
	// terminator (only possible if this switch is missing a case) would
	// fall through here; every terminator opcode handled above calls
	// Branch/Return/Switch itself, so there is nothing left to do.
}

func ptrWord(w execctx.Word) *execctx.Word { return &w }

func valueOf(w execctx.Word) backend.Value {
	return func(ctx *execctx.Context) execctx.Word { return w }
}

// lowerShift pops (shift, value) in that EVM order -- shift is popped
// first (it is the top of stack) -- then calls op(value, shift), matching
// the backend Shl/Shr/Sar signature of (value-to-shift, shift-amount).
func (tr *lowering) lowerShift(op func(value, shift backend.Value) backend.Value) {
	tr.b.Emit(func(ctx *execctx.Context) {
		shift := pop(ctx)
		value := pop(ctx)
		result := op(valueOf(value), valueOf(shift))(ctx)
		ctx.Stack.Push(&result)
	})
}

func (tr *lowering) pushBoolCompare(cmp func(a, c *execctx.Word) bool) {
	tr.b.Emit(func(ctx *execctx.Context) {
		a := pop(ctx)
		c := pop(ctx)
		ctx.Stack.Push(ptrWord(wordFromBool(cmp(&a, &c))))
	})
}

func (tr *lowering) lowerPush(inst analyzer.Instruction) {
	var w execctx.Word
	w.SetBytes(inst.Immediate)
	tr.push(func(ctx *execctx.Context) execctx.Word { return w })
}
