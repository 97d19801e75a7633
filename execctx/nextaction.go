package execctx

import "github.com/evmc-go/evmc/core/types"

// ActionKind discriminates the NextAction union.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionCall
	ActionCallCode
	ActionDelegateCall
	ActionStaticCall
	ActionCreate
	ActionCreate2
)

// NextAction is populated by a suspending CALL/CALLCODE/DELEGATECALL/
// STATICCALL/CREATE/CREATE2 before the function returns ReasonCallOrCreate;
// the host reads it, performs the sub-action, writes the result back
// (ReturnData, and for CREATE the created address pushed by the host onto
// the stack before resuming), and re-invokes the function.
type NextAction struct {
	Kind ActionKind

	Gas   uint64
	To    types.Address // CALL family: callee. CREATE2: ignored.
	Value Word          // CALL, CALLCODE, CREATE, CREATE2
	Input []byte        // calldata / init code

	Salt Word // CREATE2 only
}
