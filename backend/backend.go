// Package backend declares the capability interface the IR translator
// depends on: a language-neutral surface for 256-bit
// arithmetic, memory access, control flow, calls to named runtime
// builtins, and constants. A backend implementation never needs to
// understand EVM semantics -- all EVM logic lives in the translator; the
// backend only needs to compile the IR it is handed into something
// callable. Two concrete code-generation backends (LLVM-class,
// Cranelift-class) are external collaborators that would implement this
// same interface; this module ships one concrete implementation,
// backend/refvm, standing in for them so the translator has something to
// run against in tests.
package backend

import "github.com/evmc-go/evmc/execctx"

// Value is a backend-neutral, lazily evaluated 256-bit expression: it
// reads from, but never itself mutates, the execution context.
type Value func(ctx *execctx.Context) execctx.Word

// BlockID identifies a basic block within a function under construction.
type BlockID int

// Func is a finished, directly callable native function: entry(ctx) ->
// Reason. The stack and its length live inside ctx.Stack, so the
// signature collapses to a single context parameter.
type Func func(ctx *execctx.Context) execctx.Reason

// Builder is the capability interface consumed by the translator and
// implemented by a codegen backend.
type Builder interface {
	// NewBlock creates a new basic block in the function under
	// construction and returns its id. The first call implicitly starts
	// the function's entry block.
	NewBlock() BlockID
	// SetInsertPoint directs subsequent Emit/arithmetic/control calls to
	// append to block b.
	SetInsertPoint(b BlockID)

	// Arithmetic/bitwise, 256-bit, overflow-wrapping for unsigned and
	// two's-complement for signed.
	Add(a, b Value) Value
	Sub(a, b Value) Value
	Mul(a, b Value) Value
	Div(a, b Value) Value
	SDiv(a, b Value) Value
	Mod(a, b Value) Value
	SMod(a, b Value) Value
	AddMod(a, b, n Value) Value
	MulMod(a, b, n Value) Value
	And(a, b Value) Value
	Or(a, b Value) Value
	Xor(a, b Value) Value
	Not(a Value) Value
	Shl(a, shift Value) Value
	Shr(a, shift Value) Value
	Sar(a, shift Value) Value

	// Memory: word-granularity load/store at a byte offset, plus bulk
	// copy for the COPY-family opcodes. Alignment is explicit: offsets
	// are always pre-resized by the translator's dynamic-gas lowering
	// before a Load/Store/Copy is emitted.
	Load(offset Value) Value
	Store(offset, v Value)
	Copy(dstOffset, srcOffset, length Value)

	// Emit appends an arbitrary context-mutating statement to the current
	// block -- the generic primitive the translator uses for stack
	// pushes and other bookkeeping that isn't itself a call to a named
	// builtin.
	Emit(op func(ctx *execctx.Context))

	// Control flow.
	Branch(to BlockID)
	CondBranch(cond Value, thenB, elseB BlockID)
	Switch(selector Value, cases map[uint64]BlockID, def BlockID)
	Return(reason execctx.Reason)

	// CallBuiltin performs a direct call to a named external function
	// supplied by the runtime at link time, with a fixed ABI (ctx) ->
	// void; the builtin reads/writes the stack and context itself
	// via the builtin hook registered for it.
	CallBuiltin(name string, fn func(ctx *execctx.Context))

	// Constants.
	ConstWord(v execctx.Word) Value
	ConstUint64(v uint64) Value

	// Attribute hints, advisory only -- a backend is free to ignore them.
	Cold(b BlockID)
	Unreachable(b BlockID)
	NoReturn(b BlockID)

	// Finalize completes construction of the current function and
	// returns a callable Func.
	Finalize() Func
}
