// Package refvm is a concrete backend implementation standing in for an
// external LLVM-class or Cranelift-class codegen backend. Where a real
// backend would emit machine code, refvm emits a small basic-block
// machine made of closures and runs it directly -- the "finalized
// function" is the closure loop itself, not assembly. This gives the
// translator (and its tests) something concrete to target without
// depending on an external codegen toolchain.
package refvm

import (
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
)

type stmt func(ctx *execctx.Context)

// terminator runs at the end of a block and decides what happens next:
// either control moves to another block, or the function returns.
type terminator func(ctx *execctx.Context) (next backend.BlockID, done bool, reason execctx.Reason)

type block struct {
	stmts []stmt
	term  terminator
}

// Builder implements backend.Builder by assembling a list of blocks
// executed by a small dispatch loop at Finalize time.
type Builder struct {
	blocks  []*block
	current backend.BlockID
}

// New returns a Builder with a single, empty entry block (id 0) already
// current.
func New() *Builder {
	b := &Builder{}
	b.NewBlock()
	return b
}

var _ backend.Builder = (*Builder)(nil)

func (b *Builder) cur() *block { return b.blocks[b.current] }

// NewBlock creates a new basic block and returns its id. The first call
// implicitly establishes the function's entry block.
func (b *Builder) NewBlock() backend.BlockID {
	b.blocks = append(b.blocks, &block{})
	return backend.BlockID(len(b.blocks) - 1)
}

// SetInsertPoint directs subsequent statement-emitting calls to block id.
func (b *Builder) SetInsertPoint(id backend.BlockID) { b.current = id }

func (b *Builder) emit(s stmt) { b.cur().stmts = append(b.cur().stmts, s) }
