package refvm

import (
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
)

// Finalize completes construction and returns a callable Func. Running it
// repeatedly executes blocks[0]'s statements, follows its terminator to the
// next block, and repeats until a terminator reports done -- a state
// machine over offsets, not coroutines: each call is an ordinary,
// re-entrant function call, and resumption is just starting the dispatch
// loop at whatever block ecx.ResumeAt maps to (the translator is
// responsible for building that block from ResumeAt; refvm only runs
// whichever block the translator's entry dispatch selects).
func (b *Builder) Finalize() backend.Func {
	blocks := b.blocks
	return func(ctx *execctx.Context) execctx.Reason {
		cur := backend.BlockID(0)
		for {
			blk := blocks[cur]
			for _, s := range blk.stmts {
				s(ctx)
			}
			next, done, reason := blk.term(ctx)
			if done {
				return reason
			}
			cur = next
		}
	}
}
