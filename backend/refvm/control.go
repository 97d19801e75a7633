package refvm

import (
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
)

// Emit appends an arbitrary statement to the current block.
func (b *Builder) Emit(op func(ctx *execctx.Context)) { b.emit(op) }

func (b *Builder) Branch(to backend.BlockID) {
	b.cur().term = func(ctx *execctx.Context) (backend.BlockID, bool, execctx.Reason) {
		return to, false, 0
	}
}

func (b *Builder) CondBranch(cond backend.Value, thenB, elseB backend.BlockID) {
	b.cur().term = func(ctx *execctx.Context) (backend.BlockID, bool, execctx.Reason) {
		v := cond(ctx)
		if v.IsZero() {
			return elseB, false, 0
		}
		return thenB, false, 0
	}
}

func (b *Builder) Switch(selector backend.Value, cases map[uint64]backend.BlockID, def backend.BlockID) {
	b.cur().term = func(ctx *execctx.Context) (backend.BlockID, bool, execctx.Reason) {
		v := selector(ctx)
		if !v.IsUint64() {
			return def, false, 0
		}
		if target, ok := cases[v.Uint64()]; ok {
			return target, false, 0
		}
		return def, false, 0
	}
}

func (b *Builder) Return(reason execctx.Reason) {
	b.cur().term = func(ctx *execctx.Context) (backend.BlockID, bool, execctx.Reason) {
		return 0, true, reason
	}
}

// CallBuiltin performs a direct call to a named external builtin; the name
// is retained only for diagnostics,
// refvm itself dispatches straight to the supplied closure since it is, in
// this backend, the only implementation that will ever run it.
func (b *Builder) CallBuiltin(name string, fn func(ctx *execctx.Context)) {
	b.emit(fn)
}
