package refvm

import (
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
)

func (b *Builder) ConstWord(v execctx.Word) backend.Value {
	return func(ctx *execctx.Context) execctx.Word { return v }
}

func (b *Builder) ConstUint64(v uint64) backend.Value {
	var w execctx.Word
	w.SetUint64(v)
	return func(ctx *execctx.Context) execctx.Word { return w }
}

// Cold, Unreachable and NoReturn are advisory attribute hints a real
// codegen backend might use to steer block placement or trap generation;
// refvm's dispatch loop has no such concept of placement, so they are
// no-ops here.
func (b *Builder) Cold(id backend.BlockID)        {}
func (b *Builder) Unreachable(id backend.BlockID) {}
func (b *Builder) NoReturn(id backend.BlockID)    {}
