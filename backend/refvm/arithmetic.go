package refvm

import (
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
	"github.com/holiman/uint256"
)

// Values are pure expressions; they never need an insertion point, so
// these methods read directly from the arguments rather than the current
// block.

func (b *Builder) Add(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.Add(&a, &c)
	}
}

func (b *Builder) Sub(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.Sub(&a, &c)
	}
}

func (b *Builder) Mul(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.Mul(&a, &c)
	}
}

func (b *Builder) Div(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.Div(&a, &c)
	}
}

func (b *Builder) SDiv(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.SDiv(&a, &c)
	}
}

func (b *Builder) Mod(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.Mod(&a, &c)
	}
}

func (b *Builder) SMod(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.SMod(&a, &c)
	}
}

func (b *Builder) AddMod(x, y, n backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c, m := x(ctx), y(ctx), n(ctx)
		var r uint256.Int
		return *r.AddMod(&a, &c, &m)
	}
}

func (b *Builder) MulMod(x, y, n backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c, m := x(ctx), y(ctx), n(ctx)
		var r uint256.Int
		return *r.MulMod(&a, &c, &m)
	}
}

func (b *Builder) And(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.And(&a, &c)
	}
}

func (b *Builder) Or(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.Or(&a, &c)
	}
}

func (b *Builder) Xor(x, y backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, c := x(ctx), y(ctx)
		var r uint256.Int
		return *r.Xor(&a, &c)
	}
}

func (b *Builder) Not(x backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a := x(ctx)
		var r uint256.Int
		return *r.Not(&a)
	}
}

func (b *Builder) Shl(x, shift backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, s := x(ctx), shift(ctx)
		var r uint256.Int
		if s.GtUint64(255) {
			return r
		}
		return *r.Lsh(&a, uint(s.Uint64()))
	}
}

func (b *Builder) Shr(x, shift backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, s := x(ctx), shift(ctx)
		var r uint256.Int
		if s.GtUint64(255) {
			return r
		}
		return *r.Rsh(&a, uint(s.Uint64()))
	}
}

func (b *Builder) Sar(x, shift backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		a, s := x(ctx), shift(ctx)
		var r uint256.Int
		if s.GtUint64(255) {
			if a.Sign() < 0 {
				return *r.SetAllOne()
			}
			return r
		}
		return *r.SRsh(&a, uint(s.Uint64()))
	}
}
