package refvm

import (
	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
)

// Load reads one 32-byte word at a byte offset. The translator is
// responsible for having resized memory beforehand.
func (b *Builder) Load(offset backend.Value) backend.Value {
	return func(ctx *execctx.Context) execctx.Word {
		off := offset(ctx).Uint64()
		data := ctx.Memory.Get(off, 32)
		var w execctx.Word
		w.SetBytes(data)
		return w
	}
}

// Store writes one 32-byte word at a byte offset.
func (b *Builder) Store(offset, v backend.Value) {
	b.emit(func(ctx *execctx.Context) {
		off := offset(ctx).Uint64()
		val := v(ctx)
		ctx.Memory.Set32(off, &val)
	})
}

// Copy performs a bulk byte copy within memory, used by the COPY-family
// opcodes (CALLDATACOPY, CODECOPY, RETURNDATACOPY, EXTCODECOPY, MCOPY).
// length == 0 is a no-op and must not have triggered a resize upstream.
func (b *Builder) Copy(dstOffset, srcOffset, length backend.Value) {
	b.emit(func(ctx *execctx.Context) {
		n := length(ctx).Uint64()
		if n == 0 {
			return
		}
		dst := dstOffset(ctx).Uint64()
		src := srcOffset(ctx).Uint64()
		data := ctx.Memory.Get(src, n)
		ctx.Memory.Set(dst, data)
	})
}
