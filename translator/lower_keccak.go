package translator

import (
	"github.com/evmc-go/evmc/crypto"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerKeccak256 implements KECCAK256(offset, size): pops offset (top) then
// size, expands memory to cover the range, charges the per-word hashing
// surcharge, then pushes the hash of the memory range.
func (tr *lowering) lowerKeccak256() {
	var offset, size uint64
	tr.b.Emit(func(ctx *execctx.Context) {
		o := pop(ctx)
		s := pop(ctx)
		offset = o.Uint64()
		size = s.Uint64()
	})
	tr.ensureMemory(
		func(ctx *execctx.Context) uint64 { return offset },
		func(ctx *execctx.Context) uint64 { return size },
	)
	tr.chargeGas(func(ctx *execctx.Context) uint64 {
		words := execctx.WordCount(size)
		return opcodes.GasKeccak256Word * words
	})
	tr.push(func(ctx *execctx.Context) execctx.Word {
		data := ctx.Memory.Get(offset, size)
		hash := crypto.Keccak256(data)
		var w execctx.Word
		w.SetBytes(hash[:])
		return w
	})
}
