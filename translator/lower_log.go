package translator

import (
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

// lowerLog implements LOG0..LOG4: pop(offset, size), then pop n topics in
// stack order, expand memory, charge the per-topic and per-byte surcharge,
// then hand the record to the host. LOGn's base cost is
// already in the block's static gas sum (opcodes/metadata.go); only the
// per-topic and per-byte parts are dynamic.
func (tr *lowering) lowerLog(op opcodes.OpCode) {
	n := int(op - opcodes.LOG0)

	var offset, size uint64
	var topics [4]execctx.Word
	tr.b.Emit(func(ctx *execctx.Context) {
		offset = pop(ctx).Uint64()
		size = pop(ctx).Uint64()
		for i := 0; i < n; i++ {
			topics[i] = pop(ctx)
		}
	})
	tr.ensureMemory(
		func(ctx *execctx.Context) uint64 { return offset },
		func(ctx *execctx.Context) uint64 { return size },
	)
	tr.chargeGas(func(ctx *execctx.Context) uint64 {
		return uint64(n)*opcodes.GasLogTopic + size*opcodes.GasLogDataByte
	})
	tr.b.Emit(func(ctx *execctx.Context) {
		data := append([]byte(nil), ctx.Memory.Get(offset, size)...)
		ctx.Host.Log(ctx.Env.Address, topics[:n], data)
	})
}
