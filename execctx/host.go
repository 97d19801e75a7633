package execctx

import "github.com/evmc-go/evmc/core/types"

// Host is the set of runtime builtins compiled code calls directly for a
// host-side opcode that does *not* suspend (BALANCE, EXTCODE*, SLOAD,
// SSTORE, TLOAD, TSTORE, LOG*, BLOCKHASH, SELFDESTRUCT). CALL, CALLCODE,
// DELEGATECALL, STATICCALL, CREATE and CREATE2 are not performed through
// Host -- they populate NextAction and suspend with ReasonCallOrCreate, and
// the host performs them out of band before resuming. The CALL family does
// call Balance first, to learn whether the callee is warm for its gas
// surcharge.
type Host interface {
	Balance(addr types.Address) (value Word, warm bool)
	ExtCodeSize(addr types.Address) (size uint64, warm bool)
	ExtCodeHash(addr types.Address) (hash types.Hash, warm bool)
	ExtCodeCopy(addr types.Address) (code []byte, warm bool)

	SLoad(addr types.Address, key Word) (value Word, warm bool)
	SStore(addr types.Address, key, value Word) (originalZero, currentZero, warm bool)

	TLoad(addr types.Address, key Word) Word
	TStore(addr types.Address, key, value Word)

	Log(addr types.Address, topics []Word, data []byte)

	BlockHash(number uint64) types.Hash

	SelfDestruct(addr types.Address, beneficiary types.Address) (warm bool)
}
