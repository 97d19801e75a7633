package execctx

import "github.com/evmc-go/evmc/core/types"

// Env holds the per-call and per-block values the environment- and
// block-information opcodes read (ADDRESS, CALLER, CALLVALUE, CALLDATA*,
// CODE*, GASPRICE, COINBASE, TIMESTAMP, NUMBER, ...). It is read-only for
// the duration of a call: call context and block context collapsed into
// one struct since the translator only ever reads these fields, never
// mutates them.
type Env struct {
	Address   types.Address
	Caller    types.Address
	Origin    types.Address
	Coinbase  types.Address
	CallValue Word
	CallData  []byte
	Code      []byte
	GasPrice  Word

	Timestamp   uint64
	BlockNumber uint64
	PrevRandao  Word
	GasLimit    uint64
	ChainID     Word
	BaseFee     Word
	BlobBaseFee Word
	BlobHashes  []types.Hash
}
