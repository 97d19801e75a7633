package execctx

import "github.com/holiman/uint256"

// Word is a single 256-bit EVM stack slot. It is an alias for uint256.Int
// rather than a hand-rolled bignum type, since its methods already
// implement the wrapping-unsigned / two's-complement-signed arithmetic
// the opcode set needs (Add, Mul, Div, SDiv, Mod, SMod, Lsh, Rsh, SRsh,
// ...).
type Word = uint256.Int

// StackSlots is the fixed caller-owned stack capacity.
const StackSlots = 1024
