package opcodes

// Gas tiers, Yellow Paper Appendix G: Gzero=0, Gbase=2, Gverylow=3, Glow=5,
// Gmid=8, Ghigh=10, Gext=20. Named constants below are the base costs baked
// into Metadata.BaseGas; dynamic surcharges (memory expansion, cold/warm
// access, per-byte/per-topic costs) are computed by the translator and
// are not part of this static table.
const (
	GasZero    uint64 = 0
	GasBase    uint64 = 2
	GasVerylow uint64 = 3
	GasLow     uint64 = 5
	GasMid     uint64 = 8
	GasHigh    uint64 = 10
	GasExt     uint64 = 20

	GasJumpDest uint64 = 1
	GasKeccak256Base uint64 = 30
	GasKeccak256Word uint64 = 6
	GasMemoryWord    uint64 = 3
	GasCopyWord      uint64 = 3
	GasLogBase       uint64 = 375
	GasLogTopic      uint64 = 375
	GasLogDataByte   uint64 = 8

	GasBalanceCold uint64 = 2600
	GasBalanceWarm uint64 = 100
	GasSloadCold   uint64 = 2100
	GasSloadWarm   uint64 = 100
	GasSstoreSet   uint64 = 20000
	GasSstoreReset uint64 = 2900
	GasCallCold    uint64 = 2600
	GasCallWarm    uint64 = 100
	GasCreate      uint64 = 32000
	GasSelfdestruct uint64 = 5000
	GasTload       uint64 = 100
	GasTstore      uint64 = 100
	GasMcopyWord   uint64 = 3
	GasExpByte     uint64 = 50
)
