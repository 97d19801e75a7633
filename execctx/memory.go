package execctx

// Memory is the growable linear byte array backing MLOAD/MSTORE/etc., with
// 32-byte-aligned growth semantics matching EVM memory expansion gas
// costs, plus the round-up-to-word helper the translator's dynamic-gas
// lowering needs before any bytes are touched.
type Memory struct {
	store []byte
}

// NewMemory returns empty memory.
func NewMemory() *Memory { return &Memory{} }

// Len returns the current size in bytes (always a multiple of 32 once any
// growth has occurred).
func (m *Memory) Len() int { return len(m.store) }

// Data exposes the backing slice for bulk reads; callers must not retain
// it past the next Resize.
func (m *Memory) Data() []byte { return m.store }

// WordCount returns the number of 32-byte words size rounds up to -- the
// quantity the quadratic memory-expansion gas formula is defined over.
func WordCount(size uint64) uint64 {
	return (size + 31) / 32
}

// Resize grows memory to newSize bytes (rounded up to a whole word) if it
// is currently smaller; it never shrinks. Zero-length operations must not
// call Resize at all -- that check belongs to the translator's dynamic-gas lowering,
// not here.
func (m *Memory) Resize(newSize uint64) {
	words := WordCount(newSize)
	size := int(words * 32)
	if size <= len(m.store) {
		return
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
}

// Set writes data at offset, which must already be within bounds (the
// caller resizes first).
func (m *Memory) Set(offset uint64, data []byte) {
	copy(m.store[offset:], data)
}

// Set32 writes a single 32-byte word at offset.
func (m *Memory) Set32(offset uint64, val *Word) {
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// Get returns a copy of size bytes starting at offset.
func (m *Memory) Get(offset, size uint64) []byte {
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out
}
