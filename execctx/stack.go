package execctx

import "github.com/holiman/uint256"

// Stack is the caller-owned array of 1024 32-byte slots plus a
// caller-owned length cell. Compiled functions address it via
// a pointer and a separate length pointer so the host can inspect or
// rewind it between invocations -- Go's slice header already
// carries a pointer, so Data and Len are kept as ordinary fields rather
// than raw pointers; the translator and reference backend read/write Len
// directly the same way compiled native code rematerializes *stack_len.
type Stack struct {
	Data [StackSlots]Word
	Len  int
}

// NewStack returns an empty stack.
func NewStack() *Stack { return &Stack{} }

// Push appends a value. The caller (translator/backend) is responsible
// for checking capacity up front; Push itself trusts its caller the way
// compiled code, having already passed the block's fused bounds check,
// trusts its own stack-height bookkeeping.
func (s *Stack) Push(v *Word) {
	s.Data[s.Len] = *v
	s.Len++
}

// Pop removes and returns the top value.
func (s *Stack) Pop() Word {
	s.Len--
	return s.Data[s.Len]
}

// Peek returns a pointer to the n-th value from the top (0 = top) without
// removing it.
func (s *Stack) Peek(n int) *Word {
	return &s.Data[s.Len-1-n]
}

// Swap exchanges the top element with the one n positions below it.
func (s *Stack) Swap(n int) {
	top := s.Len - 1
	s.Data[top], s.Data[top-n] = s.Data[top-n], s.Data[top]
}

// Dup pushes a copy of the value n positions below the top (1 = top).
func (s *Stack) Dup(n int) {
	v := s.Data[s.Len-n]
	s.Push(&v)
}

// PushUint64 is a convenience wrapper used heavily by the translator's
// constant-materialization lowering.
func (s *Stack) PushUint64(v uint64) {
	w := new(uint256.Int).SetUint64(v)
	s.Push(w)
}
