package crypto

import (
	"encoding/hex"
	"testing"
)

func TestKeccak256EmptyInput(t *testing.T) {
	// The empty-string Keccak-256 digest is a well-known fixed value,
	// also used elsewhere as the canonical "no code" hash.
	got := hex.EncodeToString(Keccak256())
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got != want {
		t.Errorf("Keccak256() = %s, want %s", got, want)
	}
}

func TestKeccak256ConcatenatesArgs(t *testing.T) {
	a := Keccak256([]byte("foo"), []byte("bar"))
	b := Keccak256([]byte("foobar"))
	if hex.EncodeToString(a) != hex.EncodeToString(b) {
		t.Error("Keccak256(\"foo\",\"bar\") should equal Keccak256(\"foobar\")")
	}
}

func TestKeccak256HashMatchesKeccak256(t *testing.T) {
	data := []byte("hello")
	h := Keccak256Hash(data)
	if h.Hex() != "0x"+hex.EncodeToString(Keccak256(data)) {
		t.Errorf("Keccak256Hash = %s, want 0x%x", h.Hex(), Keccak256(data))
	}
}

func TestKeccak256DifferentInputsDiffer(t *testing.T) {
	a := Keccak256([]byte("a"))
	b := Keccak256([]byte("b"))
	if hex.EncodeToString(a) == hex.EncodeToString(b) {
		t.Error("distinct inputs produced the same digest")
	}
}
