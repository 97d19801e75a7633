package types

import "testing"

func TestHashBytesRoundTrip(t *testing.T) {
	b := make([]byte, HashLength)
	for i := range b {
		b[i] = byte(i)
	}
	h := BytesToHash(b)
	if h.Hex() != "0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" {
		t.Errorf("Hex() = %s", h.Hex())
	}
	if got := HexToHash(h.Hex()); got != h {
		t.Errorf("HexToHash(h.Hex()) = %v, want %v", got, h)
	}
}

func TestHashLeftPadsShortInput(t *testing.T) {
	h := BytesToHash([]byte{0x01, 0x02})
	for i := 0; i < HashLength-2; i++ {
		if h[i] != 0 {
			t.Fatalf("byte %d = %#x, want 0 (left padding)", i, h[i])
		}
	}
	if h[HashLength-2] != 0x01 || h[HashLength-1] != 0x02 {
		t.Error("trailing bytes not preserved")
	}
}

func TestHashTruncatesLongInput(t *testing.T) {
	b := make([]byte, HashLength+4)
	b[len(b)-1] = 0xff
	h := BytesToHash(b)
	if h[HashLength-1] != 0xff {
		t.Error("BytesToHash should keep the trailing HashLength bytes when input is too long")
	}
}

func TestHashIsZero(t *testing.T) {
	var h Hash
	if !h.IsZero() {
		t.Error("zero-value Hash should report IsZero() == true")
	}
	h[0] = 1
	if h.IsZero() {
		t.Error("non-zero Hash should report IsZero() == false")
	}
}

func TestAddressBytesRoundTrip(t *testing.T) {
	a := BytesToAddress([]byte{0xde, 0xad, 0xbe, 0xef})
	got := HexToAddress(a.Hex())
	if got != a {
		t.Errorf("HexToAddress(a.Hex()) = %v, want %v", got, a)
	}
}

func TestAddressIsZero(t *testing.T) {
	var a Address
	if !a.IsZero() {
		t.Error("zero-value Address should report IsZero() == true")
	}
}

func TestNewAccountDefaults(t *testing.T) {
	acc := NewAccount()
	if acc.Root != EmptyRootHash {
		t.Errorf("Root = %v, want EmptyRootHash", acc.Root)
	}
	if string(acc.CodeHash) != string(EmptyCodeHash.Bytes()) {
		t.Error("CodeHash should default to EmptyCodeHash's bytes")
	}
	if acc.Balance == nil || acc.Balance.Sign() != 0 {
		t.Error("Balance should default to zero, not nil")
	}
}

func TestHexToHashAcceptsBothPrefixForms(t *testing.T) {
	withPrefix := HexToHash("0x0102")
	withoutPrefix := HexToHash("0102")
	if withPrefix != withoutPrefix {
		t.Error("HexToHash should treat a 0x prefix as optional")
	}
}
