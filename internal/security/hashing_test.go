package security

import (
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(10)
	password := []byte("secret123")
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash returned empty")
	}
	ok, err := h.Verify(hash, password)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify rejected the correct password")
	}
}

func TestHasher_VerifyWrongPassword(t *testing.T) {
	h := NewHasher(10)
	hash, _ := h.Hash([]byte("secret123"))
	ok, err := h.Verify(hash, []byte("wrong"))
	if err != nil {
		t.Fatalf("Verify with wrong password should not error, got %v", err)
	}
	if ok {
		t.Fatal("Verify accepted a wrong password")
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(10)
	ok, err := h.Verify("not-a-bcrypt-digest", []byte("secret123"))
	if err == nil {
		t.Fatal("Verify with malformed hash should error")
	}
	if ok {
		t.Fatal("Verify accepted a malformed hash")
	}
}

func TestHasher_Cost(t *testing.T) {
	h := NewHasher(12)
	if h.Cost != 12 {
		t.Errorf("Cost want 12, got %d", h.Cost)
	}
	h0 := NewHasher(0)
	if h0.Cost < 4 {
		t.Errorf("zero cost should be clamped to at least MinCost, got %d", h0.Cost)
	}
}
