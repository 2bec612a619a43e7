package accounts

import (
	"strings"
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	password := "correct-horse-battery-staple"
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash == password {
		t.Error("hash must not equal the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !hasher.Verify(password, hash) {
		t.Error("Verify() rejected the correct password")
	}
	if hasher.Verify("wrong-password", hash) {
		t.Error("Verify() accepted a wrong password")
	}
	if hasher.Verify(password, "not-a-hash") {
		t.Error("Verify() accepted a malformed hash")
	}
}

func TestPasswordHasher_HashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password must differ")
	}
	if !hasher.Verify("same-password", h1) || !hasher.Verify("same-password", h2) {
		t.Error("both hashes must verify against the original password")
	}
}

func TestPasswordHasher_TooLongPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	// bcrypt rejects inputs above 72 bytes.
	if _, err := hasher.Hash(strings.Repeat("x", 80)); err == nil {
		t.Error("expected error for password above the bcrypt limit")
	}
}
