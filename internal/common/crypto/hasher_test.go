package crypto_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Totenem/Time-Tracker-App/internal/common/crypto"
	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := crypto.NewBcryptHasher(2)

	hash, err := hasher.Hash("TestPassword123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "TestPassword123" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := hasher.Compare(hash, "TestPassword123"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := hasher.Compare(hash, "WrongPassword123"); !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Errorf("expected mismatch error, got %v", err)
	}
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := crypto.NewBcryptHasher(2)

	first, err := hasher.Hash("TestPassword123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := hasher.Hash("TestPassword123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

func TestBcryptHasher_Compare_InvalidHash(t *testing.T) {
	hasher := crypto.NewBcryptHasher(2)

	testCases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"malformed", "not-a-bcrypt-hash"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := hasher.Compare(tc.hash, "TestPassword123")
			if !errors.Is(err, commonerrors.ErrInvalidHash) {
				t.Errorf("expected ErrInvalidHash, got %v", err)
			}
		})
	}
}
