package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Totenem/Time-Tracker-App/internal/common/constants"
	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher caps concurrent hashing with a semaphore: bcrypt at cost 12
// burns tens of milliseconds of CPU per call and would otherwise starve
// concurrent requests under a signup burst.
type BcryptHasher struct {
	cost int
	sem  chan struct{}
}

func NewBcryptHasher(maxConcurrent int) *BcryptHasher {
	if maxConcurrent <= 0 {
		maxConcurrent = constants.DefaultHashWorkers
	}
	return &BcryptHasher{
		cost: constants.BcryptCost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	if hash == "" {
		return commonerrors.ErrInvalidHash
	}

	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return err
	}
	return commonerrors.ErrInvalidHash.WithCause(err)
}
