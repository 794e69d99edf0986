package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// maxPasswordBytes is the bcrypt input limit; longer inputs would be truncated.
const maxPasswordBytes = 72

// BcryptHasher hashes passwords with bcrypt. The salt is embedded in the hash.
type BcryptHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewBcryptHasher returns a hasher with the given cost, clamped to bcrypt's
// accepted range. Zero selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the opaque bcrypt hash of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		// bcrypt errors never contain the input.
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. The comparison of derived
// keys is constant time.
// Plaintexts over 72 bytes never match: bcrypt would compare only their
// prefix. One comparison still runs for them.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	if len(plaintext) > maxPasswordBytes {
		_ = bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext[:maxPasswordBytes]))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyDummy spends the same work as Verify against a throwaway hash. Login
// calls it for unknown emails so response time does not reveal existence.
func (h *BcryptHasher) VerifyDummy(plaintext string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("gymguider-no-such-account"), h.cost)
	})
	if len(plaintext) > maxPasswordBytes {
		plaintext = plaintext[:maxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
}
