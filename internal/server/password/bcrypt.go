package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher clamps cost to bcrypt's valid range; nil means cost 12.
func NewBcryptHasher(cost *int) *BcryptHasher {
	c := 12
	if cost != nil {
		c = min(max(*cost, bcrypt.MinCost), bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: c}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

var _ Hasher = (*BcryptHasher)(nil)
