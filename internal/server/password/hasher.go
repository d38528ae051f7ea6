// Package password hashes and verifies login passwords. Credentials are
// never stored in clear text; the hash string records the algorithm and its
// parameters so it can be verified later.
package password

import (
	"fmt"
	"strings"
)

// Hasher hashes passwords and verifies candidates against stored hashes.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A malformed hash is an
	// error; a mismatch is not.
	Verify(password, hash string) (bool, error)
}

const (
	Argon2ID = "argon2id"
	Bcrypt   = "bcrypt"
)

// New returns the hasher registered under name.
func New(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Argon2ID:
		return NewArgon2Hasher(nil), nil
	case Bcrypt:
		return NewBcryptHasher(nil), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}
