// Package auth issues and validates session tokens. A token is the
// client-held session flag: it records that the bearer logged in as Email.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims plus the session owner's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken signs an HS256 token for email. A zero validity produces a
// token without expiry: the session then lasts until logout.
func GenerateToken(sessionID, email string, secretKey []byte, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Email: email,
	}
	if validity != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validity))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ParseToken validates tokenString and returns the session it encodes.
func ParseToken(tokenString string, secretKey []byte) (models.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Session{}, common.ErrTokenExpired
		}
		return models.Session{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Email == "" {
		return models.Session{}, common.ErrInvalidToken
	}

	sess := models.Session{ID: claims.ID, Authenticated: true, Email: claims.Email}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// Issuer mints and checks tokens with one secret and lifetime. Sessions
// ended by Revoke are refused until their token would have expired. The
// revocation list lives in memory, so it does not survive a restart.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // session id -> token expiry, zero for none
}

func NewIssuer(secret string, validity time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
		revoked:  map[string]time.Time{},
	}
}

// Issue starts a new session for email.
func (i *Issuer) Issue(email string) (string, error) {
	return GenerateToken(uuid.NewString(), email, i.secret, i.validity)
}

// Parse validates token and refuses revoked sessions.
func (i *Issuer) Parse(token string) (models.Session, error) {
	sess, err := ParseToken(token, i.secret)
	if err != nil {
		return models.Session{}, err
	}

	i.mu.Lock()
	_, revoked := i.revoked[sess.ID]
	i.mu.Unlock()
	if revoked {
		return models.Session{}, common.ErrInvalidToken
	}
	return sess, nil
}

// Revoke ends sess. Entries for tokens that have expired anyway are
// dropped on the way.
func (i *Issuer) Revoke(sess models.Session) {
	if sess.ID == "" {
		return
	}
	now := i.now()

	i.mu.Lock()
	defer i.mu.Unlock()

	for id, exp := range i.revoked {
		if !exp.IsZero() && exp.Before(now) {
			delete(i.revoked, id)
		}
	}
	i.revoked[sess.ID] = sess.ExpiresAt
}

// Revoked is the number of sessions currently on the revocation list.
func (i *Issuer) Revoked() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.revoked)
}

// Validity is the configured session lifetime; zero means no expiry.
func (i *Issuer) Validity() time.Duration { return i.validity }
