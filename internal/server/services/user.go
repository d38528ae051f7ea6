// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login and session token checks.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/password"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
)

// UserService provides authentication-related operations:
// - Signup: register a credential and create an empty collection
// - Login: verify credentials and mint a session token
// - Authenticate: turn a session token back into a session
// - Logout: revoke a session
type UserService struct {
	store     repositories.Store
	hasher    password.Hasher
	issuer    *auth.Issuer
	logger    logging.Logger
	dummyHash func() (string, error)
}

// NewUserService constructs a UserService over store.
func NewUserService(store repositories.Store, hasher password.Hasher, issuer *auth.Issuer, logger logging.Logger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		logger: logger.With("module", "users"),
		dummyHash: sync.OnceValues(func() (string, error) {
			return hasher.Hash("peoplehub-unknown-user")
		}),
	}
}

// Signup registers email with password. The address is trimmed and
// lower-cased. A registered email yields common.ErrorAlreadyExists and
// leaves that user's collection untouched. Signup does not log the user in.
func (s *UserService) Signup(ctx context.Context, email, pass string) error {
	email, err := checkCredentials(email, pass)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		s.logger.Error(ctx, "hash password", "error", err)
		return common.ErrorInternal
	}

	if err := s.store.AddUser(ctx, models.Credential{Email: email, PasswordHash: hash}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "add user", "email", email, "error", err)
		return common.ErrorInternal
	}

	if err := s.store.SavePeople(ctx, email, []models.Person{}); err != nil {
		s.logger.Error(ctx, "create empty collection", "email", email, "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "user signed up", "email", email)
	return nil
}

// Login verifies the password and returns a session token. Unknown emails
// and wrong passwords both yield common.ErrorInvalidCredentials; unknown
// emails still pay for one hash verification.
func (s *UserService) Login(ctx context.Context, email, pass string) (string, error) {
	email, err := checkCredentials(email, pass)
	if err != nil {
		return "", err
	}

	cred, err := s.store.FindUser(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerify(pass)
			return "", common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "find user", "email", email, "error", err)
		return "", common.ErrorInternal
	}

	ok, err := s.hasher.Verify(pass, cred.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "verify password", "email", email, "error", err)
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorInvalidCredentials
	}

	token, err := s.issuer.Issue(email)
	if err != nil {
		s.logger.Error(ctx, "issue token", "error", err)
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "email", email)
	return token, nil
}

// Authenticate validates a session token.
func (s *UserService) Authenticate(token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, common.ErrorUnauthorized
	}
	return s.issuer.Parse(token)
}

// Logout revokes sess so its token is refused from now on.
func (s *UserService) Logout(ctx context.Context, sess models.Session) {
	s.issuer.Revoke(sess)
	s.logger.Info(ctx, "user logged out", "email", sess.Email)
}

// Users lists the registered emails in order.
func (s *UserService) Users(ctx context.Context) ([]string, error) {
	creds, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "list users", "error", err)
		return nil, common.ErrorInternal
	}
	out := make([]string, 0, len(creds))
	for _, c := range creds {
		out = append(out, c.Email)
	}
	return out, nil
}

func (s *UserService) burnVerify(pass string) {
	hash, err := s.dummyHash()
	if err != nil {
		return
	}
	_, _ = s.hasher.Verify(pass, hash)
}

func checkCredentials(email, pass string) (string, error) {
	email = models.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(pass) == "" {
		return "", fmt.Errorf("%w: please fill in all fields", common.ErrorValidation)
	}
	if err := models.ValidateEmail(email); err != nil {
		return "", err
	}
	return email, nil
}
