package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/password"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/memory"
)

var errBackend = errors.New("backend down")

// flakyStore wraps the memory store and fails the operations switched on.
type flakyStore struct {
	*memory.Store

	mu        sync.Mutex
	failList  bool
	failSave  bool
	failAdd   bool
	failFind  bool
	saveCalls int
}

func newFlakyStore() *flakyStore { return &flakyStore{Store: memory.New()} }

func (f *flakyStore) ListPeople(ctx context.Context, email string) ([]models.Person, error) {
	if f.failList {
		return nil, errBackend
	}
	return f.Store.ListPeople(ctx, email)
}

func (f *flakyStore) SavePeople(ctx context.Context, email string, people []models.Person) error {
	f.mu.Lock()
	f.saveCalls++
	f.mu.Unlock()
	if f.failSave {
		return errBackend
	}
	return f.Store.SavePeople(ctx, email, people)
}

func (f *flakyStore) AddUser(ctx context.Context, cred models.Credential) error {
	if f.failAdd {
		return errBackend
	}
	return f.Store.AddUser(ctx, cred)
}

func (f *flakyStore) FindUser(ctx context.Context, email string) (*models.Credential, error) {
	if f.failFind {
		return nil, errBackend
	}
	return f.Store.FindUser(ctx, email)
}

func fastHasher() password.Hasher {
	return password.NewArgon2Hasher(&password.Argon2Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  8,
		KeyLength:   16,
	})
}

func newTestUserService(store *flakyStore) *UserService {
	return NewUserService(store, fastHasher(), auth.NewIssuer("test-secret", 0), logging.Nop())
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }
