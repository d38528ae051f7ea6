// Package localstore is a Store kept in an encrypted on-disk key-value store.
// Credentials live in the "users" collection and each user's people in the
// "people" collection, both keyed by the hex-encoded email.
package localstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
)

const (
	usersCollection  = "users"
	peopleCollection = "people"
)

// peopleRecord is the value stored under a user's email. The email is kept
// inside the value so an absent key can be told apart from a read failure.
type peopleRecord struct {
	Email  string          `json:"email"`
	People []models.Person `json:"people"`
}

type Store struct {
	mu     sync.Mutex
	zs     *zstore.Store
	users  *zstore.Collection[models.Credential]
	people *zstore.Collection[peopleRecord]
}

// Open opens (or creates) the store under dir, encrypted with password.
func Open(dir, password string) (*Store, error) {
	return OpenFS(zfilesystem.NewOSFileSystem(dir), password)
}

// OpenFS opens the store on an arbitrary filesystem.
func OpenFS(fsys zfilesystem.ReadWriteFileFS, password string) (*Store, error) {
	zs, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	users, err := zstore.NewCollection[models.Credential](zs, usersCollection)
	if err != nil {
		zs.Close()
		return nil, fmt.Errorf("open users collection: %w", err)
	}

	people, err := zstore.NewCollection[peopleRecord](zs, peopleCollection)
	if err != nil {
		zs.Close()
		return nil, fmt.Errorf("open people collection: %w", err)
	}

	return &Store{zs: zs, users: users, people: people}, nil
}

func (s *Store) ListPeople(ctx context.Context, email string) ([]models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.people.Get(storeKey(email))
	if err != nil {
		return nil, s.missing(err, email, s.hasPeople)
	}
	return repositories.ClonePeople(rec.People), nil
}

func (s *Store) SavePeople(ctx context.Context, email string, people []models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := peopleRecord{Email: email, People: repositories.ClonePeople(people)}
	if err := s.people.Put(storeKey(email), rec); err != nil {
		return fmt.Errorf("save people: %w", err)
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]models.Credential, 0, len(all))
	out = append(out, all...)
	// zstore.List does not guarantee order
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Store) AddUser(ctx context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.hasUser(cred.Email)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrorAlreadyExists
	}
	if err := s.users.Put(storeKey(cred.Email), cred); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, email string) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.users.Get(storeKey(email))
	if err != nil {
		return nil, s.missing(err, email, s.hasUser)
	}
	return &c, nil
}

func (s *Store) Close() error {
	s.zs.Close()
	return nil
}

// missing turns a failed Get into common.ErrorNotFound when the key is
// really absent, and into a wrapped error otherwise.
func (s *Store) missing(getErr error, email string, has func(string) (bool, error)) error {
	ok, err := has(email)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}
	return fmt.Errorf("read %s: %w", email, getErr)
}

func (s *Store) hasUser(email string) (bool, error) {
	all, err := s.users.List()
	if err != nil {
		return false, fmt.Errorf("list users: %w", err)
	}
	for _, c := range all {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) hasPeople(email string) (bool, error) {
	all, err := s.people.List()
	if err != nil {
		return false, fmt.Errorf("list people: %w", err)
	}
	for _, r := range all {
		if r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// storeKey maps an email to a zstore id. zstore ids become file names, so
// the raw address never reaches the filesystem.
func storeKey(email string) string {
	return hex.EncodeToString([]byte(email))
}

var _ repositories.Store = (*Store)(nil)
