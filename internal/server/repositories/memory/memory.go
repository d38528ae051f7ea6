// Package memory is a process-local Store. It is the default backend for
// development and the test double used throughout the test suite.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
)

type Store struct {
	mu     sync.RWMutex
	users  map[string]models.Credential
	people map[string][]models.Person
}

func New() *Store {
	return &Store{
		users:  make(map[string]models.Credential),
		people: make(map[string][]models.Person),
	}
}

func (s *Store) ListPeople(ctx context.Context, email string) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people, ok := s.people[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return repositories.ClonePeople(people), nil
}

func (s *Store) SavePeople(ctx context.Context, email string, people []models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.people[email] = repositories.ClonePeople(people)
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Credential, 0, len(s.users))
	for _, c := range s.users {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Store) AddUser(ctx context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[cred.Email]; ok {
		return common.ErrorAlreadyExists
	}
	s.users[cred.Email] = cred
	return nil
}

func (s *Store) FindUser(ctx context.Context, email string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (s *Store) Close() error { return nil }

var _ repositories.Store = (*Store)(nil)
