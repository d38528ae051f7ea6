// Package repositories defines the persistence capability set shared by all
// storage backends: whole-collection people access keyed by user email plus
// the registered credentials.
//
// Collections are replaced as a whole (read-modify-write). Backends do not
// lock across processes, so two clients editing the same collection at once
// keep whichever write lands last.
package repositories

import (
	"context"

	"github.com/Harshinireddy05/DayntTech/internal/server/models"
)

// Store is implemented by every backend.
type Store interface {
	// ListPeople returns the collection owned by email, or
	// common.ErrorNotFound if the user has no collection yet.
	ListPeople(ctx context.Context, email string) ([]models.Person, error)
	// SavePeople replaces the whole collection owned by email.
	SavePeople(ctx context.Context, email string, people []models.Person) error

	ListUsers(ctx context.Context) ([]models.Credential, error)
	// AddUser fails with common.ErrorAlreadyExists for a registered email.
	AddUser(ctx context.Context, cred models.Credential) error
	// FindUser returns common.ErrorNotFound for an unknown email.
	FindUser(ctx context.Context, email string) (*models.Credential, error)

	Close() error
}

// ClonePeople copies a collection so callers never share backing arrays
// with a store.
func ClonePeople(people []models.Person) []models.Person {
	if people == nil {
		return []models.Person{}
	}
	out := make([]models.Person, len(people))
	copy(out, people)
	return out
}
