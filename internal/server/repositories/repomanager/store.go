package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/dbx"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
)

// PostgresStore adapts the table repositories to repositories.Store.
type PostgresStore struct {
	db *sql.DB
	rm RepositoryManager
}

func NewPostgresStore(db *sql.DB, rm RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, rm: rm}
}

func (s *PostgresStore) ListPeople(ctx context.Context, email string) ([]models.Person, error) {
	repo := s.rm.People(s.db)

	ok, err := repo.CollectionExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorNotFound
	}
	return repo.SelectByOwner(ctx, email)
}

// SavePeople replaces the collection in a single transaction so a failed
// write leaves the previous rows in place.
func (s *PostgresStore) SavePeople(ctx context.Context, email string, people []models.Person) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.People(tx)
		if err := repo.MarkCollection(ctx, email); err != nil {
			return err
		}
		if err := repo.DeleteByOwner(ctx, email); err != nil {
			return err
		}
		for _, p := range people {
			if err := repo.Insert(ctx, email, p); err != nil {
				return fmt.Errorf("insert person %d: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.Credential, error) {
	return s.rm.Users(s.db).List(ctx)
}

func (s *PostgresStore) AddUser(ctx context.Context, cred models.Credential) error {
	return s.rm.Users(s.db).Create(ctx, &cred)
}

func (s *PostgresStore) FindUser(ctx context.Context, email string) (*models.Credential, error) {
	return s.rm.Users(s.db).GetUserByEmail(ctx, email)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

var _ repositories.Store = (*PostgresStore)(nil)
