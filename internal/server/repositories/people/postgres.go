// Package people provides the PostgreSQL-backed repository for person rows
// and the per-user collection marker.
package people

import (
	"context"
	"fmt"

	"github.com/Harshinireddy05/DayntTech/internal/dbx"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
)

// PostgresRepository implements person storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CollectionExists reports whether owner has ever saved a collection. An
// empty collection still exists.
func (r *PostgresRepository) CollectionExists(ctx context.Context, owner string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM collections WHERE owner_email = $1)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, owner).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

// MarkCollection records that owner has a collection, bumping updated_at.
func (r *PostgresRepository) MarkCollection(ctx context.Context, owner string) error {
	query := `
		INSERT INTO collections (owner_email)
		VALUES ($1)
		ON CONFLICT (owner_email)
		DO UPDATE SET updated_at = now();
	`
	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectByOwner returns the collection ordered by id.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, owner string) ([]models.Person, error) {
	query := `SELECT id, name, dob FROM people
		WHERE owner_email = $1
		ORDER BY id
		`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select people: %w", err)
	}
	defer rows.Close()

	result := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.DateOfBirth); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, owner string) error {
	query := `DELETE FROM people WHERE owner_email = $1`
	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, owner string, p models.Person) error {
	query := `INSERT INTO people (owner_email, id, name, dob) VALUES ($1, $2, $3, $4)`
	res, err := r.db.ExecContext(ctx, query, owner, p.ID, p.Name, p.DateOfBirth)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}
