// Package users provides the PostgreSQL-backed credential repository.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/dbx"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts cred. An existing email leaves the row untouched and
// returns common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, cred *models.Credential) error {
	query :=
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, cred.Email, cred.PasswordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.Credential, error) {
	query :=
		`SELECT email, password_hash FROM users
		 WHERE email = $1
		 `

	cred := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&cred.Email, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Credential, error) {
	query := `SELECT email, password_hash FROM users ORDER BY email`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Credential{}
	for rows.Next() {
		var c models.Credential
		if err := rows.Scan(&c.Email, &c.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
