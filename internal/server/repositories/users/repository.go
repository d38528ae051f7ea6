package users

import (
	"context"

	"github.com/Harshinireddy05/DayntTech/internal/server/models"
)

// Repository is the credential table surface used by the SQL store.
type Repository interface {
	Create(ctx context.Context, cred *models.Credential) error
	GetUserByEmail(ctx context.Context, email string) (*models.Credential, error)
	List(ctx context.Context) ([]models.Credential, error)
}
