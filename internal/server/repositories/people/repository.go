package people

import (
	"context"

	"github.com/Harshinireddy05/DayntTech/internal/server/models"
)

type Repository interface {
	CollectionExists(ctx context.Context, owner string) (bool, error)
	MarkCollection(ctx context.Context, owner string) error
	SelectByOwner(ctx context.Context, owner string) ([]models.Person, error)
	DeleteByOwner(ctx context.Context, owner string) error
	Insert(ctx context.Context, owner string, p models.Person) error
}
