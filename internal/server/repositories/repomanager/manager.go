package repomanager

import (
	"context"
	"database/sql"

	"github.com/Harshinireddy05/DayntTech/internal/dbx"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/people"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	People(db dbx.DBTX) people.Repository
}
