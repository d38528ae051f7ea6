package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Harshinireddy05/DayntTech/internal/filex"
	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/config"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/localstore"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/memory"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/objectstore"
)

// seams for tests
var (
	sqlOpen     = sql.Open
	openObjects = func(ctx context.Context, c *config.Config) (repositories.Store, error) {
		return objectstore.New(ctx, c)
	}
	newManager = NewPostgresRepositoryManager
)

// Open returns the Store selected by c.StorageBackend.
func Open(ctx context.Context, c *config.Config, logger logging.Logger) (repositories.Store, error) {
	log := logger.With("module", "repomanager", "backend", c.StorageBackend)

	switch c.StorageBackend {
	case "", config.StorageMemory:
		log.Info(ctx, "using in-memory storage")
		return memory.New(), nil

	case config.StorageLocal:
		dir, err := filex.EnsureDir(c.LocalStoreDir)
		if err != nil {
			return nil, err
		}
		s, err := localstore.Open(dir, c.LocalStorePassword)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "opened local store", "dir", dir)
		return s, nil

	case config.StoragePostgres:
		db, err := sqlOpen("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		rm := newManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		log.Info(ctx, "connected to postgres")
		return NewPostgresStore(db, rm), nil

	case config.StorageS3:
		s, err := openObjects(ctx, c)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "using object storage", "bucket", c.S3Bucket)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
