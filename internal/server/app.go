// Package server wires the PeopleHub components together: storage, the
// account and people services, the web UI and the gRPC API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"github.com/Harshinireddy05/DayntTech/internal/server/config"
	"github.com/Harshinireddy05/DayntTech/internal/server/password"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories/repomanager"
	"github.com/Harshinireddy05/DayntTech/internal/server/services"
	"github.com/Harshinireddy05/DayntTech/internal/server/web"
	"github.com/zarlcorp/core/pkg/zcrypto"

	gs "github.com/Harshinireddy05/DayntTech/internal/server/grpc"
)

const generatedSecretLength = 48

// openStore is swapped in tests.
var openStore = repomanager.Open

type App struct {
	config        *config.Config
	logger        logging.Logger
	store         repositories.Store
	userService   *services.UserService
	peopleService *services.PeopleService

	failOnce sync.Once
	runErr   error
}

// NewApp opens the configured store and builds the services. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewJSON(w, c.LogLevel)

	secret := c.SecretKey
	if secret == "" {
		logger.Warn(ctx, "no secret key configured, sessions will not survive a restart")
		secret = zcrypto.GeneratePassword(generatedSecretLength)
	}

	hasher, err := password.New(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	issuer := auth.NewIssuer(secret, c.SessionValidityDuration)

	return &App{
		config:        c,
		logger:        logger,
		store:         store,
		userService:   services.NewUserService(store, hasher, issuer, logger),
		peopleService: services.NewPeopleService(store, logger, c.SeedOnFirstAccess),
	}, nil
}

// fail records the first server error and stops the other server.
func (app *App) fail(ctx context.Context, cancelFunc context.CancelFunc, err error) {
	app.logger.Error(ctx, err.Error())
	app.failOnce.Do(func() { app.runErr = err })
	cancelFunc()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h, err := web.NewHandler(app.userService, app.peopleService, app.config.SessionValidityDuration, app.logger)
	if err != nil {
		app.fail(ctx, cancelFunc, fmt.Errorf("http server: %w", err))
		return
	}

	s := web.NewHTTPServer(app.config.HTTPAddr, web.NewRouter(h, app.logger), app.logger)
	if err := s.Run(ctx); err != nil {
		app.fail(ctx, cancelFunc, fmt.Errorf("http server: %w", err))
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if app.config.GRPCAddr == "" {
		return
	}

	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService, app.peopleService)
	if err := s.Run(ctx); err != nil {
		app.fail(ctx, cancelFunc, fmt.Errorf("grpc server: %w", err))
	}
}

// Run serves until ctx is cancelled or a server fails, then closes the
// store. It returns the first server error joined with the close error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "Stopping app...")
	return errors.Join(app.runErr, app.store.Close())
}
