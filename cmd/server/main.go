package main

import (
	"context"
	"os"

	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server"
	"github.com/Harshinireddy05/DayntTech/internal/server/config"
	"github.com/zarlcorp/core/pkg/zapp"
)

func main() {
	app := zapp.New(zapp.WithName("peoplehub"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	// errors from before the config is loaded have no configured level yet
	logger := logging.NewJSON(os.Stderr, "info").With("module", "main")

	if err := run(ctx); err != nil {
		logger.Error(ctx, "peoplehub", "error", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		logger.Error(ctx, "shutdown", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	a, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
