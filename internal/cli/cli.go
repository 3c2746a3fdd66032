// Package cli holds the shared plumbing for all commands: application
// startup, output formatting and exit codes.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tranvq/pipeboard/internal/app"
	"github.com/tranvq/pipeboard/internal/cli/styles"
	"github.com/tranvq/pipeboard/internal/config"
	"github.com/tranvq/pipeboard/internal/logging"
	"github.com/tranvq/pipeboard/internal/storage"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App
	ctx context.Context
}

// NewCLI loads configuration, initializes logging and the store, and
// builds the application container.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Init(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	styles.Init(cfg.Theme)

	var store storage.Store
	store, err = storage.OpenSQLite(ctx, cfg.DatabasePath())
	if err != nil {
		// Degrade to a non-durable session rather than refusing to run.
		slog.Error("failed to open store, running in-memory", "path", cfg.DatabasePath(), "error", err)
		fmt.Fprintln(os.Stderr, "Warning: could not open the database; changes will not be saved")
		store = storage.NewMemoryStore()
	}

	return &CLI{
		App: app.New(store, cfg),
		ctx: ctx,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
