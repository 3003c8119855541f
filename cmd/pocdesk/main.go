package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"pocdesk/internal/api"
	"pocdesk/internal/cli"
	"pocdesk/internal/db"
	"pocdesk/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := api.LoadConfig()

	// Determine DB path: env var or default ~/.pocdesk/pocdesk.db
	dbPath := os.Getenv("POCDESK_DB")
	if dbPath == "" {
		var err error
		dbPath, err = db.DefaultPath()
		if err != nil {
			return err
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store, err := session.NewStore(context.Background(), database)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}

	app := &cli.App{
		Backend:  api.NewClient(cfg, store, observer),
		Sessions: store,
		Config:   cfg,
	}

	// Detect interactive terminal for the TUI-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
