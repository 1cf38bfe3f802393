// Command ipoctl collects IPO listings and queries the stored history from
// the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/mauv0809/ipo-watch/internal/config"
	"github.com/mauv0809/ipo-watch/internal/db"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/logging"
)

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&collectCmd{}, "collection")
	commander.Register(&showCmd{}, "history")
	commander.Register(&datesCmd{}, "history")
	commander.Register(&monthsCmd{}, "history")
	commander.Register(&monthCmd{}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// env is what every subcommand needs: configuration, a logger and the store.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *history.Store
	repo   *db.Repository
	close  func()
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logging.New(cfg.Log, os.Stderr), close: func() {}}

	if cfg.Backend != "postgres" {
		e.store, err = history.Open(cfg.DataDir, history.WithLogger(e.logger))
		return e, err
	}
	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, err
	}
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	e.repo = db.NewRepository(pool)
	e.store = history.New(e.repo, history.WithLogger(e.logger))
	e.close = pool.Close
	return e, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
