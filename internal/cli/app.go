// app.go wires config, storage, event log and the store for a single command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/bowl-game/bowl/internal/config"
	applog "github.com/bowl-game/bowl/internal/log"
	"github.com/bowl-game/bowl/internal/storage"
	"github.com/bowl-game/bowl/internal/store"
)

// app holds everything a command needs. Close must be called when done.
type app struct {
	dir    string
	cfg    *config.Config
	log    zerolog.Logger
	kv     *storage.SQLiteKV
	games  *storage.GameStorage
	events *applog.Logger
	store  *store.Store
}

// projectDir returns the --dir flag or the working directory.
func projectDir() (string, error) {
	if dirFlag != "" {
		return filepath.Abs(dirFlag)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}

// loadDotEnv loads an optional .env file from the project directory.
// Variables already set in the environment win.
func loadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// openApp loads configuration and opens storage for the project.
func openApp() (*app, error) {
	dir, err := projectDir()
	if err != nil {
		return nil, err
	}
	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	diag := applog.NewDiagnostics(os.Stderr, level)

	dbPath := cfg.DBPath(dir)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	kv, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	a := &app{
		dir:   dir,
		cfg:   cfg,
		log:   diag,
		kv:    kv,
		games: storage.NewGameStorage(kv, diag),
	}

	opts := store.Options{Logger: &a.log}
	if cfg.Log.Events {
		events, err := applog.NewLogger(dir)
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		a.events = events
		opts.Events = events
	}
	a.store = store.New(a.games, opts)
	return a, nil
}

// Close releases the storage handle.
func (a *app) Close() error {
	return a.kv.Close()
}

// hydrate loads the last active game and settles a turn that ran out while
// no command was running. It reports whether a game is loaded.
func (a *app) hydrate(ctx context.Context) (bool, error) {
	ok, err := a.store.HydrateLastGame(ctx)
	if err != nil {
		return false, fmt.Errorf("loading last game: %w", err)
	}
	if !ok {
		return false, nil
	}
	if _, err := a.store.EndExpiredTurn(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// requireGame hydrates and fails with a hint when there is no game to act on.
func (a *app) requireGame(ctx context.Context) error {
	ok, err := a.hydrate(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: create one with 'bowl new -f setup.yaml'", store.ErrNoActiveGame)
	}
	return nil
}

// sessionEvents returns the logged events of one session. Read errors are
// logged and yield no events.
func (a *app) sessionEvents(sessionID string) []applog.LogEvent {
	if a.events == nil {
		return nil
	}
	all, err := a.events.ReadAll()
	if err != nil {
		a.log.Warn().Err(err).Msg("reading event log")
		return nil
	}
	return applog.ForSession(all, sessionID)
}
