package main

import (
	"fmt"
	"io"
	"os"

	"github.com/uwuok/movie-management-system/internal/config"
	"github.com/uwuok/movie-management-system/internal/export"
	"github.com/uwuok/movie-management-system/internal/importer"
	"github.com/uwuok/movie-management-system/internal/jsonlog"
	"github.com/uwuok/movie-management-system/internal/storage"
)

// app bundles the resolved configuration and the components built from it.
type app struct {
	cfg      *config.Config
	db       *storage.DB
	importer *importer.Importer
	exporter *export.Exporter
	logger   *jsonlog.Logger
	logFile  io.Closer
}

// loadConfig resolves configuration from file, environment and flags, or exits.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if dbPathFlag != "" {
		cfg.DBPath = config.ExpandPath(dbPathFlag)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "invalid config: %v", err)
	}
	return cfg
}

// newApp wires the store, importer, exporter and logger for cfg.
func newApp(cfg *config.Config) (*app, error) {
	level, err := jsonlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	switch {
	case level == jsonlog.LevelOff:
		a.logger = jsonlog.Discard()
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		a.logger = jsonlog.New(f, level)
	default:
		a.logger = jsonlog.New(os.Stderr, level)
	}

	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	a.importer = importer.New(db)
	a.exporter = export.New(db)

	a.logger.PrintInfo("opened database", map[string]string{"path": cfg.DBPath})
	return a, nil
}

// openApp loads configuration and opens the database, or exits.
func openApp() *app {
	cfg := loadConfig()
	a, err := newApp(cfg)
	if err != nil {
		exitWithErr("opening database", err)
	}
	return a
}

// Close releases the database and log file.
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
