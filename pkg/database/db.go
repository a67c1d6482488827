package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"mangashelf/pkg/utils"
)

type Config struct {
	Path string
}

// DefaultConfig resolves the authoring database from MANGASHELF_DB_PATH or
// the config file, falling back to ~/.mangashelf/catalog.db.
func DefaultConfig() Config {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return Config{Path: utils.DefaultConfig().DBPath}
	}
	return Config{Path: cfg.DBPath}
}

func EnsureDataDir(cfg Config) error {
	if cfg.Path == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}

func Open(cfg Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// MustOpen opens and migrates the database or exits.
func MustOpen(cfg Config, logger *zap.Logger) *sql.DB {
	db, err := Open(cfg)
	if err != nil {
		logger.Fatal("failed to open db", zap.String("path", cfg.Path), zap.Error(err))
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		logger.Fatal("db migrate failed", zap.Error(err))
	}
	return db
}
