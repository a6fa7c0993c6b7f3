// Package db contains the database driver setup, migrations, and query
// methods used by the storage package.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lib/pq" // postgres sql.DB driver initialization
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite" // sqlite sql.DB driver initialization

	"github.com/quillback/pointsboard/internal/config"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

// Open initializes a database connection for the configured driver and
// migrates the schema to match the current state expected of the system. For
// the sqlite driver the database file (and its parent directory) are created
// if absent.
func Open(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*sql.DB, error) {
	var handle *sql.DB
	var dialect, migrationDir string
	var err error

	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialect, migrationDir = "postgres", "migrations/postgres"
		handle, err = openPostgres(cfg)
	default:
		dialect, migrationDir = "sqlite3", "migrations/sqlite"
		handle, err = openSQLite(cfg.DBFilepath)
	}
	if err != nil {
		return nil, err
	}
	if err = handle.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger = logger.With(slog.String("driver", cfg.DBDriver))
	goose.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return handle, goose.UpContext(ctx, handle, migrationDir)
}

func openSQLite(dbPath string) (*sql.DB, error) {
	if dbPath == ":memory:" { //nolint:revive // for documentation
		// noop
	} else if _, err := os.Stat(dbPath); err != nil {
		const userOnlyDirPerms = 0o700
		if err = os.MkdirAll(filepath.Dir(dbPath), userOnlyDirPerms); err != nil {
			return nil, fmt.Errorf("failed to create db parent directory: %w", err)
		}
	}

	sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
		const initSQL = `
		pragma journal_mode = WAL; -- allow concurrent writes
		pragma synchronous = normal; -- don't wait for fsync except on checkpointing
		pragma temp_store = memory; -- temporary indices
		`
		_, err := conn.ExecContext(context.Background(), initSQL, nil)
		return err
	})

	handle, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB handler: %w", err)
	}
	handle.SetMaxOpenConns(1)
	return handle, nil
}

func openPostgres(cfg *config.Config) (*sql.DB, error) {
	dsn, err := applySSLMode(cfg.DBDSN, cfg.DBInsecureSkipTLSVerify)
	if err != nil {
		return nil, err
	}
	handle, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB handler: %w", err)
	}
	return handle, nil
}

// applySSLMode enforces the TLS policy on a postgres DSN. Certificate and
// hostname verification is on unless the operator explicitly opted out, and
// an sslmode already present in the DSN always wins.
func applySSLMode(dsn string, insecure bool) (string, error) {
	if strings.Contains(dsn, "sslmode=") {
		return dsn, nil
	}
	mode := "sslmode=verify-full"
	if insecure {
		mode = "sslmode=require"
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		// Normalize to keyword/value form so the mode can be appended
		// uniformly.
		kv, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("failed to parse postgres DSN: %w", err)
		}
		dsn = kv
	}
	return dsn + " " + mode, nil
}
