package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/quillback/pointsboard/internal/config"
	"github.com/quillback/pointsboard/internal/storage/db"
)

const maxNameLen = 64

// validateName validates that a person name meets the requirements: 1-64
// characters with no control characters.
func validateName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// DB is a [Store] backed by a relational database.
type DB struct {
	db      *sql.DB
	queries *db.Queries
}

// NewDB initializes a DB with the given config and logger.
func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	return &DB{
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// ListPersons satisfies the [Persons] interface.
func (d *DB) ListPersons(ctx context.Context) ([]db.Person, error) {
	return d.queries.ListPersons(ctx)
}

// GetPersonByName satisfies the [Persons] interface.
func (d *DB) GetPersonByName(ctx context.Context, name string) (db.Person, error) {
	person, err := d.queries.GetPersonByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return person, ErrNotFound
	}
	return person, err
}

// CreatePerson satisfies the [Persons] interface.
func (d *DB) CreatePerson(ctx context.Context, name string) (db.Person, error) {
	if !validateName(name) {
		return db.Person{}, ErrInvalidName
	}
	switch person, err := d.queries.InsertPerson(ctx, name); {
	case db.IsUniqueViolation(err):
		return db.Person{}, ErrAlreadyExists
	default:
		return person, err
	}
}

// UpdatePoints satisfies the [Persons] interface.
func (d *DB) UpdatePoints(ctx context.Context, name string, points int64) (db.Person, error) {
	person, err := d.queries.UpdatePoints(ctx, name, points)
	if errors.Is(err, sql.ErrNoRows) {
		return person, ErrNotFound
	}
	return person, err
}

var _ Store = (*DB)(nil)
