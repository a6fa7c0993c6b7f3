// Package storage provides the state management for persons and their
// points.
package storage

import (
	"context"

	"github.com/quillback/pointsboard/internal/storage/db"
)

const (
	// ErrNotFound is returned when a person cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a person with the same name already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInvalidName is returned when a person name fails validation.
	ErrInvalidName Error = "name must be 1-64 characters without control characters"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Persons are the methods on a storage implementation that are responsible
// for accessing and modifying persons.
type Persons interface {
	// ListPersons returns every person, ordered by points ascending with name
	// ascending as the tie-break.
	ListPersons(ctx context.Context) ([]db.Person, error)
	// GetPersonByName returns the person with the given name. An [ErrNotFound]
	// is returned if no person has that name.
	GetPersonByName(ctx context.Context, name string) (db.Person, error)
	// CreatePerson creates a person with zero points and returns the created
	// row. An [ErrAlreadyExists] is returned if the name is taken; the
	// rejection is atomic and leaves no partial state behind.
	CreatePerson(ctx context.Context, name string) (db.Person, error)
	// UpdatePoints replaces the points of the named person wholesale. An
	// [ErrNotFound] is returned if no person has that name. Concurrent
	// updates are last-commit-wins; there is no conflict detection.
	UpdatePoints(ctx context.Context, name string, points int64) (db.Person, error)
}

// Store is the [Persons] interface plus lifecycle management.
type Store interface {
	Persons
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
