package storage

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/pointsboard/internal/config"
)

func newTestStore(t *testing.T) *DB {
	t.Helper()

	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := NewDB(t.Context(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDB(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	t.Run("CreatePerson", func(t *testing.T) {
		person, err := store.CreatePerson(t.Context(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", person.Name)
		assert.Zero(t, person.Points)
		assert.NotZero(t, person.ID)
	})

	t.Run("CreateDuplicate", func(t *testing.T) {
		_, err := store.CreatePerson(t.Context(), "alice")
		require.ErrorIs(t, err, ErrAlreadyExists)

		// Exactly one row survives the rejected insert.
		persons, err := store.ListPersons(t.Context())
		require.NoError(t, err)
		count := 0
		for _, p := range persons {
			if p.Name == "alice" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("CreateInvalidName", func(t *testing.T) {
		_, err := store.CreatePerson(t.Context(), "")
		require.ErrorIs(t, err, ErrInvalidName)

		_, err = store.CreatePerson(t.Context(), "line\nbreak")
		require.ErrorIs(t, err, ErrInvalidName)

		_, err = store.CreatePerson(t.Context(), strings.Repeat("x", 65))
		require.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("GetPersonByName", func(t *testing.T) {
		person, err := store.GetPersonByName(t.Context(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", person.Name)

		_, err = store.GetPersonByName(t.Context(), "nobody")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdatePoints", func(t *testing.T) {
		person, err := store.UpdatePoints(t.Context(), "alice", 42)
		require.NoError(t, err)
		assert.Equal(t, "alice", person.Name)
		assert.EqualValues(t, 42, person.Points)

		person, err = store.GetPersonByName(t.Context(), "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 42, person.Points)
	})

	t.Run("UpdateUnknownPerson", func(t *testing.T) {
		_, err := store.UpdatePoints(t.Context(), "nobody", 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListOrdering", func(t *testing.T) {
		for _, name := range []string{"carol", "bob", "dave"} {
			_, err := store.CreatePerson(t.Context(), name)
			require.NoError(t, err)
		}
		_, err := store.UpdatePoints(t.Context(), "bob", 10)
		require.NoError(t, err)
		_, err = store.UpdatePoints(t.Context(), "carol", 5)
		require.NoError(t, err)

		persons, err := store.ListPersons(t.Context())
		require.NoError(t, err)

		// Points ascending, name ascending within equal points.
		names := make([]string, 0, len(persons))
		for _, p := range persons {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"dave", "carol", "bob", "alice"}, names)
	})
}
