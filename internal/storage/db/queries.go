package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DBTX is the subset of [sql.DB] the queries need, so they run equally
// against a database handle or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New returns a Queries bound to the given handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the prepared statements for the persons table. The $N
// placeholder form is understood by both the sqlite and postgres drivers, so
// a single query set serves both.
type Queries struct {
	db DBTX
}

const listPersons = `
select id, name, points from persons
order by points asc, name asc
`

// ListPersons returns every person, ordered by points ascending with name as
// the tie-break so the listing is deterministic.
func (q *Queries) ListPersons(ctx context.Context) ([]Person, error) {
	rows, err := q.db.QueryContext(ctx, listPersons)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Points); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPersonByName = `
select id, name, points from persons
where name = $1
`

// GetPersonByName returns the person with the exact given name.
func (q *Queries) GetPersonByName(ctx context.Context, name string) (Person, error) {
	row := q.db.QueryRowContext(ctx, getPersonByName, name)
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Points)
	return p, err
}

const insertPerson = `
insert into persons (name, points) values ($1, 0)
returning id, name, points
`

// InsertPerson creates a person with zero points. The insert is a single
// atomic statement; a uniqueness violation leaves the table untouched.
func (q *Queries) InsertPerson(ctx context.Context, name string) (Person, error) {
	row := q.db.QueryRowContext(ctx, insertPerson, name)
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Points)
	return p, err
}

// Placeholders must appear in ascending order: sqlite assigns $N slots by
// first occurrence while postgres uses the number itself, and the two only
// agree when the textual order matches the numbering.
const updatePoints = `
update persons set points = $1
where name = $2
returning id, name, points
`

// UpdatePoints replaces the points of the named person wholesale and returns
// the updated row. [sql.ErrNoRows] is returned when no person matches.
func (q *Queries) UpdatePoints(ctx context.Context, name string, points int64) (Person, error) {
	row := q.db.QueryRowContext(ctx, updatePoints, points, name)
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Points)
	return p, err
}

// IsUniqueViolation reports whether err is the storage engine's uniqueness
// constraint rejection, checked precisely per driver so unrelated storage
// failures are not misreported as duplicates.
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}
