package winenv

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/hexops/winenv/internal/envvar"
	"github.com/hexops/winenv/internal/errors"
	"github.com/keegancsmith/sqlf"

	_ "modernc.org/sqlite" // from https://gitlab.com/cznic/sqlite
)

// Store records every change made through winenv.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "MkdirAll")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "Open")
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensureSchema")
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS changes (
			changeid INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			name TEXT NOT NULL,
			target TEXT NOT NULL,
			action TEXT NOT NULL,
			kind TEXT NOT NULL,
			previous TEXT,
			value TEXT NOT NULL
		);
	`)
	return err
}

// Entry is one recorded change.
type Entry struct {
	Time   time.Time
	Name   string
	Target string
	Action string
	Kind   string
	Value  string

	// Previous is the value before the change; HadPrevious is false if the
	// variable did not exist.
	Previous    string
	HadPrevious bool
}

// NewEntry describes change, where previous is the value it replaced.
func NewEntry(change *envvar.Change, previous string, hadPrevious bool) Entry {
	return Entry{
		Time:        time.Now(),
		Name:        change.Name,
		Target:      change.Scope.String(),
		Action:      change.Action.String(),
		Kind:        change.Kind.String(),
		Value:       change.Value,
		Previous:    previous,
		HadPrevious: hadPrevious,
	}
}

func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	var previous any
	if e.HadPrevious {
		previous = e.Previous
	}
	q := sqlf.Sprintf(
		"INSERT INTO changes(timestamp, name, target, action, kind, previous, value) VALUES(%v, %v, %v, %v, %v, %v, %v)",
		e.Time.Round(0),
		e.Name,
		e.Target,
		e.Action,
		e.Kind,
		previous,
		e.Value,
	)
	_, err := s.db.ExecContext(ctx, q.Query(sqlf.SimpleBindVar), q.Args()...)
	return err
}

// Entries returns up to limit of the most recent changes, oldest first. An
// empty name returns changes to every variable, and limit <= 0 means no limit.
func (s *Store) Entries(ctx context.Context, name string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	where := sqlf.Sprintf("TRUE")
	if name != "" {
		where = sqlf.Sprintf("name = %v COLLATE NOCASE", name)
	}
	q := sqlf.Sprintf(
		`SELECT timestamp, name, target, action, kind, previous, value FROM changes WHERE %s ORDER BY changeid DESC LIMIT %v`,
		where,
		limit,
	)

	rows, err := s.db.QueryContext(ctx, q.Query(sqlf.SimpleBindVar), q.Args()...)
	if err != nil {
		return nil, errors.Wrap(err, "QueryContext")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			previous sql.NullString
		)
		if err = rows.Scan(&e.Time, &e.Name, &e.Target, &e.Action, &e.Kind, &previous, &e.Value); err != nil {
			return nil, errors.Wrap(err, "Scan")
		}
		e.Previous, e.HadPrevious = previous.String, previous.Valid
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
