package registry

import (
	"database/sql"
	"sort"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/calliope-nlp/corpusmeta/core/errors"
)

// SQLStore persists the registry mapping in a SQLite database. It
// round-trips the same mapping as FileStore; the seq column preserves the
// first-seen order of each attribute's values.
type SQLStore struct {
	Path string
}

// NewSQLStore creates a SQLite-backed store at the given path.
func NewSQLStore(path string) *SQLStore {
	return &SQLStore{Path: path}
}

const sqlSchema = `
CREATE TABLE IF NOT EXISTS used_values (
	entity    TEXT NOT NULL,
	attribute TEXT NOT NULL,
	value     TEXT NOT NULL,
	seq       INTEGER NOT NULL,
	PRIMARY KEY (entity, attribute, seq)
);`

// Read loads the entire mapping from the database.
func (s *SQLStore) Read() (Mapping, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT entity, attribute, value FROM used_values ORDER BY entity, attribute, seq`)
	if err != nil {
		return nil, errors.NewIO("query", s.Path, err)
	}
	defer rows.Close()

	m := Mapping{}
	for rows.Next() {
		var entity, attribute, value string
		if err := rows.Scan(&entity, &attribute, &value); err != nil {
			return nil, errors.NewIO("scan", s.Path, err)
		}
		attrs, ok := m[entity]
		if !ok {
			attrs = map[string][]string{}
			m[entity] = attrs
		}
		attrs[attribute] = append(attrs[attribute], value)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("query", s.Path, err)
	}
	return m, nil
}

// Write replaces the database contents with the given mapping.
func (s *SQLStore) Write(m Mapping) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return errors.NewIO("begin", s.Path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM used_values`); err != nil {
		return errors.NewIO("clear", s.Path, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO used_values (entity, attribute, value, seq) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.NewIO("prepare", s.Path, err)
	}
	defer stmt.Close()

	// Deterministic row order; value order within an attribute is the
	// first-seen order carried by the mapping itself.
	entities := make([]string, 0, len(m))
	for entity := range m {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	for _, entity := range entities {
		attrs := m[entity]
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			for seq, value := range attrs[name] {
				if _, err := stmt.Exec(entity, name, value, seq); err != nil {
					return errors.NewIO("insert", s.Path, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewIO("commit", s.Path, err)
	}
	return nil
}

func (s *SQLStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, errors.NewIO("open", s.Path, err)
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, errors.NewIO("migrate", s.Path, err)
	}
	return db, nil
}
