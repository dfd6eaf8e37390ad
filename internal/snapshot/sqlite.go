package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// Compile-time interface check.
var _ types.Snapshot = (*SQLite)(nil)

// SQLite stores the book in a SQLite database file. The database is opened
// and closed inside each Save and Load.
type SQLite struct {
	path string
}

// NewSQLite returns a SQLite snapshot at path.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// Path returns the database file.
func (s *SQLite) Path() string { return s.path }

// Save replaces every row in one transaction.
func (s *SQLite) Save(contacts []types.Contact) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return persistErr("create dir for", s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return persistErr("open", s.path, err)
	}
	defer db.Close()

	if err := s.save(db, contacts); err != nil {
		return persistErr("write", s.path, err)
	}
	return nil
}

func (s *SQLite) save(db *sql.DB, contacts []types.Contact) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM contact_phones",
		"DELETE FROM contacts",
		"DELETE FROM snapshot_meta",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}
	}

	meta := map[string]string{
		metaSchema:  types.SnapshotSchema,
		metaVersion: strconv.Itoa(types.SnapshotVersion),
		metaSaveID:  newSaveID(),
		metaSavedAt: time.Now().UTC().Format(time.RFC3339),
		metaCount:   strconv.Itoa(len(contacts)),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO snapshot_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("writing meta %s: %w", k, err)
		}
	}

	contactStmt, err := tx.Prepare(
		"INSERT INTO contacts (position, name, email, birthday, address) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing contact insert: %w", err)
	}
	defer contactStmt.Close()

	phoneStmt, err := tx.Prepare("INSERT INTO contact_phones (name, position, phone) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing phone insert: %w", err)
	}
	defer phoneStmt.Close()

	for i, c := range contacts {
		if _, err := contactStmt.Exec(i, c.Name, c.Email, c.Birthday, c.Address); err != nil {
			return fmt.Errorf("inserting contact %q: %w", c.Name, err)
		}
		for j, p := range c.Phones {
			if _, err := phoneStmt.Exec(c.Name, j, p); err != nil {
				return fmt.Errorf("inserting phone for %q: %w", c.Name, err)
			}
		}
	}

	return tx.Commit()
}

// Load reads the database. A missing file is reported as Fresh; a file
// that is not a snapshot database returns types.ErrSnapshotCorrupt.
func (s *SQLite) Load() ([]types.Contact, types.SnapshotInfo, error) {
	info := types.SnapshotInfo{Path: s.path}

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			info.Fresh = true
			return nil, info, nil
		}
		return nil, info, persistErr("stat", s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, info, persistErr("open", s.path, err)
	}
	defer db.Close()

	meta, err := readMeta(db)
	if err != nil {
		return nil, info, fmt.Errorf("%w: %s: %w", types.ErrSnapshotCorrupt, s.path, err)
	}
	version, err := strconv.Atoi(meta[metaVersion])
	if err != nil {
		return nil, info, fmt.Errorf("%w: version %q", types.ErrSnapshotCorrupt, meta[metaVersion])
	}
	if err := checkSchema(meta[metaSchema], version); err != nil {
		return nil, info, err
	}
	info.Schema = meta[metaSchema]
	info.Version = version
	info.SaveID = meta[metaSaveID]
	if v := meta[metaSavedAt]; v != "" {
		if info.SavedAt, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, info, fmt.Errorf("%w: saved_at %q", types.ErrSnapshotCorrupt, v)
		}
	}
	count, err := strconv.Atoi(meta[metaCount])
	if err != nil {
		return nil, info, fmt.Errorf("%w: count %q", types.ErrSnapshotCorrupt, meta[metaCount])
	}

	contacts, err := readContacts(db)
	if err != nil {
		return nil, info, fmt.Errorf("%w: %s: %w", types.ErrSnapshotCorrupt, s.path, err)
	}
	if len(contacts) != count {
		return nil, info, fmt.Errorf("%w: meta counts %d contacts, found %d",
			types.ErrSnapshotCorrupt, count, len(contacts))
	}
	if err := checkContacts(contacts); err != nil {
		return nil, info, err
	}

	info.Count = len(contacts)
	return contacts, info, nil
}

func readMeta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query("SELECT key, value FROM snapshot_meta")
	if err != nil {
		return nil, fmt.Errorf("querying meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func readContacts(db *sql.DB) ([]types.Contact, error) {
	rows, err := db.Query("SELECT name, email, birthday, address FROM contacts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []types.Contact
	byName := make(map[string]int)
	for rows.Next() {
		c := types.Contact{Phones: []string{}}
		if err := rows.Scan(&c.Name, &c.Email, &c.Birthday, &c.Address); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		byName[c.Name] = len(contacts)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	phoneRows, err := db.Query("SELECT name, phone FROM contact_phones ORDER BY name, position")
	if err != nil {
		return nil, fmt.Errorf("querying phones: %w", err)
	}
	defer phoneRows.Close()

	for phoneRows.Next() {
		var name, phone string
		if err := phoneRows.Scan(&name, &phone); err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}
		i, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("phone %q belongs to unknown contact %q", phone, name)
		}
		contacts[i].Phones = append(contacts[i].Phones, phone)
	}
	return contacts, phoneRows.Err()
}
