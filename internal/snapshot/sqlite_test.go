package snapshot

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

func TestSQLiteLoadRejectsNonDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database file at all, just text"), 0o644))

	got, info, err := NewSQLite(path).Load()
	assert.ErrorIs(t, err, types.ErrSnapshotCorrupt)
	assert.Nil(t, got)
	assert.False(t, info.Fresh)
}

func TestSQLiteLoadRejectsEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE unrelated (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = NewSQLite(path).Load()
	assert.ErrorIs(t, err, types.ErrSnapshotCorrupt)
}

func TestSQLiteLoadRejectsNewerVersion(t *testing.T) {
	s := NewSQLite(filepath.Join(t.TempDir(), "book.db"))
	require.NoError(t, s.Save(sampleContacts()))

	db, err := sql.Open("sqlite", s.Path())
	require.NoError(t, err)
	_, err = db.Exec("UPDATE snapshot_meta SET value = '99' WHERE key = ?", metaVersion)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = s.Load()
	assert.ErrorIs(t, err, types.ErrSnapshotVersion)
}

func TestSQLiteLoadRejectsOrphanPhone(t *testing.T) {
	s := NewSQLite(filepath.Join(t.TempDir(), "book.db"))
	require.NoError(t, s.Save(sampleContacts()))

	db, err := sql.Open("sqlite", s.Path())
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO contact_phones (name, position, phone) VALUES ('Ghost', 0, '1234567890')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = s.Load()
	assert.ErrorIs(t, err, types.ErrSnapshotCorrupt)
}

func TestSQLitePhonesKeepOrder(t *testing.T) {
	s := NewSQLite(filepath.Join(t.TempDir(), "book.db"))
	phones := []string{"999-999-9999", "1234567890", "(555) 555-5555", "1234567890"}
	require.NoError(t, s.Save([]types.Contact{
		{Name: "A", Phones: phones, Email: "a@b.co", Birthday: "01.01.2000", Address: "x"},
	}))

	got, _, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, phones, got[0].Phones)
}
