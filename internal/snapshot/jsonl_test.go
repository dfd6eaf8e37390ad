package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

const validHeader = `{"schema":"addrbook.contacts","version":1,"save_id":"x","saved_at":"2026-01-02T03:04:05Z","count":%d}`

func writeFile(t *testing.T, lines ...string) *JSONL {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return NewJSONL(path)
}

func header(count int) string {
	return fmt.Sprintf(validHeader, count)
}

func TestJSONLFileFormat(t *testing.T) {
	s := NewJSONL(filepath.Join(t.TempDir(), "book.jsonl"))
	require.NoError(t, s.Save(sampleContacts()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4, "header plus one line per contact")
	assert.Contains(t, lines[0], `"schema":"addrbook.contacts"`)
	assert.Contains(t, lines[0], `"version":1`)
	assert.Contains(t, lines[0], `"count":3`)
	assert.Contains(t, lines[1], `"name":"John Smith"`)
	assert.Contains(t, lines[1], `"phones":["1234567890","(987) 654-3210"]`)
	assert.Contains(t, lines[2], `"phones":[]`)
}

func TestJSONLSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONL(filepath.Join(dir, "book.jsonl"))
	require.NoError(t, s.Save(sampleContacts()))
	require.NoError(t, s.Save(sampleContacts()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "book.jsonl", entries[0].Name())
}

func TestWriteJSONLRemovesTempFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the final rename fail.
	target := filepath.Join(dir, "book.jsonl")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "keep"), 0o755))

	err := writeJSONL(target, []json.RawMessage{json.RawMessage(`{"a":1}`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename temp file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "book.jsonl", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestJSONLSaveFailsOnUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := NewJSONL(filepath.Join(blocker, "book.jsonl"))
	err := s.Save(sampleContacts())
	assert.ErrorIs(t, err, types.ErrPersistence)
}

func TestJSONLLoadIgnoresUnknownFieldsAndBlankLines(t *testing.T) {
	s := writeFile(t,
		header(1),
		"",
		`{"name":"A","phones":["1234567890"],"email":"a@b.co","birthday":"01.01.2000","address":"x","nickname":"ay"}`,
	)

	got, info, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "x", info.SaveID)
	assert.Equal(t, 2026, info.SavedAt.Year())
}

func TestJSONLLoadMissingPhonesIsEmpty(t *testing.T) {
	s := writeFile(t,
		header(1),
		`{"name":"A","email":"a@b.co","birthday":"01.01.2000","address":"x"}`,
	)

	got, _, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Phones)
	assert.Empty(t, got[0].Phones)
}

func TestJSONLLoadCorrupt(t *testing.T) {
	contact := `{"name":"A","phones":[],"email":"a@b.co","birthday":"01.01.2000","address":"x"}`

	tests := []struct {
		name    string
		lines   []string
		wantErr error
	}{
		{
			name:    "empty file",
			lines:   []string{""},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "malformed contact line",
			lines:   []string{header(1), `{"name":"A",`},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "header not an object",
			lines:   []string{`[1,2,3]`},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "missing email",
			lines:   []string{header(1), `{"name":"A","phones":[],"birthday":"01.01.2000","address":"x"}`},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "missing name",
			lines:   []string{header(1), `{"phones":[],"email":"a@b.co","birthday":"01.01.2000","address":"x"}`},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "null record",
			lines:   []string{header(1), `null`},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "count mismatch",
			lines:   []string{header(2), contact},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "duplicate name",
			lines:   []string{header(2), contact, contact},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "wrong field type",
			lines:   []string{header(1), `{"name":"A","phones":"1234567890","email":"a@b.co","birthday":"01.01.2000","address":"x"}`},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "bad saved_at",
			lines:   []string{`{"schema":"addrbook.contacts","version":1,"saved_at":"yesterday","count":0}`},
			wantErr: types.ErrSnapshotCorrupt,
		},
		{
			name:    "foreign schema",
			lines:   []string{`{"schema":"todo.items","version":1,"count":0}`},
			wantErr: types.ErrSnapshotVersion,
		},
		{
			name:    "newer version",
			lines:   []string{`{"schema":"addrbook.contacts","version":99,"count":0}`},
			wantErr: types.ErrSnapshotVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := writeFile(t, tt.lines...)
			got, info, err := s.Load()
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, types.ErrPersistence)
			assert.Nil(t, got, "a corrupt snapshot must not yield contacts")
			assert.False(t, info.Fresh, "a corrupt snapshot is not reported as absent")
		})
	}
}
