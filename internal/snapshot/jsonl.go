package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// Compile-time interface check.
var _ types.Snapshot = (*JSONL)(nil)

// JSONL stores the book as a header line followed by one contact per line.
type JSONL struct {
	path string
}

// headerJSON is the first line of a JSONL snapshot.
type headerJSON struct {
	Schema  string `json:"schema"`
	Version int    `json:"version"`
	SaveID  string `json:"save_id"`
	SavedAt string `json:"saved_at"`
	Count   int    `json:"count"`
}

// contactJSON is one contact line. Pointer fields distinguish a missing
// field from an empty one.
type contactJSON struct {
	Name     *string  `json:"name"`
	Phones   []string `json:"phones"`
	Email    *string  `json:"email"`
	Birthday *string  `json:"birthday"`
	Address  *string  `json:"address"`
}

// NewJSONL returns a JSONL snapshot at path.
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path}
}

// Path returns the snapshot file.
func (s *JSONL) Path() string { return s.path }

// Save writes the header and every contact atomically.
func (s *JSONL) Save(contacts []types.Contact) error {
	header := headerJSON{
		Schema:  types.SnapshotSchema,
		Version: types.SnapshotVersion,
		SaveID:  newSaveID(),
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Count:   len(contacts),
	}

	records := make([]json.RawMessage, 0, len(contacts)+1)
	line, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	records = append(records, line)

	for _, c := range contacts {
		c = c.Clone()
		line, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal contact %q: %w", c.Name, err)
		}
		records = append(records, line)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return persistErr("create dir for", s.path, err)
	}
	if err := writeJSONL(s.path, records); err != nil {
		return persistErr("write", s.path, err)
	}
	return nil
}

// Load reads the snapshot. Any malformed line fails the whole load.
func (s *JSONL) Load() ([]types.Contact, types.SnapshotInfo, error) {
	info := types.SnapshotInfo{Path: s.path}

	records, err := readJSONL(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		info.Fresh = true
		return nil, info, nil
	}
	if err != nil {
		return nil, info, err
	}
	if len(records) == 0 {
		return nil, info, fmt.Errorf("%w: %s is empty", types.ErrSnapshotCorrupt, s.path)
	}

	var header headerJSON
	if err := decodeObject(records[0], &header); err != nil {
		return nil, info, fmt.Errorf("%w: header: %w", types.ErrSnapshotCorrupt, err)
	}
	if err := checkSchema(header.Schema, header.Version); err != nil {
		return nil, info, err
	}
	info.Schema = header.Schema
	info.Version = header.Version
	info.SaveID = header.SaveID
	if header.SavedAt != "" {
		savedAt, err := time.Parse(time.RFC3339, header.SavedAt)
		if err != nil {
			return nil, info, fmt.Errorf("%w: header saved_at: %w", types.ErrSnapshotCorrupt, err)
		}
		info.SavedAt = savedAt
	}

	contacts := make([]types.Contact, 0, len(records)-1)
	for i, rec := range records[1:] {
		var cj contactJSON
		if err := decodeObject(rec, &cj); err != nil {
			return nil, info, fmt.Errorf("%w: line %d: %w", types.ErrSnapshotCorrupt, i+2, err)
		}
		c, err := cj.toContact()
		if err != nil {
			return nil, info, fmt.Errorf("%w: line %d: %w", types.ErrSnapshotCorrupt, i+2, err)
		}
		contacts = append(contacts, c)
	}

	if len(contacts) != header.Count {
		return nil, info, fmt.Errorf("%w: header counts %d contacts, found %d",
			types.ErrSnapshotCorrupt, header.Count, len(contacts))
	}
	if err := checkContacts(contacts); err != nil {
		return nil, info, err
	}

	info.Count = len(contacts)
	return contacts, info, nil
}

func (cj contactJSON) toContact() (types.Contact, error) {
	switch {
	case cj.Name == nil:
		return types.Contact{}, errors.New("missing name")
	case cj.Email == nil:
		return types.Contact{}, errors.New("missing email")
	case cj.Birthday == nil:
		return types.Contact{}, errors.New("missing birthday")
	case cj.Address == nil:
		return types.Contact{}, errors.New("missing address")
	}
	c := types.Contact{
		Name:     *cj.Name,
		Phones:   cj.Phones,
		Email:    *cj.Email,
		Birthday: *cj.Birthday,
		Address:  *cj.Address,
	}
	return c.Clone(), nil
}

// decodeObject decodes exactly one JSON value from data. Unknown fields
// are tolerated so newer writers of the same version stay readable.
func decodeObject(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after object")
	}
	return nil
}

func newSaveID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// readJSONL reads a JSONL file and returns each non-empty line as a
// json.RawMessage. A line that is not valid JSON fails the read with
// types.ErrSnapshotCorrupt; a missing file returns an error wrapping
// fs.ErrNotExist.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, persistErr("open", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, fmt.Errorf("%w: %s line %d is not valid JSON", types.ErrSnapshotCorrupt, path, lineNo)
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, persistErr("scan", path, err)
	}
	return records, nil
}

// writeJSONL replaces path with records, one per line. The records go to a
// temp file in the same directory that is synced and renamed over path, so
// readers see either the old snapshot or the new one. The temp file never
// outlives a failed write.
func writeJSONL(path string, records []json.RawMessage) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".addressbook-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := bufio.NewWriter(tmp)
	for i, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return nil
}
