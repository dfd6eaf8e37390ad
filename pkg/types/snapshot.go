package types

import (
	"errors"
	"fmt"
	"time"
)

// Snapshot schema identity written into every snapshot.
const (
	SnapshotSchema  = "addrbook.contacts"
	SnapshotVersion = 1
)

// Snapshot persists the full contact list of a book. Each Save overwrites
// the previous image entirely.
type Snapshot interface {
	// Save writes contacts in order, replacing any prior content.
	Save(contacts []Contact) error

	// Load reads the snapshot. A missing file is not an error: it returns
	// no contacts and SnapshotInfo.Fresh set. A damaged file returns an
	// error matching ErrSnapshotCorrupt.
	Load() ([]Contact, SnapshotInfo, error)

	// Path returns the file backing the snapshot.
	Path() string
}

// SnapshotInfo describes what Load found on disk.
type SnapshotInfo struct {
	Path    string
	Fresh   bool // no snapshot existed; the book starts empty
	Schema  string
	Version int
	SaveID  string
	SavedAt time.Time
	Count   int
}

// Persistence errors. ErrSnapshotCorrupt and ErrSnapshotVersion match
// ErrPersistence under errors.Is.
var (
	ErrPersistence     = errors.New("persistence failed")
	ErrSnapshotCorrupt = fmt.Errorf("%w: snapshot is corrupt", ErrPersistence)
	ErrSnapshotVersion = fmt.Errorf("%w: unsupported snapshot schema", ErrPersistence)
)

// ErrNotFound is returned when an operation names a contact that is not in
// the book.
var ErrNotFound = errors.New("contact not found")
