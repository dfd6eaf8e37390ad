// Package snapshot persists the address book to disk. Two backends share
// one schema identity: JSONL (the default, a header line followed by one
// contact per line) and SQLite.
package snapshot

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// Open returns the Snapshot selected by cfg.Backend. The snapshot file is
// cfg.SnapshotName() resolved against cfg.DataDir unless it is absolute.
// Nothing is read or created until Load or Save.
func Open(cfg types.Config) (types.Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := resolvePath(cfg)
	switch cfg.Backend {
	case types.BackendJSONL:
		return NewJSONL(path), nil
	case types.BackendSQLite:
		return NewSQLite(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}

func resolvePath(cfg types.Config) string {
	name := cfg.SnapshotName()
	if filepath.IsAbs(name) {
		return name
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, name)
}

// checkContacts enforces the structural invariants a loaded snapshot must
// satisfy: non-empty, unique names.
func checkContacts(contacts []types.Contact) error {
	seen := make(map[string]bool, len(contacts))
	for i, c := range contacts {
		if c.Name == "" {
			return fmt.Errorf("%w: record %d has no name", types.ErrSnapshotCorrupt, i+1)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate name %q", types.ErrSnapshotCorrupt, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// checkSchema rejects snapshots written under another schema or a newer
// version.
func checkSchema(schema string, version int) error {
	if schema != types.SnapshotSchema {
		return fmt.Errorf("%w: schema %q", types.ErrSnapshotVersion, schema)
	}
	if version < 1 || version > types.SnapshotVersion {
		return fmt.Errorf("%w: version %d", types.ErrSnapshotVersion, version)
	}
	return nil
}

// persistErr wraps an I/O failure so it matches types.ErrPersistence.
func persistErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", types.ErrPersistence, op, path, err)
}
