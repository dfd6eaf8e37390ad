package types

import "errors"

// Config holds backend selection and location for the snapshot.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	Snapshot string `json:"snapshot" yaml:"snapshot"` // file name in DataDir, or an absolute path
}

// Supported backend names.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Default snapshot file names per backend.
const (
	DefaultJSONLSnapshot  = "addressbook.jsonl"
	DefaultSQLiteSnapshot = "addressbook.db"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSONL:  true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// SnapshotName returns the configured snapshot file name, or the backend's
// default when none is set.
func (c Config) SnapshotName() string {
	if c.Snapshot != "" {
		return c.Snapshot
	}
	if c.Backend == BackendSQLite {
		return DefaultSQLiteSnapshot
	}
	return DefaultJSONLSnapshot
}
