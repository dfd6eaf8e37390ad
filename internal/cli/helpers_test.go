package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// testEnv isolates one CLI invocation sequence in temporary directories.
type testEnv struct {
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

// run executes the CLI with args, feeding stdin, and returns captured
// stdout, stderr and the command error.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	a := &app{buildLogger: func(string, bool) (*zap.Logger, error) { return zap.NewNop(), nil }}
	root := newRootCmd(a)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func (e *testEnv) snapshotPath(name string) string {
	return filepath.Join(e.dataDir, name)
}
