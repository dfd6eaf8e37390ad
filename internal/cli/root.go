// Package cli implements the addrbook command-line interface.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	snapshot  string
	backend   string
	jsonMode  bool
	verbose   bool
}

// app carries everything a command needs. One app backs one root command.
type app struct {
	flags  rootFlags
	cfg    types.Config
	logger *zap.Logger

	// buildLogger is swapped out in tests.
	buildLogger func(level string, verbose bool) (*zap.Logger, error)
}

// NewRootCmd creates the top-level "addrbook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{buildLogger: newLogger})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "addrbook",
		Short: "A personal address book",
		Long: "addrbook keeps contacts (phones, email, birthday, address) in a snapshot\n" +
			"file on disk. Run \"addrbook shell\" for the interactive menu.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	// Global persistent flags.
	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/addrbook)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the snapshot (default: current directory)")
	root.PersistentFlags().StringVar(&a.flags.snapshot, "snapshot", "", "snapshot file name or absolute path")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "snapshot backend: jsonl or sqlite")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newShellCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code: 1 for mistakes the user
// can fix by changing input, 2 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrPersistence),
		errors.Is(err, errConfig):
		return exitSysError
	default:
		return exitUserError
	}
}

// stderr returns the command's error stream.
func stderr(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
