package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addrbook/pkg/addrbook"
)

const modulePath = "github.com/mesh-intelligence/addrbook"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the addrbook version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "addrbook v%s\nmodule: %s\n", addrbook.Version, modulePath)
			return nil
		},
	}
}
