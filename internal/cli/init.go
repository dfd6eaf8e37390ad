package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the address book",
		Long:  "Create the configuration directory and an empty snapshot if none exists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup has already written config.yaml.
			s, err := a.openSession()
			if err != nil {
				return err
			}
			if s.info.Fresh {
				if err := s.save(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Address book initialized successfully")
			fmt.Fprintln(out, "  backend: ", a.cfg.Backend)
			fmt.Fprintln(out, "  snapshot:", s.snap.Path())
			fmt.Fprintln(out, "  contacts:", s.book.Len())
			return nil
		},
	}
}
