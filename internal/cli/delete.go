package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a contact by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return a.withSession(func(s *session) error {
				if err := s.book.Delete(name); err != nil {
					return fmt.Errorf("delete %q: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Contact deleted: %s\n", name)
				return nil
			})
		},
	}
}
