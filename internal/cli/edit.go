package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addrbook/internal/book"
)

func newEditCmd(a *app) *cobra.Command {
	var f book.Fields
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Append phones to a contact or change its email, birthday or address",
		Long: `Edit an existing contact. Phones given with --phone are appended to the
stored list. Omitted fields are left unchanged.

Fields are applied in the order phones, email, birthday, address. An invalid
value stops the edit; changes applied before it are kept and saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return a.withSession(func(s *session) error {
				rejected, err := s.book.Edit(name, f)
				reportRejected(cmd, s, name, rejected)
				if err != nil {
					return fmt.Errorf("edit %q: %w", name, err)
				}
				if a.flags.jsonMode {
					c, err := s.book.Get(name)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Contact updated: %s\n", name)
				return nil
			})
		},
	}
	fieldFlags(cmd, &f)
	return cmd
}
