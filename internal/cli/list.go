package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.readSession(func(s *session) error {
				return printContacts(cmd.OutOrStdout(), a.flags.jsonMode, s.book.List(),
					"Contacts:", "Address book is empty.")
			})
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find contacts by name, email, address, birthday or phone",
		Long: `Search matches the term case-insensitively against name, email and address,
and as a substring of the birthday and of every phone number.

Example:
  addrbook search john
  addrbook search 456-78`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.readSession(func(s *session) error {
				return printContacts(cmd.OutOrStdout(), a.flags.jsonMode, s.book.Search(args[0]),
					"Found contacts:", "No contacts found.")
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a single contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.readSession(func(s *session) error {
				c, err := s.book.Get(args[0])
				if err != nil {
					return fmt.Errorf("show %q: %w", args[0], err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatContact(c))
				return nil
			})
		},
	}
}
