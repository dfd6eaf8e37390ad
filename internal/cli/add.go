package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addrbook/internal/book"
)

// fieldFlags binds the contact field flags shared by add and edit.
func fieldFlags(cmd *cobra.Command, f *book.Fields) {
	cmd.Flags().StringArrayVarP(&f.Phones, "phone", "p", nil, "phone number, repeatable: (123) 456-7890, 123-456-7890 or 1234567890")
	cmd.Flags().StringVar(&f.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.Birthday, "birthday", "", "birthday as DD.MM.YYYY")
	cmd.Flags().StringVar(&f.Address, "address", "", "postal address")
}

// reportRejected prints each rejected phone so the user can retry it.
func reportRejected(cmd *cobra.Command, s *session, name string, rejected []string) {
	s.logRejected(name, rejected)
	for _, p := range rejected {
		fmt.Fprintf(stderr(cmd), "phone %q rejected: invalid format\n", p)
	}
}

func newAddCmd(a *app) *cobra.Command {
	var f book.Fields
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a contact, replacing any contact with the same name",
		Long: `Add a contact. Email, birthday and address are required; phones are optional.

An invalid phone is skipped and reported without failing the add. An invalid
email, birthday or address aborts the add.

Example:
  addrbook add "John Smith" -p "(123) 456-7890" --email john@example.com \
      --birthday 05.03.1990 --address "1 Main St"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return a.withSession(func(s *session) error {
				rejected, err := s.book.Add(name, f)
				reportRejected(cmd, s, name, rejected)
				if err != nil {
					return fmt.Errorf("add %q: %w", name, err)
				}
				if a.flags.jsonMode {
					c, err := s.book.Get(name)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Contact added: %s\n", name)
				return nil
			})
		},
	}
	fieldFlags(cmd, &f)
	return cmd
}
