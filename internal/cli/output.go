package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// formatContact renders c on one line.
func formatContact(c types.Contact) string {
	return fmt.Sprintf("%s: Phones: %s, Email: %s, Birthday: %s, Address: %s",
		c.Name, strings.Join(c.Phones, ", "), c.Email, c.Birthday, c.Address)
}

// printContacts writes contacts one per line under heading, or empty when
// there are none. In JSON mode it writes an array and ignores both strings.
func printContacts(w io.Writer, jsonMode bool, contacts []types.Contact, heading, empty string) error {
	if jsonMode {
		return printJSON(w, contacts)
	}
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}
	for _, c := range contacts {
		if _, err := fmt.Fprintln(w, formatContact(c)); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	if cs, ok := v.([]types.Contact); ok && cs == nil {
		v = []types.Contact{}
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
