package book

import (
	"strings"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// Search returns copies of every contact matching term, in insertion order.
//
// The term is lower-cased and matched as a substring of the lower-cased
// name, email and address, and of the raw birthday and phone entries.
func (b *Book) Search(term string) []types.Contact {
	term = strings.ToLower(term)
	var found []types.Contact
	for _, c := range b.contacts {
		if matches(c, term) {
			found = append(found, c.Clone())
		}
	}
	return found
}

func matches(c *types.Contact, term string) bool {
	if strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(strings.ToLower(c.Address), term) ||
		strings.Contains(c.Birthday, term) {
		return true
	}
	for _, p := range c.Phones {
		if strings.Contains(p, term) {
			return true
		}
	}
	return false
}
