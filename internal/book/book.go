// Package book implements the in-memory contact store. A Book maps contact
// names to records, keeps insertion order for display, and enforces the
// field rules from package types at write time.
package book

import (
	"slices"

	"github.com/mesh-intelligence/addrbook/pkg/types"
)

// Fields carries the input of Add and Edit. For Edit, empty strings leave
// the stored value unchanged and Phones are appended.
type Fields struct {
	Phones   []string
	Email    string
	Birthday string
	Address  string
}

// Book holds contacts keyed by name. It is not safe for concurrent use.
type Book struct {
	index    map[string]int
	contacts []*types.Contact
}

// New returns a book seeded with cs in order. Later entries with a repeated
// name replace earlier ones. Records are stored as given and not
// revalidated.
func New(cs ...types.Contact) *Book {
	b := &Book{index: make(map[string]int, len(cs))}
	for _, c := range cs {
		b.put(c.Clone())
	}
	return b
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}

// Add stores a new contact, replacing any contact with the same name.
//
// Phones are checked one by one: invalid entries are skipped and returned
// in rejected without failing the add. An empty name, or an invalid email,
// birthday or address, aborts the add and nothing is stored.
func (b *Book) Add(name string, f Fields) (rejected []string, err error) {
	phones, rejected := collectPhones(f.Phones)
	c := types.Contact{
		Name:     name,
		Phones:   phones,
		Email:    f.Email,
		Birthday: f.Birthday,
		Address:  f.Address,
	}
	if err := c.Validate(); err != nil {
		return rejected, err
	}

	b.put(c)
	return rejected, nil
}

// Edit updates the named contact.
//
// Valid phones in f are appended to the stored list; invalid ones are
// returned in rejected. Email, birthday and address are then applied in
// that order when non-empty. The first invalid value stops the edit:
// phones and fields applied before it remain.
func (b *Book) Edit(name string, f Fields) (rejected []string, err error) {
	i, ok := b.index[name]
	if !ok {
		return nil, types.ErrNotFound
	}
	c := b.contacts[i]

	phones, rejected := collectPhones(f.Phones)
	c.Phones = append(c.Phones, phones...)

	if f.Email != "" {
		if err := types.ValidateEmail(f.Email); err != nil {
			return rejected, err
		}
		c.Email = f.Email
	}
	if f.Birthday != "" {
		if err := types.ValidateBirthday(f.Birthday); err != nil {
			return rejected, err
		}
		c.Birthday = f.Birthday
	}
	if f.Address != "" {
		c.Address = f.Address
	}
	return rejected, nil
}

// Delete removes the named contact. It returns types.ErrNotFound when the
// name is absent.
func (b *Book) Delete(name string) error {
	i, ok := b.index[name]
	if !ok {
		return types.ErrNotFound
	}
	delete(b.index, name)
	b.contacts = slices.Delete(b.contacts, i, i+1)
	for j := i; j < len(b.contacts); j++ {
		b.index[b.contacts[j].Name] = j
	}
	return nil
}

// Get returns a copy of the named contact.
func (b *Book) Get(name string) (types.Contact, error) {
	i, ok := b.index[name]
	if !ok {
		return types.Contact{}, types.ErrNotFound
	}
	return b.contacts[i].Clone(), nil
}

// List returns copies of all contacts in insertion order.
func (b *Book) List() []types.Contact {
	out := make([]types.Contact, 0, len(b.contacts))
	for _, c := range b.contacts {
		out = append(out, c.Clone())
	}
	return out
}

// put inserts c or replaces the contact with the same name in place.
func (b *Book) put(c types.Contact) {
	if c.Phones == nil {
		c.Phones = []string{}
	}
	if i, ok := b.index[c.Name]; ok {
		b.contacts[i] = &c
		return
	}
	b.index[c.Name] = len(b.contacts)
	b.contacts = append(b.contacts, &c)
}

// collectPhones splits phones into valid entries, in order, and rejected
// ones.
func collectPhones(phones []string) (valid, rejected []string) {
	valid = []string{}
	for _, p := range phones {
		if types.IsValidPhone(p) {
			valid = append(valid, p)
			continue
		}
		rejected = append(rejected, p)
	}
	return valid, rejected
}
