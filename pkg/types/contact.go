package types

import "slices"

// Contact is a single address book entry. Name is the unique key within a
// book.
type Contact struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Email    string   `json:"email"`
	Birthday string   `json:"birthday"` // DD.MM.YYYY
	Address  string   `json:"address"`
}

// Clone returns a deep copy of c so callers never share the phone slice
// with the book.
func (c Contact) Clone() Contact {
	c.Phones = slices.Clone(c.Phones)
	if c.Phones == nil {
		c.Phones = []string{}
	}
	return c
}

// Validate runs every field rule against c and returns the first failure.
// Phones are checked individually; the first invalid one is reported.
func (c Contact) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}
	for _, p := range c.Phones {
		if err := ValidatePhone(p); err != nil {
			return err
		}
	}
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if err := ValidateBirthday(c.Birthday); err != nil {
		return err
	}
	return ValidateAddress(c.Address)
}
