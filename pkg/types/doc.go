// Package types defines the contact record, field validation rules, the
// snapshot interface, and the standard errors of the address book.
package types
