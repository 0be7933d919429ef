// Package validate holds the field-level request validation primitives:
// per-field message lists surfaced to clients as a 422 response body.
package validate

import "regexp"

// FieldErrors maps a request field name to the list of validation
// messages recorded against it. It implements error so services can
// return it through an error channel.
type FieldErrors map[string][]string

// Add records a validation message against a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// HasErrors reports whether any message was recorded.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	return "validation failed"
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email reports whether s looks like a plausible email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}
