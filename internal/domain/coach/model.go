package coach

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyFirstName = errors.New("coach first name cannot be empty")
	ErrEmptyLastName  = errors.New("coach last name cannot be empty")
	ErrEmptyPhone     = errors.New("coach phone cannot be empty")
)

// Coach teaches courses. Courses reference coaches by name (the original
// data model predates coach ids), so FullName doubles as the join key for
// income analysis.
type Coach struct {
	ID        int
	FirstName string
	LastName  string
	Phone     string // unique
}

// Validate checks the coach's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Coach) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrEmptyLastName
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	return nil
}

// FullName returns the coach's display name.
func (c *Coach) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
