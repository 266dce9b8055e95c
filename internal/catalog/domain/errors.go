package domain

import (
	"errors"
	"fmt"
)

// ErrProductNotFound indicates a lookup by an id the catalog does not hold
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidSeed is matched by every ValidationError
var ErrInvalidSeed = errors.New("invalid seed data")

// ValidationError describes a malformed seed entry. Index is the zero-based
// position of the entry in the seed list.
type ValidationError struct {
	Index  int
	Name   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("seed entry %d (%s): %s %s", e.Index, e.Name, e.Field, e.Reason)
	}
	return fmt.Sprintf("seed entry %d: %s %s", e.Index, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSeed
}
