package repositories

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an id does not resolve to a live record
var ErrNotFound = errors.New("record not found")

// IntegrityError reports relation targets that do not exist.
// The surrounding transaction has been rolled back when it is returned.
type IntegrityError struct {
	Field   string
	Missing []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s references unknown ids: %s", e.Field, strings.Join(e.Missing, ", "))
}

// MissingIDsError is returned by bulk operations when some ids are not live records.
// Nothing has been written when it is returned.
type MissingIDsError struct {
	Missing []string
}

func (e *MissingIDsError) Error() string {
	return fmt.Sprintf("unknown ids: %s", strings.Join(e.Missing, ", "))
}
