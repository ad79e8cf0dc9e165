package core

import (
	"strings"

	"github.com/google/uuid"
)

// ID is the canonical identifier for records and reports
type ID string

// NewID generates a new unique identifier
func NewID() ID {
	return ID(uuid.New().String())
}

func (id ID) String() string {
	return string(id)
}

// IsEmpty reports whether the ID is unset
func (id ID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}

// ParseID validates a raw identifier string
func ParseID(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewValidationError("id", "must not be empty")
	}
	return ID(trimmed), nil
}
