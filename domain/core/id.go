package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SessionID     ID
	ModuleID      ID
	RequirementID ID
	QuestionID    ID
)

// String conversions for domain IDs
func (id SessionID) String() string     { return ID(id).String() }
func (id ModuleID) String() string      { return ID(id).String() }
func (id RequirementID) String() string { return ID(id).String() }
func (id QuestionID) String() string    { return ID(id).String() }

// ParseSessionID parses a string into SessionID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	return SessionID(s), nil
}

// ParseModuleID parses a string into ModuleID
func ParseModuleID(s string) (ModuleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("module ID cannot be empty")
	}
	return ModuleID(s), nil
}

// ParseRequirementID parses a string into RequirementID
func ParseRequirementID(s string) (RequirementID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("requirement ID cannot be empty")
	}
	return RequirementID(s), nil
}
