package types

import "fmt"

// DependencyType represents the kind of a dependency edge between
// cards. Edges are directional and not required to be mirrored on the
// referenced card.
type DependencyType string

const (
	DependencyBlocks    DependencyType = "blocks"
	DependencyBlockedBy DependencyType = "blocked_by"
	DependencyRelatesTo DependencyType = "relates_to"
)

// AllDependencyTypes returns all valid dependency types
func AllDependencyTypes() []DependencyType {
	return []DependencyType{
		DependencyBlocks,
		DependencyBlockedBy,
		DependencyRelatesTo,
	}
}

// IsValid checks if the dependency type is valid
func (t DependencyType) IsValid() bool {
	switch t {
	case DependencyBlocks, DependencyBlockedBy, DependencyRelatesTo:
		return true
	default:
		return false
	}
}

// String returns the string representation of the dependency type
func (t DependencyType) String() string {
	return string(t)
}

// ParseDependencyType parses a string into a DependencyType
func ParseDependencyType(s string) (DependencyType, error) {
	t := DependencyType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid dependency type: %s", s)
	}
	return t, nil
}
