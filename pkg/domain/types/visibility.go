package types

import "fmt"

// Visibility represents the visibility level of a board
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityTeam    Visibility = "team"
	VisibilityPublic  Visibility = "public"
)

// AllVisibilities returns all valid visibility levels
func AllVisibilities() []Visibility {
	return []Visibility{
		VisibilityPrivate,
		VisibilityTeam,
		VisibilityPublic,
	}
}

// IsValid checks if the visibility is valid
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilityTeam, VisibilityPublic:
		return true
	default:
		return false
	}
}

// String returns the string representation of the visibility
func (v Visibility) String() string {
	return string(v)
}

// ParseVisibility parses a string into a Visibility
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid visibility: %s", s)
	}
	return v, nil
}
