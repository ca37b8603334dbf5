package types

import "fmt"

// Priority represents a card priority level. The upstream contract
// encodes it as a string digit: "0"=low, "1"=normal, "2"=high,
// "3"=urgent.
type Priority string

const (
	PriorityLow    Priority = "0"
	PriorityNormal Priority = "1"
	PriorityHigh   Priority = "2"
	PriorityUrgent Priority = "3"
)

// AllPriorities returns all valid priorities in ascending order
func AllPriorities() []Priority {
	return []Priority{
		PriorityLow,
		PriorityNormal,
		PriorityHigh,
		PriorityUrgent,
	}
}

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Normalize returns the priority, treating empty as PriorityNormal.
func (p Priority) Normalize() Priority {
	if p == "" {
		return PriorityNormal
	}
	return p
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}

// Label returns the human-readable name of the priority
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return string(p)
	}
}

// ParsePriority parses a string into a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
