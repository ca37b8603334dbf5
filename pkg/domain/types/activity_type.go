package types

import "fmt"

// ActivityType represents the kind of an activity record
type ActivityType string

const (
	ActivityTypeComment     ActivityType = "comment"
	ActivityTypeStageChange ActivityType = "stage_change"
	ActivityTypeFieldUpdate ActivityType = "field_update"
	ActivityTypeAssignment  ActivityType = "assignment"
	ActivityTypeMention     ActivityType = "mention"
)

// AllActivityTypes returns all valid activity types
func AllActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityTypeComment,
		ActivityTypeStageChange,
		ActivityTypeFieldUpdate,
		ActivityTypeAssignment,
		ActivityTypeMention,
	}
}

// IsValid checks if the activity type is valid
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeComment,
		ActivityTypeStageChange,
		ActivityTypeFieldUpdate,
		ActivityTypeAssignment,
		ActivityTypeMention:
		return true
	default:
		return false
	}
}

// String returns the string representation of the activity type
func (t ActivityType) String() string {
	return string(t)
}

// ParseActivityType parses a string into an ActivityType
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", s)
	}
	return t, nil
}
