package interfaces

import "github.com/ipai-lab/taskboard/pkg/domain/types"

// ListActivityOption is a functional option for filtering activities
// in ListByCard
type ListActivityOption func(*listActivityConfig)

type listActivityConfig struct {
	activityType *types.ActivityType
}

// WithActivityType filters activities by type
func WithActivityType(t types.ActivityType) ListActivityOption {
	return func(c *listActivityConfig) {
		c.activityType = &t
	}
}

// BuildListActivityConfig builds a listActivityConfig from options
func BuildListActivityConfig(opts ...ListActivityOption) *listActivityConfig {
	cfg := &listActivityConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ActivityType returns the type filter value, or nil if not set
func (c *listActivityConfig) ActivityType() *types.ActivityType {
	return c.activityType
}
