package task

import "github.com/taskdeck/taskdeck/internal/apperr"

// Priority is the task priority level.
type Priority string

// Priority levels, ordered low to high.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns all valid priority levels in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority converts a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks that the priority is one of the known levels.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}
	return apperr.Validation("priority", "invalid priority "+string(p)+" (expected low, medium, or high)").
		WithDetails(map[string]any{
			"field":    "priority",
			"priority": string(p),
			"allowed":  []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)},
		})
}

// String implements fmt.Stringer.
func (p Priority) String() string { return string(p) }

// Weight returns a sortable rank, higher priorities ranking higher.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}
