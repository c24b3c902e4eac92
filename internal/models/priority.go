package models

import "strings"

// Priority ranks a task from PriorityNone to PriorityHighest
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityHighest
)

// PriorityLabels lists the display label of every priority in order
var PriorityLabels = []string{"none", "low", "medium", "high", "highest"}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	return p >= PriorityNone && p <= PriorityHighest
}

func (p Priority) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return PriorityLabels[p]
}

// Next returns the following priority, wrapping back to PriorityNone
func (p Priority) Next() Priority {
	return (p + 1) % Priority(len(PriorityLabels))
}

// ParsePriority accepts a label ("high") and returns its priority
func ParsePriority(label string) (Priority, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, l := range PriorityLabels {
		if l == label {
			return Priority(i), true
		}
	}
	return PriorityNone, false
}
