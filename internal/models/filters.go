package models

import "time"

// TaskUpdate carries a partial task update. Nil fields are left untouched.
type TaskUpdate struct {
	Name        *string
	Description *string
	TagID       *int64
	Deadline    *time.Time
	Priority    *Priority
	IsDone      *bool

	// ClearTag and ClearDeadline set the column to NULL; they win over
	// TagID and Deadline when both are given.
	ClearTag      bool
	ClearDeadline bool
}

// Empty reports whether the update would change nothing
func (u TaskUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.TagID == nil &&
		u.Deadline == nil && u.Priority == nil && u.IsDone == nil &&
		!u.ClearTag && !u.ClearDeadline
}

// DeadlineChanged reports whether the update touches the deadline column
func (u TaskUpdate) DeadlineChanged() bool {
	return u.Deadline != nil || u.ClearDeadline
}

// TaskFilter narrows a task search. Zero values mean "no filter".
type TaskFilter struct {
	Keyword     string // matched against name and description
	TagID       *int64
	IsDone      *bool
	Priority    *Priority
	MinPriority *Priority

	// SortBy and Order are checked against an allow-list; anything else
	// falls back to created_at ASC.
	SortBy string
	Order  string
}
