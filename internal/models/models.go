package models

import "time"

// User represents a local account
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	CreatedAt    time.Time `db:"created_at"`
}

// Tag represents a user-owned label that can be applied to tasks
type Tag struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	Color     *string   `db:"color"` // nil if no color was picked
	CreatedAt time.Time `db:"created_at"`
}

// Task represents a single to-do item
type Task struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	IsDone      bool       `db:"is_done"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	TagID       *int64     `db:"tag_id"` // nil if untagged
	Deadline    *time.Time `db:"deadline"`
	Priority    Priority   `db:"priority"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	CompletedAt *time.Time `db:"completed_at"` // set while IsDone is true
}

// SharedTask is a task together with the user it was shared with
type SharedTask struct {
	Task
	SharedWith int64 `db:"shared_with"`
}

// TaskShare grants a user other than the owner visibility of a task
type TaskShare struct {
	ID     int64 `db:"id"`
	TaskID int64 `db:"task_id"`
	UserID int64 `db:"user_id"`
}

// Reminder is a point in time at which a notification fires for a task.
// UserID is the task owner, not necessarily the person viewing the task.
type Reminder struct {
	ID       int64     `db:"id"`
	UserID   int64     `db:"user_id"`
	TaskID   int64     `db:"task_id"`
	RemindAt time.Time `db:"remind_at"`
	IsSent   bool      `db:"is_sent"`
}

// Due reports whether the reminder should fire at now
func (r Reminder) Due(now time.Time) bool {
	return !r.IsSent && !r.RemindAt.After(now)
}
