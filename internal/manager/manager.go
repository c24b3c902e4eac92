// Package manager holds the domain services the front end and the reminder
// scheduler call into. Every manager is a thin layer over *db.DB that adds
// validation and derived queries; none of them cache rows.
package manager

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tgienger/taskmate/internal/db"
)

var (
	ErrInvalidCredentials = errors.New("email and password do not match")
	ErrEmptyName          = errors.New("name is required")
	ErrInvalidPriority    = errors.New("priority out of range")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrUnknownUser        = errors.New("no user with that email")
	ErrShareWithOwner     = errors.New("task already belongs to that user")
	ErrNoDeadline         = errors.New("task has no deadline")
	ErrInvalidOffset      = errors.New("reminder offset must not be negative")
)

// Managers bundles every domain manager around one database handle
type Managers struct {
	Users     *UserManager
	Tasks     *TaskManager
	Tags      *TagManager
	Reminders *ReminderManager
}

// New wires the managers to store. now is the clock used for due checks;
// nil means time.Now.
func New(store *db.DB, logger zerolog.Logger, now func() time.Time) *Managers {
	if now == nil {
		now = time.Now
	}

	reminders := &ReminderManager{
		store:  store,
		logger: logger.With().Str("component", "reminders").Logger(),
		now:    now,
	}

	return &Managers{
		Users: &UserManager{
			store:  store,
			logger: logger.With().Str("component", "users").Logger(),
		},
		Tasks: &TaskManager{
			store:  store,
			logger: logger.With().Str("component", "tasks").Logger(),
		},
		Tags: &TagManager{
			store:  store,
			logger: logger.With().Str("component", "tags").Logger(),
		},
		Reminders: reminders,
	}
}
