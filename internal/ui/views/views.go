package views

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tgienger/taskmate/internal/auth"
	"github.com/tgienger/taskmate/internal/db"
	"github.com/tgienger/taskmate/internal/manager"
	"github.com/tgienger/taskmate/internal/models"
	"github.com/tgienger/taskmate/internal/session"
)

// lastEmailKey is the settings key remembering the last email used to log in
const lastEmailKey = "last_email"

// Deps is what every view needs to reach the core
type Deps struct {
	Ctx      context.Context
	DB       *db.DB
	Managers *manager.Managers
	Session  *session.Store
	Logger   zerolog.Logger
}

// LoggedIn signals that a user logged in or signed up
type LoggedIn struct {
	User models.User
}

// LoggedOut signals that the user logged out
type LoggedOut struct{}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// userMessage maps core errors to what the user should read
func userMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrEmptyField):
		return "All fields are required."
	case errors.Is(err, auth.ErrInvalidEmail):
		return "That does not look like an email address."
	case errors.Is(err, db.ErrEmailTaken):
		return "That email is already registered."
	case errors.Is(err, db.ErrTagExists):
		return "You already have a tag with that name."
	case errors.Is(err, manager.ErrInvalidCredentials):
		return "Email and password do not match."
	case errors.Is(err, manager.ErrEmptyName):
		return "A name is required."
	case errors.Is(err, manager.ErrUnknownUser):
		return "No user is registered with that email."
	case errors.Is(err, manager.ErrShareWithOwner):
		return "You already own that task."
	case errors.Is(err, manager.ErrNoDeadline):
		return "Set a deadline first."
	case errors.Is(err, manager.ErrTaskNotFound):
		return "That task no longer exists."
	}
	return "Something went wrong. Please try again."
}
