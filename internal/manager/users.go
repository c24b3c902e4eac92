package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tgienger/taskmate/internal/auth"
	"github.com/tgienger/taskmate/internal/db"
	"github.com/tgienger/taskmate/internal/models"
)

// UserManager creates and authenticates local accounts
type UserManager struct {
	store  *db.DB
	logger zerolog.Logger
}

// SignUp validates the input, hashes the password and creates the account.
//
// It returns auth.ErrEmptyField or auth.ErrInvalidEmail for bad input and
// db.ErrEmailTaken if the email is already registered.
func (m *UserManager) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	if err := auth.ValidateSignUp(name, email, password); err != nil {
		return nil, err
	}
	email = auth.NormalizeEmail(email)

	hash, err := auth.HashPassword(password)
	if err != nil {
		m.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := m.store.CreateUser(ctx, strings.TrimSpace(name), email, hash)
	if err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			m.logger.Warn().
				Str("email", email).
				Msg("email already registered")
			return nil, err
		}
		m.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to create user")
		return nil, err
	}

	m.logger.Info().
		Int64("user_id", user.ID).
		Msg("user signed up")
	return user, nil
}

// Authenticate returns the user whose email and password match.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (m *UserManager) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = auth.NormalizeEmail(email)

	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		m.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to select user by email")
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, password) {
		m.logger.Warn().
			Str("email", email).
			Msg("authentication failed")
		return nil, ErrInvalidCredentials
	}

	m.logger.Info().
		Int64("user_id", user.ID).
		Msg("user authenticated")
	return user, nil
}

// GetByEmail returns the user with that email, or nil
func (m *UserManager) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.store.GetUserByEmail(ctx, auth.NormalizeEmail(email))
}

// GetByID returns the user with that id, or nil
func (m *UserManager) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.store.GetUser(ctx, id)
}
