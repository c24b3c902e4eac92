package manager

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tgienger/taskmate/internal/auth"
	"github.com/tgienger/taskmate/internal/db"
	"github.com/tgienger/taskmate/internal/models"
)

// TagManager manages the tags of a user. Tag names are unique per user,
// ignoring case; a clash surfaces as db.ErrTagExists.
type TagManager struct {
	store  *db.DB
	logger zerolog.Logger
}

// Create creates a tag. color may be nil; a blank name is auth.ErrEmptyField.
func (m *TagManager) Create(ctx context.Context, userID int64, name string, color *string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, auth.ErrEmptyField
	}

	tag, err := m.store.CreateTag(ctx, userID, name, color)
	if err != nil {
		m.logger.Warn().
			Err(err).
			Int64("user_id", userID).
			Str("name", name).
			Msg("failed to create tag")
		return nil, err
	}
	return tag, nil
}

// ListByUser returns the user's tags ordered by name
func (m *TagManager) ListByUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	return m.store.ListTags(ctx, userID)
}

// Get returns a tag by id, or nil
func (m *TagManager) Get(ctx context.Context, id int64) (*models.Tag, error) {
	return m.store.GetTag(ctx, id)
}

// Update renames and recolors a tag
func (m *TagManager) Update(ctx context.Context, id int64, name string, color *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return auth.ErrEmptyField
	}
	return m.store.UpdateTag(ctx, id, name, color)
}

// Delete removes a tag; tasks that used it become untagged
func (m *TagManager) Delete(ctx context.Context, id int64) error {
	return m.store.DeleteTag(ctx, id)
}
