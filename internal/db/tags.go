package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tgienger/taskmate/internal/models"
)

const tagColumns = "id, user_id, name, color, created_at"

// CreateTag creates a new tag for a user
func (db *DB) CreateTag(ctx context.Context, userID int64, name string, color *string) (*models.Tag, error) {
	result, err := db.ExecContext(ctx, "INSERT INTO tags (user_id, name, color) VALUES (?, ?, ?)", userID, name, color)
	if err != nil {
		return nil, mapConstraint(err, ErrTagExists)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetTag(ctx, id)
}

// GetTag retrieves a tag by ID
func (db *DB) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	return get[models.Tag](ctx, db, "SELECT "+tagColumns+" FROM tags WHERE id = ?", id)
}

// GetTagByName retrieves a user's tag by its name (case-insensitive)
func (db *DB) GetTagByName(ctx context.Context, userID int64, name string) (*models.Tag, error) {
	return get[models.Tag](ctx, db, "SELECT "+tagColumns+" FROM tags WHERE user_id = ? AND name = ?", userID, name)
}

// ListTags returns all tags of a user
func (db *DB) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.SelectContext(ctx, &tags, "SELECT "+tagColumns+" FROM tags WHERE user_id = ? ORDER BY name", userID)
	return tags, err
}

// UpdateTag updates a tag's name and color
func (db *DB) UpdateTag(ctx context.Context, id int64, name string, color *string) error {
	_, err := db.ExecContext(ctx, "UPDATE tags SET name = ?, color = ? WHERE id = ?", name, color, id)
	return mapConstraint(err, ErrTagExists)
}

// DeleteTag deletes a tag. Tasks that used it keep existing with no tag.
func (db *DB) DeleteTag(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE tasks SET tag_id = NULL WHERE tag_id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
		return err
	})
}
