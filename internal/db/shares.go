package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tgienger/taskmate/internal/models"
)

// ShareTask makes a task visible to the given users. Sharing with a user
// that already has access is a no-op.
func (db *DB) ShareTask(ctx context.Context, taskID int64, userIDs ...int64) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, userID := range userIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO task_shares (task_id, user_id) VALUES (?, ?)", taskID, userID)
			if err != nil {
				return mapConstraint(err, ErrConstraint)
			}
		}
		return nil
	})
}

// ListTaskShares returns every share of a task
func (db *DB) ListTaskShares(ctx context.Context, taskID int64) ([]models.TaskShare, error) {
	var shares []models.TaskShare
	err := db.SelectContext(ctx, &shares,
		"SELECT id, task_id, user_id FROM task_shares WHERE task_id = ? ORDER BY id", taskID)
	return shares, err
}

// ListSharedWith returns tasks other users shared with userID
func (db *DB) ListSharedWith(ctx context.Context, userID int64) ([]models.Task, error) {
	return db.SearchSharedWith(ctx, userID, models.TaskFilter{})
}

// SearchSharedWith returns the tasks shared with userID that match every set
// field of the filter
func (db *DB) SearchSharedWith(ctx context.Context, userID int64, f models.TaskFilter) ([]models.Task, error) {
	where, args := filterClause("t.", f)
	query := `
		SELECT ` + taskColumnsT + `
		FROM tasks t
		JOIN task_shares s ON t.id = s.task_id
		WHERE s.user_id = ?` + where + orderClauseOn("t.", f.SortBy, f.Order)

	var tasks []models.Task
	err := db.SelectContext(ctx, &tasks, query, append([]any{userID}, args...)...)
	return tasks, err
}

// ListSharedBy returns the tasks ownerID shared, one row per recipient
func (db *DB) ListSharedBy(ctx context.Context, ownerID int64) ([]models.SharedTask, error) {
	var tasks []models.SharedTask
	err := db.SelectContext(ctx, &tasks, `
		SELECT `+taskColumnsT+`, s.user_id AS shared_with
		FROM tasks t
		JOIN task_shares s ON t.id = s.task_id
		WHERE t.user_id = ?
		ORDER BY t.id ASC, s.user_id ASC
	`, ownerID)
	return tasks, err
}

// UnshareTask removes the share of one user, or every share when userID is nil
func (db *DB) UnshareTask(ctx context.Context, taskID int64, userID *int64) error {
	if userID == nil {
		_, err := db.ExecContext(ctx, "DELETE FROM task_shares WHERE task_id = ?", taskID)
		return err
	}
	_, err := db.ExecContext(ctx, "DELETE FROM task_shares WHERE task_id = ? AND user_id = ?", taskID, *userID)
	return err
}
