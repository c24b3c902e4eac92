package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tgienger/taskmate/internal/models"
)

const reminderColumns = "id, user_id, task_id, remind_at, is_sent"

// CreateReminder creates an unsent reminder owned by userID
func (db *DB) CreateReminder(ctx context.Context, userID, taskID int64, remindAt time.Time) (*models.Reminder, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO reminders (user_id, task_id, remind_at) VALUES (?, ?, ?)
	`, userID, taskID, utc(remindAt))
	if err != nil {
		return nil, mapConstraint(err, ErrConstraint)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetReminder(ctx, id)
}

// GetReminder retrieves a reminder by ID
func (db *DB) GetReminder(ctx context.Context, id int64) (*models.Reminder, error) {
	return get[models.Reminder](ctx, db, "SELECT "+reminderColumns+" FROM reminders WHERE id = ?", id)
}

// ListRemindersByUser returns every reminder owned by a user, earliest first
func (db *DB) ListRemindersByUser(ctx context.Context, userID int64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.SelectContext(ctx, &reminders,
		"SELECT "+reminderColumns+" FROM reminders WHERE user_id = ? ORDER BY remind_at ASC, id ASC", userID)
	return reminders, err
}

// ListRemindersByTask returns every reminder of a task, earliest first
func (db *DB) ListRemindersByTask(ctx context.Context, taskID int64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.SelectContext(ctx, &reminders,
		"SELECT "+reminderColumns+" FROM reminders WHERE task_id = ? ORDER BY remind_at ASC, id ASC", taskID)
	return reminders, err
}

// ListUpcomingReminders returns a user's unsent reminders that fire after now
func (db *DB) ListUpcomingReminders(ctx context.Context, userID int64, now time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.SelectContext(ctx, &reminders, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE user_id = ? AND is_sent = 0 AND remind_at > ?
		ORDER BY remind_at ASC, id ASC
	`, userID, utc(now))
	return reminders, err
}

// UpdateReminder moves a reminder to a new time
func (db *DB) UpdateReminder(ctx context.Context, id int64, remindAt time.Time) error {
	_, err := db.ExecContext(ctx, "UPDATE reminders SET remind_at = ? WHERE id = ?", utc(remindAt), id)
	return err
}

// ShiftReminders moves every unsent reminder of a task that was set before
// oldDeadline so it keeps the same lead time to newDeadline. Sent reminders
// and reminders at or after oldDeadline stay put. All moves commit together.
func (db *DB) ShiftReminders(ctx context.Context, taskID int64, oldDeadline, newDeadline time.Time) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		return shiftReminders(ctx, tx, taskID, oldDeadline, newDeadline)
	})
}

func shiftReminders(ctx context.Context, tx *sqlx.Tx, taskID int64, oldDeadline, newDeadline time.Time) error {
	var reminders []models.Reminder
	err := tx.SelectContext(ctx, &reminders,
		"SELECT "+reminderColumns+" FROM reminders WHERE task_id = ? AND is_sent = 0 ORDER BY remind_at ASC, id ASC", taskID)
	if err != nil {
		return err
	}

	for _, r := range reminders {
		if !r.RemindAt.Before(oldDeadline) {
			continue
		}
		lead := oldDeadline.Sub(r.RemindAt)
		if _, err := tx.ExecContext(ctx, "UPDATE reminders SET remind_at = ? WHERE id = ?", utc(newDeadline.Add(-lead)), r.ID); err != nil {
			return err
		}
	}
	return nil
}

// MarkReminderSent flags a reminder so it never fires again
func (db *DB) MarkReminderSent(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, "UPDATE reminders SET is_sent = 1 WHERE id = ?", id)
	return err
}

// DeleteReminder deletes a reminder
func (db *DB) DeleteReminder(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	return err
}
