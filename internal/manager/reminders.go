package manager

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tgienger/taskmate/internal/db"
	"github.com/tgienger/taskmate/internal/models"
)

// ReminderManager schedules reminders and decides which ones are due
type ReminderManager struct {
	store  *db.DB
	logger zerolog.Logger
	now    func() time.Time
}

// Offset is how long before a deadline a reminder should fire
type Offset struct {
	Weeks   int
	Days    int
	Hours   int
	Minutes int
}

// Duration converts the offset to a time.Duration
func (o Offset) Duration() time.Duration {
	return time.Duration(o.Weeks)*7*24*time.Hour +
		time.Duration(o.Days)*24*time.Hour +
		time.Duration(o.Hours)*time.Hour +
		time.Duration(o.Minutes)*time.Minute
}

// DueReminder identifies a reminder that should fire now
type DueReminder struct {
	TaskID     int64
	ReminderID int64
}

// Create schedules a reminder for a task. The reminder belongs to the task owner.
func (m *ReminderManager) Create(ctx context.Context, taskID int64, remindAt time.Time) (*models.Reminder, error) {
	task, err := m.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	reminder, err := m.store.CreateReminder(ctx, task.UserID, task.ID, remindAt)
	if err != nil {
		m.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to create reminder")
		return nil, err
	}
	m.logger.Debug().
		Int64("task_id", taskID).
		Int64("reminder_id", reminder.ID).
		Time("remind_at", reminder.RemindAt).
		Msg("created reminder")
	return reminder, nil
}

// CreateBeforeDeadline schedules a reminder offset before the task deadline
func (m *ReminderManager) CreateBeforeDeadline(ctx context.Context, taskID int64, offset Offset) (*models.Reminder, error) {
	if offset.Duration() < 0 {
		return nil, ErrInvalidOffset
	}

	task, err := m.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Deadline == nil {
		return nil, ErrNoDeadline
	}

	return m.store.CreateReminder(ctx, task.UserID, task.ID, task.Deadline.Add(-offset.Duration()))
}

// Get returns a reminder by id, or nil
func (m *ReminderManager) Get(ctx context.Context, id int64) (*models.Reminder, error) {
	return m.store.GetReminder(ctx, id)
}

// ListByUser returns every reminder owned by a user
func (m *ReminderManager) ListByUser(ctx context.Context, userID int64) ([]models.Reminder, error) {
	return m.store.ListRemindersByUser(ctx, userID)
}

// ListByTask returns every reminder of a task
func (m *ReminderManager) ListByTask(ctx context.Context, taskID int64) ([]models.Reminder, error) {
	return m.store.ListRemindersByTask(ctx, taskID)
}

// Upcoming returns the user's unsent reminders that have not fired yet
func (m *ReminderManager) Upcoming(ctx context.Context, userID int64) ([]models.Reminder, error) {
	return m.store.ListUpcomingReminders(ctx, userID, m.now())
}

// Modify moves a reminder to a new time
func (m *ReminderManager) Modify(ctx context.Context, id int64, remindAt time.Time) error {
	return m.store.UpdateReminder(ctx, id, remindAt)
}

// Remove deletes a reminder
func (m *ReminderManager) Remove(ctx context.Context, id int64) error {
	return m.store.DeleteReminder(ctx, id)
}

// MarkSent flags a reminder as fired
func (m *ReminderManager) MarkSent(ctx context.Context, id int64) error {
	return m.store.MarkReminderSent(ctx, id)
}

// ShouldSendReminder returns the user's reminders that are due: remind-at
// at or before now and not sent yet.
func (m *ReminderManager) ShouldSendReminder(ctx context.Context, userID int64) ([]DueReminder, error) {
	reminders, err := m.store.ListRemindersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	var due []DueReminder
	for _, r := range reminders {
		if r.Due(now) {
			due = append(due, DueReminder{TaskID: r.TaskID, ReminderID: r.ID})
		}
	}
	return due, nil
}

// UpdateReminderForTask keeps reminders anchored to a moved deadline. Every
// unsent reminder that fired before oldDeadline keeps the same distance to
// newDeadline; sent reminders and reminders at or after oldDeadline stay put.
// The moves commit together or not at all.
func (m *ReminderManager) UpdateReminderForTask(ctx context.Context, taskID int64, oldDeadline, newDeadline time.Time) error {
	if err := m.store.ShiftReminders(ctx, taskID, oldDeadline, newDeadline); err != nil {
		m.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to shift reminders")
		return err
	}
	return nil
}
