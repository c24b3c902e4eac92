package manager

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tgienger/taskmate/internal/auth"
	"github.com/tgienger/taskmate/internal/db"
	"github.com/tgienger/taskmate/internal/models"
)

// TaskManager creates, queries and shares tasks
type TaskManager struct {
	store  *db.DB
	logger zerolog.Logger
}

// NewTask holds the fields of a task to create. Only UserID and Name are required.
type NewTask struct {
	UserID      int64
	Name        string
	Description *string
	TagID       *int64
	Deadline    *time.Time
	Priority    models.Priority
}

// Create validates and stores a new task
func (m *TaskManager) Create(ctx context.Context, t NewTask) (*models.Task, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !t.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if t.TagID != nil {
		if err := m.checkTag(ctx, t.UserID, *t.TagID); err != nil {
			return nil, err
		}
	}

	task, err := m.store.CreateTask(ctx, t.UserID, name, t.Description, t.TagID, t.Deadline, t.Priority)
	if err != nil {
		m.logger.Error().
			Err(err).
			Int64("user_id", t.UserID).
			Msg("failed to create task")
		return nil, err
	}
	m.logger.Debug().
		Int64("user_id", t.UserID).
		Int64("task_id", task.ID).
		Msg("created task")
	return task, nil
}

// Get returns a task by id, or nil
func (m *TaskManager) Get(ctx context.Context, id int64) (*models.Task, error) {
	return m.store.GetTask(ctx, id)
}

// ListByUser returns the tasks a user owns
func (m *TaskManager) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return m.store.ListTasks(ctx, userID)
}

// VisibleTask is a task as a user sees it. Shared tasks belong to someone
// else and are read-only for the viewer.
type VisibleTask struct {
	models.Task
	Shared bool
}

// ListVisible returns the user's own tasks followed by the tasks shared with them
func (m *TaskManager) ListVisible(ctx context.Context, userID int64) ([]models.Task, error) {
	visible, err := m.SearchVisible(ctx, userID, models.TaskFilter{})
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, len(visible))
	for i, v := range visible {
		tasks[i] = v.Task
	}
	return tasks, nil
}

// SearchVisible applies f to the user's own tasks and to the tasks shared
// with them, own tasks first. Tags belong to their owner, so a tag filter
// leaves shared tasks out.
func (m *TaskManager) SearchVisible(ctx context.Context, userID int64, f models.TaskFilter) ([]VisibleTask, error) {
	own, err := m.store.SearchTasks(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	visible := make([]VisibleTask, 0, len(own))
	seen := make(map[int64]bool, len(own))
	for _, t := range own {
		seen[t.ID] = true
		visible = append(visible, VisibleTask{Task: t})
	}
	if f.TagID != nil {
		return visible, nil
	}

	shared, err := m.store.SearchSharedWith(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	for _, t := range shared {
		if !seen[t.ID] {
			seen[t.ID] = true
			visible = append(visible, VisibleTask{Task: t, Shared: true})
		}
	}
	return visible, nil
}

// Update applies a partial update. When the deadline moves, unsent
// reminders that were set before the old deadline move with it.
// Updating a task that does not exist is a no-op.
func (m *TaskManager) Update(ctx context.Context, id int64, u models.TaskUpdate) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return ErrEmptyName
		}
		u.Name = &name
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return ErrInvalidPriority
	}

	old, err := m.store.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if old == nil {
		return nil
	}
	if u.TagID != nil && !u.ClearTag {
		if err := m.checkTag(ctx, old.UserID, *u.TagID); err != nil {
			return err
		}
	}

	// The old deadline is read again inside the store transaction
	if err := m.store.UpdateTaskWithReminders(ctx, id, u); err != nil {
		m.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task")
		return err
	}
	return nil
}

// Delete removes a task with its shares and reminders
func (m *TaskManager) Delete(ctx context.Context, id int64) error {
	if err := m.store.DeleteTask(ctx, id); err != nil {
		m.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	m.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

// MarkComplete marks a task as done
func (m *TaskManager) MarkComplete(ctx context.Context, id int64) error {
	return m.store.MarkTaskDone(ctx, id)
}

// MarkIncomplete marks a task as not done
func (m *TaskManager) MarkIncomplete(ctx context.Context, id int64) error {
	return m.store.MarkTaskUndone(ctx, id)
}

// Search returns the user's tasks matching the filter
func (m *TaskManager) Search(ctx context.Context, userID int64, f models.TaskFilter) ([]models.Task, error) {
	return m.store.SearchTasks(ctx, userID, f)
}

// Pending returns the user's tasks that are not done
func (m *TaskManager) Pending(ctx context.Context, userID int64) ([]models.Task, error) {
	done := false
	return m.Search(ctx, userID, models.TaskFilter{IsDone: &done})
}

// Completed returns the user's tasks that are done
func (m *TaskManager) Completed(ctx context.Context, userID int64) ([]models.Task, error) {
	done := true
	return m.Search(ctx, userID, models.TaskFilter{IsDone: &done})
}

// Sorted returns the user's tasks ordered by sortBy/order. Values outside
// the allow-list fall back to created_at ASC.
func (m *TaskManager) Sorted(ctx context.Context, userID int64, sortBy, order string) ([]models.Task, error) {
	return m.store.ListTasksSorted(ctx, userID, sortBy, order)
}

// ByDeadlineRange returns the user's tasks whose deadline lies in [start, end]
func (m *TaskManager) ByDeadlineRange(ctx context.Context, userID int64, start, end *time.Time) ([]models.Task, error) {
	return m.store.ListTasksByDeadline(ctx, userID, start, end)
}

// HighPriority returns the user's tasks at or above threshold
func (m *TaskManager) HighPriority(ctx context.Context, userID int64, threshold models.Priority) ([]models.Task, error) {
	return m.Search(ctx, userID, models.TaskFilter{MinPriority: &threshold})
}

// ShareWithUsers shares a task with several users. The owner is skipped.
func (m *TaskManager) ShareWithUsers(ctx context.Context, taskID int64, userIDs []int64) error {
	task, err := m.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}

	ids := make([]int64, 0, len(userIDs))
	for _, id := range userIDs {
		if id != task.UserID {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if err := m.store.ShareTask(ctx, taskID, ids...); err != nil {
		m.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to share task")
		return err
	}
	m.logger.Info().
		Int64("task_id", taskID).
		Ints64("user_ids", ids).
		Msg("shared task")
	return nil
}

// ShareWithEmail shares a task with the user registered under email and
// returns that user. Sharing twice with the same user is a no-op.
func (m *TaskManager) ShareWithEmail(ctx context.Context, taskID int64, email string) (*models.User, error) {
	task, err := m.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	target, err := m.store.GetUserByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUnknownUser
	}
	if target.ID == task.UserID {
		return nil, ErrShareWithOwner
	}

	if err := m.store.ShareTask(ctx, taskID, target.ID); err != nil {
		return nil, err
	}
	m.logger.Info().
		Int64("task_id", taskID).
		Int64("user_id", target.ID).
		Msg("shared task")
	return target, nil
}

// SharedWithMe returns tasks other users shared with userID
func (m *TaskManager) SharedWithMe(ctx context.Context, userID int64) ([]models.Task, error) {
	return m.store.ListSharedWith(ctx, userID)
}

// SharedByMe returns userID's shared tasks, one entry per recipient
func (m *TaskManager) SharedByMe(ctx context.Context, userID int64) ([]models.SharedTask, error) {
	return m.store.ListSharedBy(ctx, userID)
}

// Shares returns every share of a task
func (m *TaskManager) Shares(ctx context.Context, taskID int64) ([]models.TaskShare, error) {
	return m.store.ListTaskShares(ctx, taskID)
}

// Unshare removes one user's access, or every share when userID is nil
func (m *TaskManager) Unshare(ctx context.Context, taskID int64, userID *int64) error {
	return m.store.UnshareTask(ctx, taskID, userID)
}

// checkTag makes sure tagID exists and belongs to userID
func (m *TaskManager) checkTag(ctx context.Context, userID, tagID int64) error {
	tag, err := m.store.GetTag(ctx, tagID)
	if err != nil {
		return err
	}
	if tag == nil || tag.UserID != userID {
		return ErrTagNotFound
	}
	return nil
}
