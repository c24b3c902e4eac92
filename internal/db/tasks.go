package db

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tgienger/taskmate/internal/models"
)

const (
	taskColumns  = "id, user_id, is_done, name, description, tag_id, deadline, priority, created_at, updated_at, completed_at"
	taskColumnsT = "t.id, t.user_id, t.is_done, t.name, t.description, t.tag_id, t.deadline, t.priority, t.created_at, t.updated_at, t.completed_at"
)

// sortColumns is the allow-list of columns a task list may be ordered by
var sortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"deadline":     true,
	"priority":     true,
	"name":         true,
	"completed_at": true,
	"is_done":      true,
}

// orderClause builds an ORDER BY clause from user-supplied values. Unknown
// columns fall back to created_at and unknown directions to ASC, so the
// input never reaches the query text.
func orderClause(sortBy, order string) string {
	return orderClauseOn("", sortBy, order)
}

// orderClauseOn is orderClause with every column qualified by alias
func orderClauseOn(alias, sortBy, order string) string {
	col := strings.ToLower(strings.TrimSpace(sortBy))
	if !sortColumns[col] {
		col = "created_at"
	}
	dir := strings.ToUpper(strings.TrimSpace(order))
	if dir != "ASC" && dir != "DESC" {
		dir = "ASC"
	}
	return " ORDER BY " + alias + col + " " + dir + ", " + alias + "id ASC"
}

// CreateTask creates a new task
func (db *DB) CreateTask(ctx context.Context, userID int64, name string, description *string, tagID *int64, deadline *time.Time, priority models.Priority) (*models.Task, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO tasks (user_id, name, description, tag_id, deadline, priority) VALUES (?, ?, ?, ?, ?, ?)
	`, userID, name, description, tagID, utcPtr(deadline), priority)
	if err != nil {
		return nil, mapConstraint(err, ErrConstraint)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetTask(ctx, id)
}

// GetTask retrieves a task by ID
func (db *DB) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return get[models.Task](ctx, db, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
}

// ListTasks returns all tasks owned by a user, oldest first
func (db *DB) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := db.SelectContext(ctx, &tasks,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ?"+orderClause("", ""), userID)
	return tasks, err
}

// SearchTasks returns a user's tasks matching every set field of the filter
func (db *DB) SearchTasks(ctx context.Context, userID int64, f models.TaskFilter) ([]models.Task, error) {
	where, args := filterClause("", f)
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?" + where + orderClause(f.SortBy, f.Order)

	var tasks []models.Task
	err := db.SelectContext(ctx, &tasks, query, append([]any{userID}, args...)...)
	return tasks, err
}

// filterClause turns the set fields of f into AND conditions on the columns
// of alias
func filterClause(alias string, f models.TaskFilter) (string, []any) {
	var query string
	var args []any

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		query += " AND (" + alias + `name LIKE ? ESCAPE '\' OR ` + alias + `description LIKE ? ESCAPE '\')`
		pattern := "%" + escapeLike(kw) + "%"
		args = append(args, pattern, pattern)
	}

	if f.TagID != nil {
		query += " AND " + alias + "tag_id = ?"
		args = append(args, *f.TagID)
	}

	if f.IsDone != nil {
		query += " AND " + alias + "is_done = ?"
		args = append(args, *f.IsDone)
	}

	if f.Priority != nil {
		query += " AND " + alias + "priority = ?"
		args = append(args, *f.Priority)
	}

	if f.MinPriority != nil {
		query += " AND " + alias + "priority >= ?"
		args = append(args, *f.MinPriority)
	}

	return query, args
}

// ListTasksSorted returns a user's tasks ordered by an allow-listed column
func (db *DB) ListTasksSorted(ctx context.Context, userID int64, sortBy, order string) ([]models.Task, error) {
	return db.SearchTasks(ctx, userID, models.TaskFilter{SortBy: sortBy, Order: order})
}

// ListTasksByDeadline returns a user's tasks whose deadline falls in
// [start, end]. A nil bound leaves that side open; tasks without a deadline
// are never returned.
func (db *DB) ListTasksByDeadline(ctx context.Context, userID int64, start, end *time.Time) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ? AND deadline IS NOT NULL"
	args := []any{userID}

	if start != nil {
		query += " AND deadline >= ?"
		args = append(args, utc(*start))
	}
	if end != nil {
		query += " AND deadline <= ?"
		args = append(args, utc(*end))
	}
	query += " ORDER BY deadline ASC, id ASC"

	var tasks []models.Task
	err := db.SelectContext(ctx, &tasks, query, args...)
	return tasks, err
}

// UpdateTask applies a partial update. Only the fields set in u change;
// updated_at is stamped whenever something changes.
func (db *DB) UpdateTask(ctx context.Context, id int64, u models.TaskUpdate) error {
	if u.Empty() {
		return nil
	}
	return updateTask(ctx, db, id, u)
}

// UpdateTaskWithReminders applies u like UpdateTask. When the deadline moves
// from one time to another, the task's unsent reminders set before the old
// deadline move with it. The task row and the reminders commit together.
func (db *DB) UpdateTaskWithReminders(ctx context.Context, id int64, u models.TaskUpdate) error {
	if u.Empty() {
		return nil
	}
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		old, err := get[models.Task](ctx, tx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
		if err != nil {
			return err
		}
		if old == nil {
			return nil
		}
		if err := updateTask(ctx, tx, id, u); err != nil {
			return err
		}
		if u.ClearDeadline || u.Deadline == nil || old.Deadline == nil || old.Deadline.Equal(*u.Deadline) {
			return nil
		}
		return shiftReminders(ctx, tx, id, *old.Deadline, *u.Deadline)
	})
}

func updateTask(ctx context.Context, ex sqlx.ExecerContext, id int64, u models.TaskUpdate) error {
	var sets []string
	var args []any

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	switch {
	case u.ClearTag:
		sets = append(sets, "tag_id = NULL")
	case u.TagID != nil:
		sets = append(sets, "tag_id = ?")
		args = append(args, *u.TagID)
	}
	switch {
	case u.ClearDeadline:
		sets = append(sets, "deadline = NULL")
	case u.Deadline != nil:
		sets = append(sets, "deadline = ?")
		args = append(args, utc(*u.Deadline))
	}
	if u.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *u.Priority)
	}
	if u.IsDone != nil {
		if *u.IsDone {
			// SET expressions see the old row, so an already completed task
			// keeps its original completion time.
			sets = append(sets,
				"completed_at = CASE WHEN is_done = 1 AND completed_at IS NOT NULL THEN completed_at ELSE CURRENT_TIMESTAMP END",
				"is_done = 1")
		} else {
			sets = append(sets, "is_done = 0", "completed_at = NULL")
		}
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := ex.ExecContext(ctx, "UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return mapConstraint(err, ErrConstraint)
}

// MarkTaskDone marks a task as completed
func (db *DB) MarkTaskDone(ctx context.Context, id int64) error {
	done := true
	return db.UpdateTask(ctx, id, models.TaskUpdate{IsDone: &done})
}

// MarkTaskUndone marks a task as not completed and clears its completion time
func (db *DB) MarkTaskUndone(ctx context.Context, id int64) error {
	done := false
	return db.UpdateTask(ctx, id, models.TaskUpdate{IsDone: &done})
}

// DeleteTask deletes a task together with its shares and reminders
func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM task_shares WHERE task_id = ?", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM reminders WHERE task_id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
		return err
	})
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
