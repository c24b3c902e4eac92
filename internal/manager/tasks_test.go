package manager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmate/internal/models"
)

func taskNames(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func TestCreateTask_Validation(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t, nil)
	alice := mustSignUp(t, m, "Alice", "alice@example.com")
	bob := mustSignUp(t, m, "Bob", "bob@example.com")

	_, err := m.Tasks.Create(ctx, NewTask{UserID: alice.ID, Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = m.Tasks.Create(ctx, NewTask{UserID: alice.ID, Name: "x", Priority: models.Priority(5)})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	bobsTag, err := m.Tags.Create(ctx, bob.ID, "private", nil)
	require.NoError(t, err)
	_, err = m.Tasks.Create(ctx, NewTask{UserID: alice.ID, Name: "x", TagID: &bobsTag.ID})
	assert.ErrorIs(t, err, ErrTagNotFound)

	task, err := m.Tasks.Create(ctx, NewTask{UserID: alice.ID, Name: "  buy milk "})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Name)
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t, nil)
	alice := mustSignUp(t, m, "Alice", "alice@example.com")
	task := mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "draft", Priority: models.PriorityLow})

	require.NoError(t, m.Tasks.Update(ctx, task.ID, models.TaskUpdate{
		Name:     ptr("final"),
		Priority: ptr(models.PriorityHighest),
	}))
	got, err := m.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Name)
	assert.Equal(t, models.PriorityHighest, got.Priority)

	assert.ErrorIs(t, m.Tasks.Update(ctx, task.ID, models.TaskUpdate{Name: ptr(" ")}), ErrEmptyName)
	assert.ErrorIs(t, m.Tasks.Update(ctx, task.ID, models.TaskUpdate{Priority: ptr(models.Priority(-1))}), ErrInvalidPriority)

	// Unknown ids are ignored
	assert.NoError(t, m.Tasks.Update(ctx, task.ID+100, models.TaskUpdate{Name: ptr("ghost")}))
}

func TestCompletion(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t, nil)
	alice := mustSignUp(t, m, "Alice", "alice@example.com")
	mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "open"})
	done := mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "done"})

	require.NoError(t, m.Tasks.MarkComplete(ctx, done.ID))

	pending, err := m.Tasks.Pending(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"open"}, taskNames(pending))

	completed, err := m.Tasks.Completed(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, taskNames(completed))
	assert.NotNil(t, completed[0].CompletedAt)

	require.NoError(t, m.Tasks.MarkIncomplete(ctx, done.ID))
	pending, err = m.Tasks.Pending(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"open", "done"}, taskNames(pending))
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t, nil)
	alice := mustSignUp(t, m, "Alice", "alice@example.com")

	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "low", Priority: models.PriorityLow, Deadline: ptr(base)})
	mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "high", Priority: models.PriorityHigh, Deadline: ptr(base.Add(48 * time.Hour))})
	mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "highest", Priority: models.PriorityHighest})

	high, err := m.Tasks.HighPriority(ctx, alice.ID, models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "highest"}, taskNames(high))

	sorted, err := m.Tasks.Sorted(ctx, alice.ID, "priority", "DESC")
	require.NoError(t, err)
	assert.Equal(t, []string{"highest", "high", "low"}, taskNames(sorted))

	fallback, err := m.Tasks.Sorted(ctx, alice.ID, "password", "up")
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "high", "highest"}, taskNames(fallback))

	inRange, err := m.Tasks.ByDeadlineRange(ctx, alice.ID, ptr(base.Add(time.Hour)), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"high"}, taskNames(inRange))

	found, err := m.Tasks.Search(ctx, alice.ID, models.TaskFilter{Keyword: "HIGH", SortBy: "name", Order: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"highest", "high"}, taskNames(found))
}

func TestSharing(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t, nil)
	alice := mustSignUp(t, m, "Alice", "alice@example.com")
	bob := mustSignUp(t, m, "Bob", "bob@example.com")
	carol := mustSignUp(t, m, "Carol", "carol@example.com")
	task := mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "plan trip"})

	target, err := m.Tasks.ShareWithEmail(ctx, task.ID, " BOB@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, target.ID)

	_, err = m.Tasks.ShareWithEmail(ctx, task.ID, "alice@example.com")
	assert.ErrorIs(t, err, ErrShareWithOwner)

	_, err = m.Tasks.ShareWithEmail(ctx, task.ID, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = m.Tasks.ShareWithEmail(ctx, task.ID+100, "bob@example.com")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// The owner is skipped and repeats are ignored
	require.NoError(t, m.Tasks.ShareWithUsers(ctx, task.ID, []int64{alice.ID, bob.ID, carol.ID}))

	shares, err := m.Tasks.Shares(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, shares, 2)

	withBob, err := m.Tasks.SharedWithMe(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"plan trip"}, taskNames(withBob))

	byAlice, err := m.Tasks.SharedByMe(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	visible, err := m.Tasks.ListVisible(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"plan trip"}, taskNames(visible))

	require.NoError(t, m.Tasks.Unshare(ctx, task.ID, &bob.ID))
	withBob, err = m.Tasks.SharedWithMe(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, withBob)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t, nil)
	alice := mustSignUp(t, m, "Alice", "alice@example.com")
	bob := mustSignUp(t, m, "Bob", "bob@example.com")
	deadline := time.Now().Add(24 * time.Hour)
	task := mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "x", Deadline: &deadline})

	require.NoError(t, m.Tasks.ShareWithUsers(ctx, task.ID, []int64{bob.ID}))
	_, err := m.Reminders.CreateBeforeDeadline(ctx, task.ID, Offset{Hours: 1})
	require.NoError(t, err)

	require.NoError(t, m.Tasks.Delete(ctx, task.ID))

	got, err := m.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	reminders, err := m.Reminders.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, reminders)

	shared, err := m.Tasks.SharedWithMe(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, shared)
}

func TestSearchVisible(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t, nil)
	alice := mustSignUp(t, m, "Alice", "alice@example.com")
	bob := mustSignUp(t, m, "Bob", "bob@example.com")

	tag, err := m.Tags.Create(ctx, bob.ID, "home", nil)
	require.NoError(t, err)
	mustCreateTask(t, m, NewTask{UserID: bob.ID, Name: "plan garden", TagID: &tag.ID})
	mustCreateTask(t, m, NewTask{UserID: bob.ID, Name: "call mum"})
	trip := mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "plan trip"})
	rent := mustCreateTask(t, m, NewTask{UserID: alice.ID, Name: "pay rent"})
	require.NoError(t, m.Tasks.ShareWithUsers(ctx, trip.ID, []int64{bob.ID}))
	require.NoError(t, m.Tasks.ShareWithUsers(ctx, rent.ID, []int64{bob.ID}))

	visible, err := m.Tasks.SearchVisible(ctx, bob.ID, models.TaskFilter{Keyword: "plan"})
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "plan garden", visible[0].Name)
	assert.False(t, visible[0].Shared)
	assert.Equal(t, "plan trip", visible[1].Name)
	assert.True(t, visible[1].Shared)

	// A tag filter only applies to the viewer's own tasks
	tagged, err := m.Tasks.SearchVisible(ctx, bob.ID, models.TaskFilter{TagID: &tag.ID})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "plan garden", tagged[0].Name)

	all, err := m.Tasks.ListVisible(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"plan garden", "call mum", "plan trip", "pay rent"}, taskNames(all))
}
