package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminders(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)
	u := mustUser(t, d, "a@example.com")
	task := mustTask(t, d, u.ID, "pay rent")

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past, err := d.CreateReminder(ctx, u.ID, task.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	later, err := d.CreateReminder(ctx, u.ID, task.ID, now.Add(2*time.Hour))
	require.NoError(t, err)
	soon, err := d.CreateReminder(ctx, u.ID, task.ID, now.Add(time.Hour))
	require.NoError(t, err)

	assert.False(t, soon.IsSent)
	assert.True(t, now.Add(time.Hour).Equal(soon.RemindAt))

	byUser, err := d.ListRemindersByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 3)
	assert.Equal(t, []int64{past.ID, soon.ID, later.ID}, []int64{byUser[0].ID, byUser[1].ID, byUser[2].ID})

	byTask, err := d.ListRemindersByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, byTask, 3)

	upcoming, err := d.ListUpcomingReminders(ctx, u.ID, now)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, soon.ID, upcoming[0].ID)

	require.NoError(t, d.MarkReminderSent(ctx, soon.ID))
	upcoming, err = d.ListUpcomingReminders(ctx, u.ID, now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, later.ID, upcoming[0].ID)

	moved := now.Add(3 * time.Hour).In(time.FixedZone("UTC-3", -3*60*60))
	require.NoError(t, d.UpdateReminder(ctx, later.ID, moved))
	got, err := d.GetReminder(ctx, later.ID)
	require.NoError(t, err)
	assert.True(t, moved.Equal(got.RemindAt))

	require.NoError(t, d.DeleteReminder(ctx, past.ID))
	gone, err := d.GetReminder(ctx, past.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
