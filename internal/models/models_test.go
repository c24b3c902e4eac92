package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriority(t *testing.T) {
	assert.Equal(t, "none", PriorityNone.String())
	assert.Equal(t, "highest", PriorityHighest.String())
	assert.Equal(t, "unknown", Priority(7).String())

	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority(-1).Valid())
	assert.False(t, Priority(5).Valid())

	assert.Equal(t, PriorityLow, PriorityNone.Next())
	assert.Equal(t, PriorityNone, PriorityHighest.Next())

	p, ok := ParsePriority(" High ")
	assert.True(t, ok)
	assert.Equal(t, PriorityHigh, p)
	_, ok = ParsePriority("urgent")
	assert.False(t, ok)
}

func TestReminderDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, Reminder{RemindAt: now}.Due(now))
	assert.True(t, Reminder{RemindAt: now.Add(-time.Second)}.Due(now))
	assert.False(t, Reminder{RemindAt: now.Add(time.Second)}.Due(now))
	assert.False(t, Reminder{RemindAt: now.Add(-time.Hour), IsSent: true}.Due(now))
}

func TestTaskUpdate(t *testing.T) {
	assert.True(t, TaskUpdate{}.Empty())

	name := "x"
	assert.False(t, TaskUpdate{Name: &name}.Empty())
	assert.False(t, TaskUpdate{ClearTag: true}.Empty())

	assert.False(t, TaskUpdate{Name: &name}.DeadlineChanged())
	assert.True(t, TaskUpdate{ClearDeadline: true}.DeadlineChanged())
	deadline := time.Now()
	assert.True(t, TaskUpdate{Deadline: &deadline}.DeadlineChanged())
}
