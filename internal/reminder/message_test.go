package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tgienger/taskmate/internal/models"
)

func TestBuild(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	tests := []struct {
		name string
		task *models.Task
		want string
	}{
		{"due later", &models.Task{Name: "standup", Deadline: at(90 * time.Minute)}, `"standup" is due in 90 minutes`},
		{"one minute", &models.Task{Name: "standup", Deadline: at(time.Minute + 20*time.Second)}, `"standup" is due in 1 minute`},
		{"due now", &models.Task{Name: "standup", Deadline: at(0)}, `"standup" is due in 0 minutes`},
		{"overdue", &models.Task{Name: "rent", Deadline: at(-15 * time.Minute)}, `"rent" was due 15 minutes ago`},
		{"no deadline", &models.Task{Name: "water plants"}, `Reminder for "water plants"`},
		{"missing task", nil, "A task you set a reminder for needs attention"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Build(tt.task, now)
			assert.Equal(t, "Reminder", n.Title)
			assert.Equal(t, tt.want, n.Message)
		})
	}
}
