package reminder

import (
	"fmt"
	"time"

	"github.com/tgienger/taskmate/internal/models"
	"github.com/tgienger/taskmate/internal/notify"
)

const title = "Reminder"

// Build returns the notification for a reminder of task at now. The body
// counts whole minutes until the deadline, or since it when it has passed.
func Build(task *models.Task, now time.Time) notify.Notification {
	if task == nil {
		return notify.Notification{Title: title, Message: "A task you set a reminder for needs attention"}
	}
	if task.Deadline == nil {
		return notify.Notification{Title: title, Message: fmt.Sprintf("Reminder for %q", task.Name)}
	}

	left := task.Deadline.Sub(now)
	if left >= 0 {
		return notify.Notification{
			Title:   title,
			Message: fmt.Sprintf("%q is due in %s", task.Name, minutes(left)),
		}
	}
	return notify.Notification{
		Title:   title,
		Message: fmt.Sprintf("%q was due %s ago", task.Name, minutes(-left)),
	}
}

func minutes(d time.Duration) string {
	m := int(d / time.Minute)
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
