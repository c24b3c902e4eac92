package manager

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmate/internal/db"
	"github.com/tgienger/taskmate/internal/models"
)

// fakeClock is a settable clock for due checks
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newTestManagers(t *testing.T, clock *fakeClock) *Managers {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "taskmate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var now func() time.Time
	if clock != nil {
		now = clock.Now
	}
	return New(store, zerolog.Nop(), now)
}

func mustSignUp(t *testing.T, m *Managers, name, email string) *models.User {
	t.Helper()
	u, err := m.Users.SignUp(context.Background(), name, email, "password")
	require.NoError(t, err)
	return u
}

func mustCreateTask(t *testing.T, m *Managers, nt NewTask) *models.Task {
	t.Helper()
	task, err := m.Tasks.Create(context.Background(), nt)
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}
