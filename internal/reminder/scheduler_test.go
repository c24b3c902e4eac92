package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmate/internal/manager"
	"github.com/tgienger/taskmate/internal/models"
	"github.com/tgienger/taskmate/internal/notify"
)

type fakeSessions struct {
	userID int64
	ok     bool
}

func (f fakeSessions) CurrentUserID() (int64, bool) {
	return f.userID, f.ok
}

type fakeReminders struct {
	mu       sync.Mutex
	due      []manager.DueReminder
	err      error
	markErr  map[int64]error
	marked   []int64
	askedFor []int64
}

func (f *fakeReminders) ShouldSendReminder(_ context.Context, userID int64) ([]manager.DueReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.askedFor = append(f.askedFor, userID)
	if f.err != nil {
		return nil, f.err
	}
	// Due reminders are handed out once, like the database does after MarkSent
	due := f.due
	f.due = nil
	return due, nil
}

func (f *fakeReminders) MarkSent(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.markErr[id]; err != nil {
		return err
	}
	f.marked = append(f.marked, id)
	return nil
}

type fakeTasks map[int64]*models.Task

func (f fakeTasks) Get(_ context.Context, id int64) (*models.Task, error) {
	return f[id], nil
}

type recorder struct {
	mu   sync.Mutex
	got  []notify.Notification
	err  error
	sent chan struct{}
}

func newRecorder() *recorder {
	return &recorder{sent: make(chan struct{}, 16)}
}

func (r *recorder) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
	r.sent <- struct{}{}
	return r.err
}

func (r *recorder) notifications() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.got...)
}

var fixedNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, sessions Sessions, reminders Reminders, tasks Tasks, n notify.Notifier) *Scheduler {
	t.Helper()
	s, err := New(sessions, reminders, tasks, n, zerolog.Nop(), Config{
		Interval:            time.Hour,
		NotificationTimeout: 5 * time.Second,
		Now:                 func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return s
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, &fakeReminders{}, fakeTasks{}, newRecorder(), zerolog.Nop(), Config{})
	assert.Error(t, err)

	s, err := New(fakeSessions{}, &fakeReminders{}, fakeTasks{}, newRecorder(), zerolog.Nop(), Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, s.interval)
	assert.Equal(t, DefaultTimeout, s.timeout)
}

func TestCheck_NoSession(t *testing.T) {
	reminders := &fakeReminders{due: []manager.DueReminder{{TaskID: 1, ReminderID: 1}}}
	rec := newRecorder()
	s := newTestScheduler(t, fakeSessions{}, reminders, fakeTasks{}, rec)

	assert.Zero(t, s.Check(context.Background()))
	s.Wait()

	assert.Empty(t, reminders.askedFor)
	assert.Empty(t, rec.notifications())
}

func TestCheck_SendsAndMarksDueReminders(t *testing.T) {
	deadline := fixedNow.Add(30 * time.Minute)
	tasks := fakeTasks{
		10: {ID: 10, Name: "standup", Deadline: &deadline},
		11: {ID: 11, Name: "water plants"},
	}
	reminders := &fakeReminders{due: []manager.DueReminder{
		{TaskID: 10, ReminderID: 100},
		{TaskID: 11, ReminderID: 101},
	}}
	rec := newRecorder()
	s := newTestScheduler(t, fakeSessions{userID: 7, ok: true}, reminders, tasks, rec)

	sent := s.Check(context.Background())
	s.Wait()

	assert.Equal(t, 2, sent)
	assert.Equal(t, []int64{7}, reminders.askedFor)
	assert.ElementsMatch(t, []int64{100, 101}, reminders.marked)

	got := rec.notifications()
	require.Len(t, got, 2)
	messages := []string{got[0].Message, got[1].Message}
	assert.ElementsMatch(t, []string{
		`"standup" is due in 30 minutes`,
		`Reminder for "water plants"`,
	}, messages)
	for _, n := range got {
		assert.Equal(t, "Reminder", n.Title)
		assert.Equal(t, 5*time.Second, n.Timeout)
	}

	// Nothing is due the second time around
	assert.Zero(t, s.Check(context.Background()))
}

func TestCheck_NotifierFailureStillMarksSent(t *testing.T) {
	reminders := &fakeReminders{due: []manager.DueReminder{{TaskID: 1, ReminderID: 5}}}
	rec := newRecorder()
	rec.err = errors.New("no display")
	s := newTestScheduler(t, fakeSessions{userID: 1, ok: true}, reminders, fakeTasks{}, rec)

	assert.Equal(t, 1, s.Check(context.Background()))
	s.Wait()

	assert.Equal(t, []int64{5}, reminders.marked)
	assert.Len(t, rec.notifications(), 1)
}

func TestCheck_MarkSentFailureIsSkipped(t *testing.T) {
	reminders := &fakeReminders{
		due:     []manager.DueReminder{{TaskID: 1, ReminderID: 1}, {TaskID: 1, ReminderID: 2}},
		markErr: map[int64]error{1: errors.New("database is locked")},
	}
	s := newTestScheduler(t, fakeSessions{userID: 1, ok: true}, reminders, fakeTasks{}, newRecorder())

	assert.Equal(t, 1, s.Check(context.Background()))
	s.Wait()
	assert.Equal(t, []int64{2}, reminders.marked)
}

func TestCheck_FetchErrorEndsCycle(t *testing.T) {
	reminders := &fakeReminders{err: errors.New("disk I/O error")}
	rec := newRecorder()
	s := newTestScheduler(t, fakeSessions{userID: 1, ok: true}, reminders, fakeTasks{}, rec)

	assert.Zero(t, s.Check(context.Background()))
	s.Wait()
	assert.Empty(t, rec.notifications())
}

func TestCheck_RecoversFromPanic(t *testing.T) {
	panicky := notify.Func(func(context.Context, notify.Notification) error {
		panic("boom")
	})
	reminders := &fakeReminders{due: []manager.DueReminder{{TaskID: 1, ReminderID: 1}}}
	s := newTestScheduler(t, fakeSessions{userID: 1, ok: true}, reminders, fakeTasks{}, panicky)

	assert.NotPanics(t, func() {
		s.Check(context.Background())
		s.Wait()
	})
	assert.Equal(t, []int64{1}, reminders.marked)
}

func TestRun_StopsOnCancel(t *testing.T) {
	reminders := &fakeReminders{due: []manager.DueReminder{{TaskID: 1, ReminderID: 1}}}
	rec := newRecorder()
	s := newTestScheduler(t, fakeSessions{userID: 1, ok: true}, reminders, fakeTasks{}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// The first cycle runs right away
	select {
	case <-rec.sent:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification from the first cycle")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
