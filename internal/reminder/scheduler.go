// Package reminder runs the background loop that fires due reminders for
// the logged-in user.
//
// Every interval the scheduler reads the session, asks the reminder manager
// which reminders are due, dispatches one notification per reminder in its
// own goroutine and marks the reminder sent straight away, so a slow or
// failing notification never holds up the rest of the batch or the next
// cycle.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tgienger/taskmate/internal/manager"
	"github.com/tgienger/taskmate/internal/models"
	"github.com/tgienger/taskmate/internal/notify"
)

const (
	DefaultInterval = time.Minute
	DefaultTimeout  = 10 * time.Second

	// dispatchTimeout bounds a single notification delivery
	dispatchTimeout = 30 * time.Second
)

// Sessions tells the scheduler who is logged in
type Sessions interface {
	CurrentUserID() (int64, bool)
}

// Reminders finds due reminders and marks them sent
type Reminders interface {
	ShouldSendReminder(ctx context.Context, userID int64) ([]manager.DueReminder, error)
	MarkSent(ctx context.Context, id int64) error
}

// Tasks looks up the task a reminder belongs to
type Tasks interface {
	Get(ctx context.Context, id int64) (*models.Task, error)
}

// Config tunes the scheduler. Zero values pick the defaults.
type Config struct {
	Interval            time.Duration
	NotificationTimeout time.Duration
	Now                 func() time.Time
}

// Scheduler is the reminder loop
type Scheduler struct {
	sessions  Sessions
	reminders Reminders
	tasks     Tasks
	notifier  notify.Notifier
	logger    zerolog.Logger

	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	inflight sync.WaitGroup
}

// New wires a Scheduler to its collaborators
func New(sessions Sessions, reminders Reminders, tasks Tasks, notifier notify.Notifier, logger zerolog.Logger, cfg Config) (*Scheduler, error) {
	if sessions == nil || reminders == nil || tasks == nil || notifier == nil {
		return nil, fmt.Errorf("reminder: scheduler requires sessions, reminders, tasks and a notifier")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.NotificationTimeout <= 0 {
		cfg.NotificationTimeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Scheduler{
		sessions:  sessions,
		reminders: reminders,
		tasks:     tasks,
		notifier:  notifier,
		logger:    logger.With().Str("component", "scheduler").Logger(),
		interval:  cfg.Interval,
		timeout:   cfg.NotificationTimeout,
		now:       cfg.Now,
	}, nil
}

// Run checks for due reminders immediately and then once per interval
// until ctx is cancelled. It waits for in-flight notifications before
// returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("reminder scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Check(ctx)

		select {
		case <-ctx.Done():
			s.Wait()
			s.logger.Info().Msg("reminder scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Check runs a single cycle and returns how many reminders were marked
// sent. Errors are logged; they never escape the cycle.
func (s *Scheduler) Check(ctx context.Context) (sent int) {
	log := s.logger.With().Str("cycle_id", uuid.NewString()).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Msg("reminder cycle panicked")
		}
	}()

	userID, ok := s.sessions.CurrentUserID()
	if !ok {
		log.Debug().Msg("no user logged in")
		return 0
	}

	due, err := s.reminders.ShouldSendReminder(ctx, userID)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to fetch due reminders")
		return 0
	}
	if len(due) == 0 {
		return 0
	}

	for _, d := range due {
		s.dispatch(ctx, log, d)

		if err := s.reminders.MarkSent(ctx, d.ReminderID); err != nil {
			log.Error().
				Err(err).
				Int64("reminder_id", d.ReminderID).
				Msg("failed to mark reminder sent")
			continue
		}
		sent++
	}

	log.Info().
		Int64("user_id", userID).
		Int("due", len(due)).
		Int("sent", sent).
		Msg("processed due reminders")
	return sent
}

// Wait blocks until every dispatched notification has finished
func (s *Scheduler) Wait() {
	s.inflight.Wait()
}

func (s *Scheduler) dispatch(ctx context.Context, log zerolog.Logger, d manager.DueReminder) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Int64("reminder_id", d.ReminderID).
					Msg("notification panicked")
			}
		}()

		// Shutdown must not cut a notification short
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
		defer cancel()

		task, err := s.tasks.Get(ctx, d.TaskID)
		if err != nil {
			log.Warn().
				Err(err).
				Int64("task_id", d.TaskID).
				Msg("failed to load task for reminder")
		}

		n := Build(task, s.now())
		n.Timeout = s.timeout
		if err := s.notifier.Notify(ctx, n); err != nil {
			log.Error().
				Err(err).
				Int64("task_id", d.TaskID).
				Int64("reminder_id", d.ReminderID).
				Msg("failed to send notification")
			return
		}
		log.Debug().
			Int64("task_id", d.TaskID).
			Int64("reminder_id", d.ReminderID).
			Msg("sent notification")
	}()
}
