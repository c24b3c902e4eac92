package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskmate/internal/config"
	"github.com/tgienger/taskmate/internal/db"
	"github.com/tgienger/taskmate/internal/logging"
	"github.com/tgienger/taskmate/internal/manager"
	"github.com/tgienger/taskmate/internal/notify"
	"github.com/tgienger/taskmate/internal/reminder"
	"github.com/tgienger/taskmate/internal/session"
	"github.com/tgienger/taskmate/internal/ui"
	"github.com/tgienger/taskmate/internal/ui/views"
)

// runtime holds everything a command needs once config is loaded
type runtime struct {
	cfg      *config.Config
	logger   zerolog.Logger
	logFile  io.Closer
	db       *db.DB
	managers *manager.Managers
	sessions *session.Store
}

func setup(cmd *cobra.Command) (*runtime, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		logFile.Close()
		return nil, err
	}
	logger.Debug().Str("path", cfg.DBPath).Msg("database ready")

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		logFile:  logFile,
		db:       database,
		managers: manager.New(database, logger, time.Now),
		sessions: session.New(cfg.SessionPath),
	}, nil
}

func (r *runtime) Close() {
	if err := r.db.Close(); err != nil {
		r.logger.Error().Err(err).Msg("failed to close database")
	}
	r.logFile.Close()
}

// notifier picks how reminders reach the user
func (r *runtime) notifier() notify.Notifier {
	logNotifier := notify.Log{Logger: r.logger.With().Str("component", "notifier").Logger()}
	if r.cfg.Reminder.Notifier == config.NotifierLog {
		return logNotifier
	}
	desktop := notify.NewDesktop()
	if !desktop.Supported() {
		r.logger.Warn().Msg("no desktop notifier found, reminders go to the log")
		return logNotifier
	}
	return notify.Fallback{Primary: desktop, Secondary: logNotifier}
}

func (r *runtime) scheduler() (*reminder.Scheduler, error) {
	return reminder.New(r.sessions, r.managers.Reminders, r.managers.Tasks, r.notifier(), r.logger, reminder.Config{
		Interval:            r.cfg.Reminder.Interval,
		NotificationTimeout: r.cfg.Reminder.NotificationTimeout,
	})
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "taskmate",
		Short:   "A terminal task manager with reminders",
		Long:    "taskmate keeps your tasks in a local database, lets you share them with other local users and reminds you before deadlines.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()
			return runTUI(cmd.Context(), rt)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(newInitCmd(stdout))
	cmd.AddCommand(newRemindCmd(stdout))
	cmd.AddCommand(newLogoutCmd(stdout))
	cmd.AddCommand(newWhoamiCmd(stdout))
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// runTUI runs the terminal UI with the reminder loop in the background
func runTUI(ctx context.Context, rt *runtime) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched, err := rt.scheduler()
	if err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := sched.Run(ctx); err != nil {
			rt.logger.Error().Err(err).Msg("reminder loop stopped")
		}
	}()

	app := ui.NewApp(views.Deps{
		Ctx:      ctx,
		DB:       rt.db,
		Managers: rt.managers,
		Session:  rt.sessions,
		Logger:   rt.logger.With().Str("component", "ui").Logger(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, runErr := p.Run()
	cancel()
	<-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("running application: %w", runErr)
	}
	return nil
}

func newInitCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()
			fmt.Fprintf(stdout, "Database ready at %s\n", rt.cfg.DBPath)
			return nil
		},
	}
}

func newRemindCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Watch for due reminders in the foreground",
		Long:  "remind runs only the reminder loop for the logged in user until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			sched, err := rt.scheduler()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if info := rt.sessions.CurrentUserInfo(); info != nil {
				fmt.Fprintf(stdout, "Watching reminders for %s <%s>. Press Ctrl+C to stop.\n", info.UserName, info.UserEmail)
			} else {
				fmt.Fprintln(stdout, "Nobody is logged in; reminders start once someone logs in. Press Ctrl+C to stop.")
			}
			return sched.Run(ctx)
		},
	}
}

func newLogoutCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.sessions.Logout(); err != nil {
				return err
			}
			rt.logger.Info().Msg("logged out")
			fmt.Fprintln(stdout, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			info := rt.sessions.CurrentUserInfo()
			if info == nil {
				fmt.Fprintln(stdout, "Not logged in.")
				return nil
			}
			fmt.Fprintf(stdout, "%s <%s> (id %d)\n", info.UserName, info.UserEmail, info.UserID)
			return nil
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "taskmate %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
