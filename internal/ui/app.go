package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/taskmate/internal/models"
	"github.com/tgienger/taskmate/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLogin View = iota
	ViewTasks
)

type App struct {
	deps views.Deps

	currentView View
	login       *views.LoginView
	taskList    *views.TaskListView
	width       int
	height      int
}

// Creates a new application
func NewApp(deps views.Deps) *App {
	return &App{
		deps:        deps,
		currentView: ViewLogin,
		login:       views.NewLoginView(deps),
	}
}

type restoredSessionMsg struct {
	user *models.User
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.login.Init(), a.restoreSession)
}

// restoreSession reopens the task list when the session file still names a
// user that exists
func (a *App) restoreSession() tea.Msg {
	id, ok := a.deps.Session.CurrentUserID()
	if !ok {
		return nil
	}
	user, err := a.deps.Managers.Users.GetByID(a.deps.Ctx, id)
	if err != nil {
		a.deps.Logger.Error().Err(err).Int64("user_id", id).Msg("failed to restore session")
		return nil
	}
	if user == nil {
		return nil
	}
	return restoredSessionMsg{user: user}
}

func (a *App) openTasks(user models.User) tea.Cmd {
	a.currentView = ViewTasks
	a.taskList = views.NewTaskListView(a.deps, user)

	// Initialize task list with window size
	return tea.Batch(
		a.taskList.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update login size since it persists
		a.login.Update(msg)

	case restoredSessionMsg:
		return a, a.openTasks(*msg.user)

	case views.LoggedIn:
		return a, a.openTasks(msg.User)

	case views.LoggedOut:
		a.currentView = ViewLogin
		a.taskList = nil
		return a, tea.Batch(
			a.login.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewTasks:
		if a.taskList != nil {
			return a.taskList.View()
		}
	}
	return a.login.View()
}
