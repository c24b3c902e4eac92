package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmate/internal/ui/keys"
	"github.com/tgienger/taskmate/internal/ui/styles"
)

// LoginView lets a user log in or create an account
type LoginView struct {
	deps   Deps
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	signUp   bool
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focusIdx int // index into fields(); len(fields()) is the submit button
	busy     bool
	errMsg   string
}

// NewLoginView creates the login view
func NewLoginView(deps Deps) *LoginView {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 200

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 72
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginView{
		deps:     deps,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		name:     name,
		email:    email,
		password: password,
	}
}

type lastEmailMsg struct {
	email string
}

type loginFailedMsg struct {
	err error
}

func (v *LoginView) Init() tea.Cmd {
	v.reset()
	return tea.Batch(textinput.Blink, v.loadLastEmail)
}

func (v *LoginView) reset() {
	v.busy = false
	v.errMsg = ""
	v.focusIdx = 0
	v.name.Reset()
	v.password.Reset()
	v.updateFocus()
}

func (v *LoginView) loadLastEmail() tea.Msg {
	email, err := v.deps.DB.GetSetting(v.deps.Ctx, lastEmailKey)
	if err != nil || email == "" {
		return nil
	}
	return lastEmailMsg{email: email}
}

func (v *LoginView) fields() []*textinput.Model {
	if v.signUp {
		return []*textinput.Model{&v.name, &v.email, &v.password}
	}
	return []*textinput.Model{&v.email, &v.password}
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case lastEmailMsg:
		if v.email.Value() == "" {
			v.email.SetValue(msg.email)
			// Jump straight to the password
			if !v.signUp {
				v.focusIdx = 1
				v.updateFocus()
			}
		}
		return v, nil

	case loginFailedMsg:
		v.busy = false
		v.errMsg = userMessage(msg.err)
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		n := len(v.fields())

		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit
		case key.Matches(msg, v.keys.SignUp):
			v.signUp = !v.signUp
			v.errMsg = ""
			v.focusIdx = 0
			v.updateFocus()
			return v, nil
		case msg.String() == "shift+tab", msg.String() == "up":
			v.focusIdx = (v.focusIdx + n) % (n + 1)
			v.updateFocus()
			return v, nil
		case key.Matches(msg, v.keys.Tab), msg.String() == "down":
			v.focusIdx = (v.focusIdx + 1) % (n + 1)
			v.updateFocus()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < n-1 {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v, v.submit()
		}
	}

	fields := v.fields()
	if v.focusIdx < len(fields) {
		var cmd tea.Cmd
		*fields[v.focusIdx], cmd = fields[v.focusIdx].Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *LoginView) updateFocus() {
	v.name.Blur()
	v.email.Blur()
	v.password.Blur()
	fields := v.fields()
	if v.focusIdx < len(fields) {
		fields[v.focusIdx].Focus()
	}
}

// submit logs in, or signs up and then logs in, off the update loop
func (v *LoginView) submit() tea.Cmd {
	signUp := v.signUp
	name := strings.TrimSpace(v.name.Value())
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()

	if !signUp && (email == "" || password == "") {
		v.errMsg = "Enter your email and password."
		return nil
	}

	v.busy = true
	v.errMsg = ""
	deps := v.deps
	return func() tea.Msg {
		if signUp {
			if _, err := deps.Managers.Users.SignUp(deps.Ctx, name, email, password); err != nil {
				return loginFailedMsg{err: err}
			}
		}
		user, err := deps.Managers.Users.Authenticate(deps.Ctx, email, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		if err := deps.Session.Save(user); err != nil {
			return loginFailedMsg{err: err}
		}
		if err := deps.DB.SetSetting(deps.Ctx, lastEmailKey, user.Email); err != nil {
			deps.Logger.Warn().
				Err(err).
				Int64("user_id", user.ID).
				Msg("failed to remember last email")
		}
		return LoggedIn{User: *user}
	}
}

// View renders the view
func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	title := "Log In"
	button := " Log In "
	hint := "Ctrl+T: create an account"
	if v.signUp {
		title = "Create Account"
		button = " Sign Up "
		hint = "Ctrl+T: back to log in"
	}

	labels := []string{"Email:", "Password:"}
	if v.signUp {
		labels = []string{"Name:", "Email:", "Password:"}
	}

	rows := []string{s.Title.Render(title), ""}
	for i, f := range v.fields() {
		style := s.Input
		if i == v.focusIdx {
			style = s.InputFocused
		}
		rows = append(rows, labels[i], style.Width(inputWidth).Render(f.View()), "")
	}

	btnStyle := s.Button
	if v.focusIdx == len(v.fields()) {
		btnStyle = s.ButtonFocused
	}
	rows = append(rows, btnStyle.Render(button), "")

	switch {
	case v.busy:
		rows = append(rows, s.TitleMuted.Render("Working..."))
	case v.errMsg != "":
		rows = append(rows, s.Error.Render(v.errMsg))
	default:
		rows = append(rows, "")
	}
	rows = append(rows, s.TitleMuted.Render("Tab: next • Enter: submit • "+hint+" • Ctrl+C: quit"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
