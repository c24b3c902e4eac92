package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the views react to
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Tab      key.Binding
	Quit     key.Binding
	New      key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Search   key.Binding
	Priority key.Binding
	Sort     key.Binding
	Remind   key.Binding
	Share    key.Binding
	Logout   key.Binding
	SignUp   key.Binding
	Edit     key.Binding
	Filter   key.Binding
	NewTag   key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Priority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Remind:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remind 1h before")),
		Share:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "share")),
		Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		SignUp:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "sign up / log in")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter by tag")),
		NewTag:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new tag")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
