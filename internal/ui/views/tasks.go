package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmate/internal/manager"
	"github.com/tgienger/taskmate/internal/models"
	"github.com/tgienger/taskmate/internal/ui/keys"
	"github.com/tgienger/taskmate/internal/ui/styles"
)

// deadlineLayout is how deadlines are typed and shown, in local time
const deadlineLayout = "2006-01-02 15:04"

type sortOption struct {
	column string
	order  string
	label  string
}

var sortOptions = []sortOption{
	{"created_at", "ASC", "created"},
	{"deadline", "ASC", "deadline"},
	{"priority", "DESC", "priority"},
	{"name", "ASC", "name"},
	{"is_done", "ASC", "open first"},
}

// prompt is a one-line input shown over the list
type prompt int

const (
	promptNone prompt = iota
	promptSearch
	promptShare
	promptNewTag
)

// Edit form fields, in tab order
const (
	editName = iota
	editDesc
	editDeadline
	editPriority
	editTag
	editSave
	editFieldCount
)

// taskRow is a task as listed; shared rows belong to someone else
type taskRow struct {
	task   models.Task
	shared bool
}

// TaskListView shows the logged in user's tasks and the tasks shared with them
type TaskListView struct {
	deps   Deps
	user   models.User
	rows   []taskRow
	tags   []models.Tag
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor      int
	scrollY     int
	sortIdx     int
	selectedTag *int64 // nil = no filter
	keyword     string

	// Tag dropdown state
	tagDropdownOpen bool
	tagCursor       int

	// One-line prompts
	prompt      prompt
	promptInput textinput.Model

	// Task creation/editing
	editing      bool
	editingNew   bool
	editTaskID   int64
	editName     textinput.Model
	editDesc     textarea.Model
	editDeadline textinput.Model
	editPriority models.Priority
	editTagIdx   int // 0 = no tag, otherwise index into tags + 1
	editFocusIdx int

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	showHelpPopup bool

	status string
	errMsg string
}

// NewTaskListView creates a new task list view for user
func NewTaskListView(deps Deps, user models.User) *TaskListView {
	promptInput := textinput.New()
	promptInput.CharLimit = 200

	editName := textinput.New()
	editName.Placeholder = "Task name"
	editName.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDeadline := textinput.New()
	editDeadline.Placeholder = deadlineLayout
	editDeadline.CharLimit = len(deadlineLayout)

	return &TaskListView{
		deps:         deps,
		user:         user,
		styles:       styles.NewStyles(),
		keys:         keys.DefaultKeyMap(),
		promptInput:  promptInput,
		editName:     editName,
		editDesc:     editDesc,
		editDeadline: editDeadline,
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return tea.Batch(v.loadTasks, v.loadTags)
}

type tasksLoadedMsg struct {
	rows []taskRow
}

type tagsLoadedMsg struct {
	tags []models.Tag
}

type loadFailedMsg struct {
	err error
}

func (v *TaskListView) loadTasks() tea.Msg {
	sort := sortOptions[v.sortIdx]

	visible, err := v.deps.Managers.Tasks.SearchVisible(v.deps.Ctx, v.user.ID, models.TaskFilter{
		Keyword: v.keyword,
		TagID:   v.selectedTag,
		SortBy:  sort.column,
		Order:   sort.order,
	})
	if err != nil {
		return loadFailedMsg{err: err}
	}

	rows := make([]taskRow, len(visible))
	for i, t := range visible {
		rows[i] = taskRow{task: t.Task, shared: t.Shared}
	}
	return tasksLoadedMsg{rows: rows}
}

func (v *TaskListView) loadTags() tea.Msg {
	tags, err := v.deps.Managers.Tags.ListByUser(v.deps.Ctx, v.user.ID)
	if err != nil {
		return loadFailedMsg{err: err}
	}
	return tagsLoadedMsg{tags: tags}
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.editDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case tasksLoadedMsg:
		v.rows = msg.rows
		if v.cursor >= len(v.rows) {
			v.cursor = max(0, len(v.rows)-1)
		}
		v.ensureVisible()
		return v, nil

	case tagsLoadedMsg:
		v.tags = msg.tags
		return v, nil

	case loadFailedMsg:
		v.errMsg = userMessage(msg.err)
		return v, nil

	case tea.KeyMsg:
		// Any key closes the help popup
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.prompt != promptNone {
			return v.updatePrompt(msg)
		}
		if v.tagDropdownOpen {
			return v.updateTagDropdown(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

// selected returns the row under the cursor
func (v *TaskListView) selected() (taskRow, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return taskRow{}, false
	}
	return v.rows[v.cursor], true
}

// selectedOwn returns the selected task when the user owns it
func (v *TaskListView) selectedOwn() (models.Task, bool) {
	row, ok := v.selected()
	if !ok {
		return models.Task{}, false
	}
	if row.shared {
		v.errMsg = "Shared tasks are read-only."
		return models.Task{}, false
	}
	return row.task, true
}

func (v *TaskListView) setStatus(format string, args ...any) {
	v.errMsg = ""
	v.status = fmt.Sprintf(format, args...)
}

func (v *TaskListView) setError(err error) {
	v.status = ""
	v.errMsg = userMessage(err)
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := v.deps.Ctx
	v.status = ""
	v.errMsg = ""

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Back):
		if v.keyword != "" || v.selectedTag != nil {
			v.keyword = ""
			v.selectedTag = nil
			v.cursor = 0
			v.scrollY = 0
			return v, v.loadTasks
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if task, ok := v.selectedOwn(); ok {
			v.startEditTask(task)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.selectedOwn(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = task.ID
			v.deleteTargetName = task.Name
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		task, ok := v.selectedOwn()
		if !ok {
			return v, nil
		}
		var err error
		if task.IsDone {
			err = v.deps.Managers.Tasks.MarkIncomplete(ctx, task.ID)
		} else {
			err = v.deps.Managers.Tasks.MarkComplete(ctx, task.ID)
		}
		if err != nil {
			v.setError(err)
			return v, nil
		}
		return v, v.loadTasks

	case key.Matches(msg, v.keys.Priority):
		task, ok := v.selectedOwn()
		if !ok {
			return v, nil
		}
		next := task.Priority.Next()
		if err := v.deps.Managers.Tasks.Update(ctx, task.ID, models.TaskUpdate{Priority: &next}); err != nil {
			v.setError(err)
			return v, nil
		}
		return v, v.loadTasks

	case key.Matches(msg, v.keys.Sort):
		v.sortIdx = (v.sortIdx + 1) % len(sortOptions)
		v.setStatus("Sorted by %s", sortOptions[v.sortIdx].label)
		return v, v.loadTasks

	case key.Matches(msg, v.keys.Remind):
		task, ok := v.selectedOwn()
		if !ok {
			return v, nil
		}
		r, err := v.deps.Managers.Reminders.CreateBeforeDeadline(ctx, task.ID, manager.Offset{Hours: 1})
		if err != nil {
			v.setError(err)
			return v, nil
		}
		v.setStatus("Reminder set for %s", r.RemindAt.Local().Format(deadlineLayout))
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.openPrompt(promptSearch, "Search...", v.keyword)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Share):
		if _, ok := v.selectedOwn(); ok {
			v.openPrompt(promptShare, "Share with (email)", "")
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.NewTag):
		v.openPrompt(promptNewTag, "New tag name", "")
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.tagDropdownOpen = true
		v.tagCursor = 0
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.Logout):
		if err := v.deps.Session.Logout(); err != nil {
			v.setError(err)
			return v, nil
		}
		return v, func() tea.Msg { return LoggedOut{} }
	}

	return v, nil
}

func (v *TaskListView) openPrompt(p prompt, placeholder, value string) {
	v.prompt = p
	v.promptInput.Placeholder = placeholder
	v.promptInput.SetValue(value)
	v.promptInput.CursorEnd()
	v.promptInput.Focus()
}

func (v *TaskListView) closePrompt() {
	v.prompt = promptNone
	v.promptInput.Blur()
	v.promptInput.Reset()
}

func (v *TaskListView) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closePrompt()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		value := strings.TrimSpace(v.promptInput.Value())
		p := v.prompt
		v.closePrompt()
		return v, v.submitPrompt(p, value)
	}

	var cmd tea.Cmd
	v.promptInput, cmd = v.promptInput.Update(msg)
	return v, cmd
}

func (v *TaskListView) submitPrompt(p prompt, value string) tea.Cmd {
	ctx := v.deps.Ctx

	switch p {
	case promptSearch:
		v.keyword = value
		v.cursor = 0
		v.scrollY = 0
		return v.loadTasks

	case promptShare:
		task, ok := v.selectedOwn()
		if !ok || value == "" {
			return nil
		}
		target, err := v.deps.Managers.Tasks.ShareWithEmail(ctx, task.ID, value)
		if err != nil {
			v.setError(err)
			return nil
		}
		v.setStatus("Shared %q with %s", task.Name, target.Name)

	case promptNewTag:
		if value == "" {
			return nil
		}
		tag, err := v.deps.Managers.Tags.Create(ctx, v.user.ID, value, nil)
		if err != nil {
			v.setError(err)
			return nil
		}
		v.setStatus("Created tag %s", tag.Name)
		return v.loadTags
	}
	return nil
}

func (v *TaskListView) updateTagDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.tagDropdownOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.tagCursor > 0 {
			v.tagCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.tagCursor < len(v.tags) { // +1 for "All" option
			v.tagCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.tagCursor == 0 {
			v.selectedTag = nil
		} else {
			tagID := v.tags[v.tagCursor-1].ID
			v.selectedTag = &tagID
		}
		v.tagDropdownOpen = false
		v.cursor = 0
		v.scrollY = 0
		return v, v.loadTasks

	case key.Matches(msg, v.keys.Delete):
		// Deleting a tag untags its tasks
		if v.tagCursor == 0 {
			return v, nil
		}
		tag := v.tags[v.tagCursor-1]
		if err := v.deps.Managers.Tags.Delete(v.deps.Ctx, tag.ID); err != nil {
			v.setError(err)
			return v, nil
		}
		if v.selectedTag != nil && *v.selectedTag == tag.ID {
			v.selectedTag = nil
		}
		v.tagCursor = 0
		return v, tea.Batch(v.loadTags, v.loadTasks)
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.deps.Managers.Tasks.Delete(v.deps.Ctx, v.deleteTargetID); err != nil {
			v.setError(err)
			return v, nil
		}
		v.setStatus("Deleted %q", v.deleteTargetName)
		return v, v.loadTasks
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % editFieldCount
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + editFieldCount - 1) % editFieldCount
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.editFocusIdx {
		case editName, editDeadline, editPriority, editTag:
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		case editSave:
			return v, v.saveTask()
		}
		// Enter in the description inserts a newline

	case msg.String() == "left", msg.String() == "right":
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		switch v.editFocusIdx {
		case editPriority:
			n := len(models.PriorityLabels)
			v.editPriority = models.Priority((int(v.editPriority) + step + n) % n)
			return v, nil
		case editTag:
			n := len(v.tags) + 1
			v.editTagIdx = (v.editTagIdx + step + n) % n
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case editName:
		v.editName, cmd = v.editName.Update(msg)
	case editDesc:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case editDeadline:
		v.editDeadline, cmd = v.editDeadline.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

// visibleItems is how many two-line rows fit on screen
func (v *TaskListView) visibleItems() int {
	availableHeight := max(v.height-12, 3)
	return max(availableHeight/3, 1)
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editTaskID = 0
	v.editFocusIdx = editName
	v.editName.Reset()
	v.editDesc.Reset()
	v.editDeadline.Reset()
	v.editPriority = models.PriorityNone
	v.editTagIdx = 0
	if v.selectedTag != nil {
		v.editTagIdx = v.tagIndex(*v.selectedTag)
	}
	v.errMsg = ""
	v.updateEditFocus()
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editTaskID = task.ID
	v.editFocusIdx = editName
	v.editName.SetValue(task.Name)
	v.editDesc.Reset()
	if task.Description != nil {
		v.editDesc.SetValue(*task.Description)
	}
	v.editDeadline.Reset()
	if task.Deadline != nil {
		v.editDeadline.SetValue(task.Deadline.Local().Format(deadlineLayout))
	}
	v.editPriority = task.Priority
	v.editTagIdx = 0
	if task.TagID != nil {
		v.editTagIdx = v.tagIndex(*task.TagID)
	}
	v.errMsg = ""
	v.updateEditFocus()
}

// tagIndex returns the edit form index of tagID, or 0 when it is not loaded
func (v *TaskListView) tagIndex(tagID int64) int {
	for i, t := range v.tags {
		if t.ID == tagID {
			return i + 1
		}
	}
	return 0
}

func (v *TaskListView) updateEditFocus() {
	v.editName.Blur()
	v.editDesc.Blur()
	v.editDeadline.Blur()

	switch v.editFocusIdx {
	case editName:
		v.editName.Focus()
	case editDesc:
		v.editDesc.Focus()
	case editDeadline:
		v.editDeadline.Focus()
	}
}

// parseDeadline reads a local deadline; blank means no deadline
func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(deadlineLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (v *TaskListView) saveTask() tea.Cmd {
	ctx := v.deps.Ctx

	name := strings.TrimSpace(v.editName.Value())
	if name == "" {
		v.errMsg = "A name is required."
		return nil
	}
	deadline, err := parseDeadline(v.editDeadline.Value())
	if err != nil {
		v.errMsg = "Deadline must look like " + deadlineLayout + "."
		return nil
	}

	var desc *string
	if d := strings.TrimSpace(v.editDesc.Value()); d != "" {
		desc = &d
	}
	var tagID *int64
	if v.editTagIdx > 0 && v.editTagIdx <= len(v.tags) {
		id := v.tags[v.editTagIdx-1].ID
		tagID = &id
	}
	priority := v.editPriority

	if v.editingNew {
		_, err = v.deps.Managers.Tasks.Create(ctx, manager.NewTask{
			UserID:      v.user.ID,
			Name:        name,
			Description: desc,
			TagID:       tagID,
			Deadline:    deadline,
			Priority:    priority,
		})
	} else {
		u := models.TaskUpdate{
			Name:     &name,
			Priority: &priority,
			TagID:    tagID,
			ClearTag: tagID == nil,
		}
		empty := ""
		u.Description = &empty
		if desc != nil {
			u.Description = desc
		}
		if old, ok := v.rowByID(v.editTaskID); ok && !sameDeadline(old.Deadline, deadline) {
			u.Deadline = deadline
			u.ClearDeadline = deadline == nil
		}
		err = v.deps.Managers.Tasks.Update(ctx, v.editTaskID, u)
	}
	if err != nil {
		v.setError(err)
		return nil
	}

	v.editing = false
	return v.loadTasks
}

func (v *TaskListView) rowByID(id int64) (models.Task, bool) {
	for _, r := range v.rows {
		if r.task.ID == id {
			return r.task, true
		}
	}
	return models.Task{}, false
}

func sameDeadline(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderStatus())
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) tagName(id int64) (string, lipgloss.TerminalColor) {
	for _, t := range v.tags {
		if t.ID == id {
			var color lipgloss.TerminalColor = styles.Current.Secondary
			if t.Color != nil {
				color = lipgloss.Color(*t.Color)
			}
			return t.Name, color
		}
	}
	return "", styles.Current.Muted
}

func (v *TaskListView) renderHeader() string {
	s := v.styles

	title := s.Title.Render(v.user.Name + "'s tasks")

	var filters []string
	filters = append(filters, "sort: "+sortOptions[v.sortIdx].label)
	if v.selectedTag != nil {
		name, _ := v.tagName(*v.selectedTag)
		filters = append(filters, "tag: "+name)
	}
	if v.keyword != "" {
		filters = append(filters, fmt.Sprintf("search: %q", v.keyword))
	}
	header := lipgloss.JoinVertical(lipgloss.Left, title, s.TitleMuted.Render(strings.Join(filters, " • ")))

	switch {
	case v.prompt != promptNone:
		contentWidth := styles.ContentWidth(v.width)
		header = lipgloss.JoinVertical(lipgloss.Left, header,
			s.InputFocused.Width(clamp(contentWidth-6, 20, 50)).Render(v.promptInput.View()))
	case v.tagDropdownOpen:
		header = lipgloss.JoinVertical(lipgloss.Left, header, v.renderTagDropdown())
	}
	return header
}

func (v *TaskListView) renderTagDropdown() string {
	s := v.styles
	var items []string

	allStyle := s.ListItem
	if v.tagCursor == 0 {
		allStyle = s.ListSelected
	}
	items = append(items, allStyle.Render("All"))

	for i, tag := range v.tags {
		itemStyle := s.ListItem
		if v.tagCursor == i+1 {
			itemStyle = s.ListSelected
		}
		_, color := v.tagName(tag.ID)
		dot := lipgloss.NewStyle().Foreground(color).Render("●")
		items = append(items, itemStyle.Render(dot+" "+tag.Name))
	}
	items = append(items, s.TitleMuted.Render("↵: filter • d: delete tag • esc: close"))

	return s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.rows) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.rows))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.rows[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(row taskRow, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)
	task := row.task

	check := "[ ]"
	if task.IsDone {
		check = "[x]"
	}
	name := task.Name
	if task.IsDone {
		name = s.Done.Render(name)
	}
	titleLine := check + " " + name
	if task.Priority != models.PriorityNone {
		prio := lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority)).Render("!" + task.Priority.String())
		titleLine += " " + prio
	}

	var details []string
	if task.Deadline != nil {
		details = append(details, "due "+task.Deadline.Local().Format(deadlineLayout))
	}
	if task.TagID != nil && !row.shared {
		if tname, color := v.tagName(*task.TagID); tname != "" {
			details = append(details, lipgloss.NewStyle().Foreground(color).Render("#"+tname))
		}
	}
	if row.shared {
		details = append(details, s.Shared.Render("shared with you"))
	}
	detailLine := s.TitleMuted.Render("no deadline")
	if len(details) > 0 {
		detailLine = strings.Join(details, "  ")
	}

	itemStyle := s.ListItem.Width(width)
	if selected {
		itemStyle = s.ListSelected.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		itemStyle.Render(titleLine),
		itemStyle.Render(detailLine),
	) + "\n"
}

func (v *TaskListView) renderStatus() string {
	switch {
	case v.errMsg != "":
		return v.styles.Error.Render(v.errMsg) + "\n"
	case v.status != "":
		return v.styles.Status.Render(v.status) + "\n"
	}
	return ""
}

func (v *TaskListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	fieldStyle := func(idx int) lipgloss.Style {
		if v.editFocusIdx == idx {
			return s.InputFocused
		}
		return s.Input
	}
	btnStyle := s.Button
	if v.editFocusIdx == editSave {
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	prio := lipgloss.NewStyle().Foreground(styles.PriorityColor(v.editPriority)).Render(v.editPriority.String())
	tagLabel := "none"
	if v.editTagIdx > 0 && v.editTagIdx <= len(v.tags) {
		tagLabel = v.tags[v.editTagIdx-1].Name
	}

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Name:",
		fieldStyle(editName).Width(inputWidth).Render(v.editName.View()),
		"",
		"Description:",
		fieldStyle(editDesc).Render(v.editDesc.View()),
		"",
		"Deadline (" + deadlineLayout + ", blank for none):",
		fieldStyle(editDeadline).Width(inputWidth).Render(v.editDeadline.View()),
		"",
		"Priority:",
		fieldStyle(editPriority).Width(inputWidth).Render("← " + prio + " →"),
		"",
		"Tag:",
		fieldStyle(editTag).Width(inputWidth).Render("← " + tagLabel + " →"),
		"",
		btnStyle.Render(" Save "),
		"",
	}
	if v.errMsg != "" {
		rows = append(rows, s.Error.Render(v.errMsg))
	}
	rows = append(rows, s.TitleMuted.Render("Tab: next • ←→: change • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s done • %s del • %s search • %s sort • %s help • %s quit",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("space"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("s"),
			s.HelpKey.Render("?"),
			s.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	bindings := []key.Binding{
		v.keys.New, v.keys.Edit, v.keys.Toggle, v.keys.Delete,
		v.keys.Priority, v.keys.Sort, v.keys.Search, v.keys.Filter,
		v.keys.NewTag, v.keys.Remind, v.keys.Share, v.keys.Logout,
		v.keys.Back, v.keys.Quit,
	}
	helpItems := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, b := range bindings {
		h := b.Help()
		helpItems = append(helpItems, s.HelpKey.Width(8).Render(h.Key)+h.Desc)
	}
	helpItems = append(helpItems, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, helpItems...)),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q and its reminders will be removed.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
