// Package boardtui renders the kanban board as a full-screen terminal UI.
//
// The board shows one pane per column (todo, doing, done). All mutations go
// through the shared task.Manager and every mutation is followed by a full
// column refresh, so the UI never renders stale board state.
package boardtui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	internalstrings "github.com/tkanlabs/tkan/internal/strings"
	"github.com/tkanlabs/tkan/task"
)

type column int

const (
	columnTodo column = iota
	columnDoing
	columnDone

	columnCount = 3
)

var columnStatuses = [columnCount]task.Status{task.StatusTodo, task.StatusDoing, task.StatusDone}

var columnTitles = [columnCount]string{"Todo", "Doing", "Done"}

func columnFor(status task.Status) column {
	for i, candidate := range columnStatuses {
		if candidate == status {
			return column(i)
		}
	}
	return columnTodo
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDeleteTask
)

type sortMode int

const (
	sortCreated sortMode = iota
	sortPriority
	sortDate
	sortDeadline

	sortModeCount = 4
)

func (mode sortMode) String() string {
	switch mode {
	case sortPriority:
		return "priority"
	case sortDate:
		return "date"
	case sortDeadline:
		return "deadline"
	default:
		return "created"
	}
}

type model struct {
	manager     *task.Manager
	warnDays    int
	width       int
	height      int
	focused     column
	columns     [columnCount]list.Model
	selectedIDs [columnCount]string
	sort        sortMode
	form        taskForm
	modal       confirmModal
	deleteID    string
	status      string
	statusLevel statusLevel
	saveFailed  bool
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
}

// Run starts the board UI and blocks until the user quits. Quitting
// flushes the board through the manager's final save.
func Run(ctx context.Context, manager *task.Manager, warnDays int) error {
	if manager == nil {
		return fmt.Errorf("task manager is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(manager, warnDays), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(manager *task.Manager, warnDays int) model {
	m := model{
		manager:  manager,
		warnDays: warnDays,
		modal:    confirmModal{kind: modalNone},
	}
	for i := range m.columns {
		l := list.New(nil, newTaskItemDelegate(warnDays), 0, 0)
		l.Title = columnTitles[i]
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		l.SetShowPagination(false)
		m.columns[i] = l
	}
	m.refreshColumns()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal.kind != modalNone {
		return m.updateModal(msg)
	}
	if m.form.visible {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		updated, cmd, handled := m.handleKey(msg)
		if handled {
			return updated, cmd
		}
		m = updated
	}

	var cmd tea.Cmd
	m.columns[m.focused], cmd = m.columns[m.focused].Update(msg)
	m.updateSelection()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading board..."
	}
	helpLine := m.renderHelpLine()
	statusLine := m.renderStatusLine()
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	widths := columnWidths(m.width)

	panes := make([]string, 0, columnCount)
	for i := range m.columns {
		panes = append(panes, m.renderPane(m.columns[i].View(), widths[i], contentHeight, m.focused == column(i)))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	view := strings.Join([]string{m.renderTitleBar(), helpLine, content, statusLine}, "\n")
	if m.form.visible {
		view = m.renderFormOverlay()
	}
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay()
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "?":
		return m.openHelp(), nil, true
	}

	if updated, handled := m.handleListNavigation(key); handled {
		return updated, nil, true
	}

	switch key {
	case "ctrl+c", "q":
		return m.quit()
	case "h", "left":
		return m.focusColumn(-1), nil, true
	case "l", "right":
		return m.focusColumn(1), nil, true
	case "n":
		return m.openCreateForm(), nil, true
	case "enter", "e":
		return m.openEditForm(), nil, true
	case "d":
		return m.promptDelete(), nil, true
	case "s":
		return m.cycleSort(), nil, true
	case "<", "shift+left":
		return m.moveTask(-1), nil, true
	case ">", "shift+right":
		return m.moveTask(1), nil, true
	}

	return m, nil, false
}

// quit flushes the board before exiting. A failed flush keeps the UI open
// with an error so the user can decide; a second quit exits regardless.
func (m model) quit() (model, tea.Cmd, bool) {
	if err := m.manager.ForceSave(); err != nil {
		if m.saveFailed {
			return m, tea.Quit, true
		}
		m.saveFailed = true
		m.setStatus(fmt.Sprintf("Save failed: %v (press q again to quit anyway)", err), statusError)
		return m, nil, true
	}
	return m, tea.Quit, true
}

func (m model) handleListNavigation(key string) (model, bool) {
	switch key {
	case "up", "k":
		return m.moveSelection(-1), true
	case "down", "j":
		return m.moveSelection(1), true
	case "home":
		return m.moveSelection(-len(m.columns[m.focused].Items())), true
	case "end":
		return m.moveSelection(len(m.columns[m.focused].Items())), true
	}
	return m, false
}

func (m model) moveSelection(delta int) model {
	items := m.columns[m.focused].Items()
	if len(items) == 0 {
		return m
	}
	current := m.columns[m.focused].Index()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	if next == current {
		return m
	}
	m.columns[m.focused].Select(next)
	m.updateSelection()
	return m
}

func (m model) focusColumn(delta int) model {
	target := m.focused + column(delta)
	if target < 0 {
		target = 0
	}
	if target >= columnCount {
		target = columnCount - 1
	}
	if target == m.focused {
		return m
	}
	m.focused = target
	m.updateSelection()
	return m
}

func (m model) openHelp() model {
	m.modal = confirmModal{kind: modalHelp}
	return m
}

func (m model) openCreateForm() model {
	m.form = newCreateForm().SetWidth(formWidth(m.width))
	return m
}

func (m model) openEditForm() model {
	item, ok := m.currentItem()
	if !ok {
		m.setStatus("No task selected", statusError)
		return m
	}
	m.form = newEditForm(item.task).SetWidth(formWidth(m.width))
	return m
}

func (m model) promptDelete() model {
	item, ok := m.currentItem()
	if !ok {
		m.setStatus("No task selected", statusError)
		return m
	}
	m.deleteID = item.task.ID
	m.modal = confirmModal{
		kind:        modalDeleteTask,
		message:     fmt.Sprintf("Delete task %s?", item.task.ID),
		confirmText: "Delete",
		cancelText:  "Cancel",
		selected:    1,
	}
	return m
}

func (m model) cycleSort() model {
	m.sort = (m.sort + 1) % sortModeCount
	m.refreshColumns()
	m.setStatus(fmt.Sprintf("Sorted by %s", m.sort), statusInfo)
	return m
}

// moveTask shifts the selected task into the adjacent column. Focus
// follows the task so repeated moves keep acting on it.
func (m model) moveTask(delta int) model {
	item, ok := m.currentItem()
	if !ok {
		return m
	}
	target := m.focused + column(delta)
	if target < 0 || target >= columnCount {
		return m
	}
	status := columnStatuses[target]
	moved, err := m.manager.Update(item.task.ID, task.UpdateOptions{Status: &status})
	if !moved {
		m.setStatus("Task not found", statusError)
		m.refreshColumns()
		return m
	}
	m.focused = target
	m.selectedIDs[target] = item.task.ID
	m.refreshColumns()
	if err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err), statusError)
		return m
	}
	m.setStatus(fmt.Sprintf("Moved %s to %s", item.task.ID, status), statusInfo)
	return m
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.modal.kind == modalHelp {
		switch key.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
			return m, nil
		case "ctrl+c", "q":
			m.modal = confirmModal{kind: modalNone}
			updated, cmd, _ := m.quit()
			return updated, cmd
		}
		return m, nil
	}
	selection := m.modal.selected
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		if selection == 0 {
			selection = 1
		} else {
			selection = 0
		}
		m.modal.selected = selection
		return m, nil
	case "enter":
		confirm := selection == 0
		return m.resolveModal(confirm)
	case "esc":
		return m.resolveModal(false)
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	kind := m.modal.kind
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		m.deleteID = ""
		return m, nil
	}
	switch kind {
	case modalDeleteTask:
		return m.deleteTask(), nil
	default:
		return m, nil
	}
}

func (m model) deleteTask() model {
	id := m.deleteID
	m.deleteID = ""
	deleted, err := m.manager.Delete(id)
	m.refreshColumns()
	if !deleted {
		m.setStatus("Task not found", statusError)
		return m
	}
	if err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err), statusError)
		return m
	}
	m.setStatus(fmt.Sprintf("Deleted %s", id), statusInfo)
	return m
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.form = m.form.SetWidth(formWidth(m.width))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.form = taskForm{}
			m.setStatus("Edits discarded", statusInfo)
			return m, nil
		case "tab":
			m.form = m.form.advanceField(1)
			return m, nil
		case "shift+tab", "backtab":
			m.form = m.form.advanceField(-1)
			return m, nil
		case "enter":
			if !m.form.currentFieldIsMultiline() {
				if m.form.onLastField() {
					return m.submitForm()
				}
				m.form = m.form.advanceField(1)
				return m, nil
			}
		case "ctrl+s":
			return m.submitForm()
		case "ctrl+c":
			updated, cmd, _ := m.quit()
			return updated, cmd
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.isCreate {
		title, opts, err := m.form.buildCreateOptions()
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		created, err := m.manager.Create(title, opts)
		m.form = taskForm{}
		if created != nil {
			col := columnFor(created.Status)
			m.focused = col
			m.selectedIDs[col] = created.ID
		}
		m.refreshColumns()
		if err != nil {
			m.setStatus(fmt.Sprintf("Save failed: %v", err), statusError)
			return m, nil
		}
		if created == nil {
			m.setStatus(task.ErrEmptyTitle.Error(), statusError)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Created %s", created.ID), statusInfo)
		return m, nil
	}

	opts, err := m.form.buildUpdateOptions()
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return m, nil
	}
	id := m.form.taskID
	updated, err := m.manager.Update(id, opts)
	m.form = taskForm{}
	if t, found := m.manager.Get(id); found {
		col := columnFor(t.Status)
		m.focused = col
		m.selectedIDs[col] = id
	}
	m.refreshColumns()
	if !updated {
		m.setStatus("Task not found", statusError)
		return m, nil
	}
	if err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err), statusError)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Updated %s", id), statusInfo)
	return m, nil
}

// refreshColumns rebuilds every column from the manager. Selection is
// restored by task ID so refreshes keep the cursor in place.
func (m *model) refreshColumns() {
	for i := range m.columns {
		tasks := m.applySort(m.manager.TasksByStatus(columnStatuses[i]))
		items := make([]list.Item, 0, len(tasks))
		for _, t := range tasks {
			items = append(items, taskItem{task: t})
		}
		m.columns[i].SetItems(items)
		m.columns[i].Title = fmt.Sprintf("%s (%d)", columnTitles[i], len(items))
		if m.selectedIDs[i] != "" {
			m.selectTaskByID(column(i), m.selectedIDs[i])
		}
		if idx := m.columns[i].Index(); len(items) > 0 && (idx < 0 || idx >= len(items)) {
			m.columns[i].Select(len(items) - 1)
		}
	}
	m.updateSelection()
}

func (m *model) applySort(tasks []task.Task) []task.Task {
	switch m.sort {
	case sortPriority:
		return task.SortByPriority(tasks)
	case sortDate:
		return task.SortByDate(tasks)
	case sortDeadline:
		return task.SortByDeadline(tasks)
	default:
		return tasks
	}
}

func (m *model) updateSelection() {
	for i := range m.columns {
		item, ok := m.columnItem(column(i))
		if ok {
			m.selectedIDs[i] = item.task.ID
		} else {
			m.selectedIDs[i] = ""
		}
	}
}

func (m *model) selectTaskByID(col column, id string) {
	if id == "" {
		return
	}
	for i, item := range m.columns[col].Items() {
		taskItem, ok := item.(taskItem)
		if ok && taskItem.task.ID == id {
			m.columns[col].Select(i)
			return
		}
	}
}

func (m model) currentItem() (taskItem, bool) {
	return m.columnItem(m.focused)
}

func (m model) columnItem(col column) (taskItem, bool) {
	item := m.columns[col].SelectedItem()
	if item == nil {
		return taskItem{}, false
	}
	current, ok := item.(taskItem)
	return current, ok
}

func (m *model) resize() {
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	widths := columnWidths(m.width)
	for i := range m.columns {
		listWidth := widths[i] - 4
		if listWidth < 1 {
			listWidth = 1
		}
		listHeight := contentHeight - 2
		if listHeight < 1 {
			listHeight = 1
		}
		m.columns[i].SetSize(listWidth, listHeight)
	}
}

func columnWidths(width int) [columnCount]int {
	each := width / columnCount
	if each < 20 {
		each = 20
	}
	last := width - (columnCount-1)*each
	if last < 20 {
		last = 20
	}
	return [columnCount]int{each, each, last}
}

func formWidth(width int) int {
	form := width - 20
	if form < 30 {
		form = 30
	}
	if form > 80 {
		form = 80
	}
	return form
}

func (m model) renderTitleBar() string {
	content := appNameStyle.Render("tkan board") + sortHintStyle.Render("sort: "+m.sort.String())
	helpHint := valueMuted.Render("Press ? for help")
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(helpHint)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := strings.Repeat(" ", spacerWidth)
	return titleBarStyle.Width(m.width).Render(content + spacer + helpHint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).Render(content)
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(text)
}

func (m model) renderHelpLine() string {
	text := strings.TrimSpace(m.helpSummary())
	if text == "" {
		return ""
	}
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m model) helpSummary() string {
	if m.form.visible {
		return "Keys: tab next field | shift+tab prev | ctrl+s save | esc cancel"
	}
	return "Keys: h/l columns | j/k move | enter edit | n new | d delete | s sort | </> move task | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) renderFormOverlay() string {
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(m.form.View()))
}

func (m model) renderModalOverlay() string {
	if m.modal.kind == modalNone {
		return ""
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	if m.modal.kind == modalHelp {
		return modalStyle.Render(m.helpContent())
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, 2)
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	return modalStyle.Render(content)
}

func (m model) helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit (saves the board)",
		"?: toggle help",
		"",
		labelStyle.Render("Navigation"),
		"h/l or left/right: switch column",
		"up/down or j/k: move selection",
		"home/end: jump to first/last task",
		"",
		labelStyle.Render("Tasks"),
		"n: new task",
		"enter or e: edit task",
		"d: delete task",
		"< or > (or shift+arrows): move task between columns",
		"",
		labelStyle.Render("Sorting"),
		"s: cycle created/priority/date/deadline order",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}
