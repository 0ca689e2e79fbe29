package boardtui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tkanlabs/tkan/task"
)

func newTestModel(t *testing.T, seed func(manager *task.Manager)) (model, *task.Manager) {
	t.Helper()
	manager := task.NewManager(filepath.Join(t.TempDir(), "tasks.jsonl"))
	if seed != nil {
		seed(manager)
	}
	m := newModel(manager, 3)
	m.width = 100
	m.height = 30
	m.resize()
	m.refreshColumns()
	return m, manager
}

func mustCreate(t *testing.T, manager *task.Manager, title string, opts task.CreateOptions) task.Task {
	t.Helper()
	created, err := manager.Create(title, opts)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created == nil {
		t.Fatalf("Create returned no task for %q", title)
	}
	return *created
}

func columnIDs(m model, col column) []string {
	items := m.columns[col].Items()
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.(taskItem).task.ID)
	}
	return ids
}

func TestColumnsReflectStatuses(t *testing.T) {
	m, _ := newTestModel(t, func(manager *task.Manager) {
		mustCreate(t, manager, "first", task.CreateOptions{})
		mustCreate(t, manager, "second", task.CreateOptions{})
		doing := mustCreate(t, manager, "third", task.CreateOptions{})
		if _, err := manager.Start(doing.ID); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
	})

	if got := len(m.columns[columnTodo].Items()); got != 2 {
		t.Errorf("expected 2 todo items, got %d", got)
	}
	if got := len(m.columns[columnDoing].Items()); got != 1 {
		t.Errorf("expected 1 doing item, got %d", got)
	}
	if got := len(m.columns[columnDone].Items()); got != 0 {
		t.Errorf("expected 0 done items, got %d", got)
	}
	if m.columns[columnTodo].Title != "Todo (2)" {
		t.Errorf("expected counted title, got %q", m.columns[columnTodo].Title)
	}
}

func TestFocusColumnClamps(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = m.focusColumn(-1)
	if m.focused != columnTodo {
		t.Fatalf("expected focus to stay on todo, got %d", m.focused)
	}
	m = m.focusColumn(1)
	m = m.focusColumn(1)
	m = m.focusColumn(1)
	if m.focused != columnDone {
		t.Fatalf("expected focus clamped to done, got %d", m.focused)
	}
}

func TestMoveSelectionClamps(t *testing.T) {
	m, _ := newTestModel(t, func(manager *task.Manager) {
		mustCreate(t, manager, "one", task.CreateOptions{})
		mustCreate(t, manager, "two", task.CreateOptions{})
		mustCreate(t, manager, "three", task.CreateOptions{})
	})

	m = m.moveSelection(1)
	if got := m.columns[columnTodo].Index(); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	m = m.moveSelection(10)
	if got := m.columns[columnTodo].Index(); got != 2 {
		t.Fatalf("expected clamp to last index, got %d", got)
	}
	m = m.moveSelection(-10)
	if got := m.columns[columnTodo].Index(); got != 0 {
		t.Fatalf("expected clamp to first index, got %d", got)
	}
}

func TestMoveTaskFollowsFocus(t *testing.T) {
	var id string
	m, manager := newTestModel(t, func(manager *task.Manager) {
		id = mustCreate(t, manager, "movable", task.CreateOptions{}).ID
	})

	m = m.moveTask(1)

	got, ok := manager.Get(id)
	if !ok {
		t.Fatalf("task disappeared")
	}
	if got.Status != task.StatusDoing {
		t.Fatalf("expected status doing, got %q", got.Status)
	}
	if m.focused != columnDoing {
		t.Fatalf("expected focus to follow into doing, got %d", m.focused)
	}
	item, ok := m.currentItem()
	if !ok || item.task.ID != id {
		t.Fatalf("expected moved task selected, got %+v", item)
	}

	m = m.moveTask(1)
	m = m.moveTask(1)
	got, _ = manager.Get(id)
	if got.Status != task.StatusDone {
		t.Fatalf("expected move past done to be a no-op, got %q", got.Status)
	}
}

func TestCycleSortOrdersByPriority(t *testing.T) {
	var eliminate, doFirst, schedule string
	m, _ := newTestModel(t, func(manager *task.Manager) {
		eliminate = mustCreate(t, manager, "eliminate", task.CreateOptions{}).ID
		doFirst = mustCreate(t, manager, "do first", task.CreateOptions{Priority: task.PriorityUrgentImportant}).ID
		schedule = mustCreate(t, manager, "schedule", task.CreateOptions{Priority: task.PriorityNotUrgentImportant}).ID
	})

	m = m.cycleSort()
	if m.sort != sortPriority {
		t.Fatalf("expected priority sort, got %v", m.sort)
	}

	ids := columnIDs(m, columnTodo)
	want := []string{doFirst, schedule, eliminate}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestCycleSortWrapsToCreated(t *testing.T) {
	m, _ := newTestModel(t, nil)

	for range [sortModeCount]struct{}{} {
		m = m.cycleSort()
	}
	if m.sort != sortCreated {
		t.Fatalf("expected wrap to created order, got %v", m.sort)
	}
}

func TestDeleteFlowConfirm(t *testing.T) {
	var id string
	m, manager := newTestModel(t, func(manager *task.Manager) {
		id = mustCreate(t, manager, "doomed", task.CreateOptions{}).ID
	})

	m = m.promptDelete()
	if m.modal.kind != modalDeleteTask {
		t.Fatalf("expected delete modal, got %d", m.modal.kind)
	}
	if m.modal.selected != 1 {
		t.Fatalf("expected cancel preselected, got %d", m.modal.selected)
	}
	if !strings.Contains(m.modal.message, id) {
		t.Fatalf("expected modal message to name the task, got %q", m.modal.message)
	}

	updated, _ := m.updateModal(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(model)
	if m.modal.selected != 0 {
		t.Fatalf("expected confirm selected, got %d", m.modal.selected)
	}
	updated, _ = m.updateModal(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	if m.modal.kind != modalNone {
		t.Fatalf("expected modal closed")
	}
	if _, ok := manager.Get(id); ok {
		t.Fatalf("expected task deleted")
	}
	if got := len(m.columns[columnTodo].Items()); got != 0 {
		t.Fatalf("expected empty column after delete, got %d items", got)
	}
}

func TestDeleteFlowCancel(t *testing.T) {
	var id string
	m, manager := newTestModel(t, func(manager *task.Manager) {
		id = mustCreate(t, manager, "survivor", task.CreateOptions{}).ID
	})

	m = m.promptDelete()
	updated, _ := m.updateModal(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	if _, ok := manager.Get(id); !ok {
		t.Fatalf("expected task kept on cancel")
	}
	if m.deleteID != "" {
		t.Fatalf("expected delete target cleared")
	}
}

func TestCreateFormFlow(t *testing.T) {
	m, manager := newTestModel(t, nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(model)
	if !m.form.visible || !m.form.isCreate {
		t.Fatalf("expected create form open")
	}

	m.form = withFieldValue(m.form, fieldTitle, "New card")
	updated, _ = m.submitForm()
	m = updated.(model)

	if m.form.visible {
		t.Fatalf("expected form closed after submit")
	}
	tasks := manager.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "New card" {
		t.Fatalf("expected created task, got %+v", tasks)
	}
	item, ok := m.currentItem()
	if !ok || item.task.ID != tasks[0].ID {
		t.Fatalf("expected new task selected")
	}
}

func TestCreateFormEmptyTitleStaysOpen(t *testing.T) {
	m, manager := newTestModel(t, nil)

	m = m.openCreateForm()
	updated, _ := m.submitForm()
	m = updated.(model)

	if !m.form.visible {
		t.Fatalf("expected form to stay open on empty title")
	}
	if m.statusLevel != statusError {
		t.Fatalf("expected error status, got %d", m.statusLevel)
	}
	if len(manager.Tasks()) != 0 {
		t.Fatalf("expected no task created")
	}
}

func TestEditFormMovesTask(t *testing.T) {
	var id string
	m, manager := newTestModel(t, func(manager *task.Manager) {
		id = mustCreate(t, manager, "editable", task.CreateOptions{}).ID
	})

	m = m.openEditForm()
	if m.form.isCreate || m.form.taskID != id {
		t.Fatalf("expected edit form for %s, got %+v", id, m.form)
	}

	m.form = withFieldValue(m.form, fieldStatus, "done")
	updated, _ := m.submitForm()
	m = updated.(model)

	got, _ := manager.Get(id)
	if got.Status != task.StatusDone {
		t.Fatalf("expected status done, got %q", got.Status)
	}
	if m.focused != columnDone {
		t.Fatalf("expected focus to follow into done, got %d", m.focused)
	}
}

func TestFormEscDiscards(t *testing.T) {
	m, manager := newTestModel(t, nil)

	m = m.openCreateForm()
	m.form = withFieldValue(m.form, fieldTitle, "discarded")
	updated, _ := m.updateForm(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(model)

	if m.form.visible {
		t.Fatalf("expected form closed on esc")
	}
	if len(manager.Tasks()) != 0 {
		t.Fatalf("expected nothing created on esc")
	}
}

func TestFormEnterAdvancesThenSubmits(t *testing.T) {
	m, manager := newTestModel(t, nil)

	m = m.openCreateForm()
	m.form = withFieldValue(m.form, fieldTitle, "Quick add")

	updated, _ := m.updateForm(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)
	if !m.form.visible {
		t.Fatalf("expected form still open after advancing")
	}
	if m.form.fieldIndex != 1 {
		t.Fatalf("expected enter to advance to the next field, got %d", m.form.fieldIndex)
	}

	for !m.form.onLastField() {
		m.form = m.form.advanceField(1)
	}
	updated, _ = m.updateForm(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	if m.form.visible {
		t.Fatalf("expected enter on the last field to submit")
	}
	tasks := manager.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Quick add" {
		t.Fatalf("expected created task, got %+v", tasks)
	}
}

func TestRefreshKeepsSelectionByID(t *testing.T) {
	m, _ := newTestModel(t, func(manager *task.Manager) {
		mustCreate(t, manager, "one", task.CreateOptions{})
		mustCreate(t, manager, "two", task.CreateOptions{})
		mustCreate(t, manager, "three", task.CreateOptions{})
	})

	m = m.moveSelection(2)
	item, ok := m.currentItem()
	if !ok {
		t.Fatalf("expected selection")
	}
	id := item.task.ID

	m.refreshColumns()
	item, ok = m.currentItem()
	if !ok || item.task.ID != id {
		t.Fatalf("expected selection kept on %s, got %+v", id, item)
	}
}

func TestQuitSavesBoard(t *testing.T) {
	m, _ := newTestModel(t, func(manager *task.Manager) {
		mustCreate(t, manager, "persisted", task.CreateOptions{})
	})

	_, cmd, handled := m.quit()
	if !handled {
		t.Fatalf("expected quit handled")
	}
	if cmd == nil {
		t.Fatalf("expected quit command after successful save")
	}
}

func TestQuitBlocksOnFailedSaveUntilRepeated(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	manager := task.NewManager(filepath.Join(blocker, "tasks.jsonl"))
	m := newModel(manager, 3)

	m, cmd, _ := m.quit()
	if cmd != nil {
		t.Fatalf("expected first quit blocked on failed save")
	}
	if !m.saveFailed || m.statusLevel != statusError {
		t.Fatalf("expected error status after failed save")
	}
	if !strings.Contains(m.status, "Save failed") {
		t.Fatalf("expected save failure message, got %q", m.status)
	}

	_, cmd, _ = m.quit()
	if cmd == nil {
		t.Fatalf("expected second quit to exit anyway")
	}
}
