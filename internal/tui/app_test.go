package tui

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RobTranquillo/obsidian-pw/internal/config"
	"github.com/RobTranquillo/obsidian-pw/internal/source"
	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/components"
)

const testSnapshot = `files:
  - id: notes/today.md
    path: /notes/today.md
    todos:
      - status: todo
        text: Plan trip
        line: 2
        attributes:
          selected: true
        subtasks:
          - status: todo
            text: Book flights
            line: 3
          - status: todo
            text: Pack bags
            line: 4
      - status: todo
        text: Pay rent
        line: 6
        attributes:
          due: 2026-10-01
      - status: done
        text: Old chore
        line: 7
`

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	copied   []string
	notified []string
}

func newTestApp(t *testing.T, mutate func(*config.Config)) *testApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.yaml")
	if err := os.WriteFile(path, []byte(testSnapshot), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Source = path
	if mutate != nil {
		mutate(cfg)
	}

	ta := &testApp{}
	app, err := NewApp(Options{
		Config: cfg,
		Store:  source.NewStore(path, nil),
		Clock:  func() time.Time { return testNow },
		Clipboard: func(text string) error {
			ta.copied = append(ta.copied, text)
			return nil
		},
		Notify: func(title, message string) error {
			ta.notified = append(ta.notified, message)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	ta.App = app

	ta.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	ta.send(ta.loadTodos()())
	return ta
}

// send feeds msg to the model and returns the resulting command.
func (ta *testApp) send(msg tea.Msg) tea.Cmd {
	_, cmd := ta.Update(msg)
	return cmd
}

func (ta *testApp) typeKeys(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = ta.send(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// runCmd executes cmd and any batched commands, returning their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestApp_ViewShowsSections(t *testing.T) {
	app := newTestApp(t, nil)
	view := app.View()

	for _, want := range []string{components.SectionSelected, components.SectionDue, components.SectionAll, "Plan trip", "Pay rent"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Old chore") {
		t.Error("completed item shown with hide_completed")
	}
	if strings.Contains(view, "Book flights") {
		t.Error("subtasks should start folded")
	}
}

func TestApp_ShowCompleted(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.UI.HideCompleted = false })
	if !strings.Contains(app.View(), "Old chore") {
		t.Error("completed item hidden without hide_completed")
	}
}

func TestApp_FoldWithKey(t *testing.T) {
	app := newTestApp(t, nil)

	app.typeKeys("tab")
	// Fold state is shared, so both the Selected and the All copy unfold.
	if got := strings.Count(app.View(), "Book flights"); got != 2 {
		t.Errorf("after unfold, subtask shown %d times, want 2", got)
	}

	app.typeKeys("tab")
	if strings.Contains(app.View(), "Book flights") {
		t.Error("subtask still shown after folding")
	}

	app.typeKeys("l")
	if !strings.Contains(app.View(), "Pack bags") {
		t.Error("expand key did not unfold")
	}
	app.typeKeys("h")
	if strings.Contains(app.View(), "Pack bags") {
		t.Error("collapse key did not fold")
	}
}

func TestApp_CollapseMovesToParent(t *testing.T) {
	app := newTestApp(t, nil)
	app.typeKeys("l", "j")
	if got := app.selected().Item().Text; got != "Book flights" {
		t.Fatalf("selected %q, want Book flights", got)
	}
	app.typeKeys("h")
	if got := app.selected().Item().Text; got != "Plan trip" {
		t.Errorf("selected %q after collapse, want Plan trip", got)
	}
}

func TestApp_FoldSurvivesReload(t *testing.T) {
	app := newTestApp(t, nil)
	app.typeKeys("tab")
	app.send(app.loadTodos()())
	if !strings.Contains(app.View(), "Book flights") {
		t.Error("fold state lost after reload")
	}
}

func TestApp_Navigation(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		key  string
		want string
	}{
		{"j", "Pay rent"},
		{"j", "Plan trip"},
		{"G", "Pay rent"},
		{"k", "Plan trip"},
		{"g", "Plan trip"},
		{"k", "Plan trip"},
	}
	for _, tt := range tests {
		app.typeKeys(tt.key)
		if got := app.selected().Item().Text; got != tt.want {
			t.Errorf("after %q selected %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestApp_CursorFollowsItemAcrossReload(t *testing.T) {
	app := newTestApp(t, nil)
	app.typeKeys("G")
	line := app.itemRows[app.cursor]

	app.send(app.loadTodos()())

	if got := app.selected().Item().Text; got != "Pay rent" {
		t.Errorf("selected %q after reload, want Pay rent", got)
	}
	if app.itemRows[app.cursor] != line {
		t.Errorf("cursor moved from row %d to %d", line, app.itemRows[app.cursor])
	}
}

func TestApp_Filter(t *testing.T) {
	app := newTestApp(t, nil)

	app.typeKeys("/", "r", "e", "n", "t")
	view := app.View()
	if strings.Contains(view, "Plan trip") {
		t.Error("filtered item still shown")
	}
	if !strings.Contains(view, "Pay rent") {
		t.Error("matching item hidden")
	}

	app.typeKeys("enter")
	if !strings.Contains(app.View(), "filter: rent") {
		t.Error("applied filter not shown")
	}

	app.typeKeys("esc")
	if !strings.Contains(app.View(), "Plan trip") {
		t.Error("clearing the filter did not restore items")
	}
}

func TestApp_FilterByAttribute(t *testing.T) {
	app := newTestApp(t, nil)
	app.typeKeys("/", "@", "d", "u", "e", "enter")

	view := app.View()
	if strings.Contains(view, "Plan trip") || !strings.Contains(view, "Pay rent") {
		t.Errorf("@due filter view:\n%s", view)
	}
}

func TestApp_CheckboxKey(t *testing.T) {
	app := newTestApp(t, nil)
	app.typeKeys("j") // Pay rent in the Due section

	msgs := runCmd(app.typeKeys("x"))
	if len(msgs) != 1 {
		t.Fatalf("checkbox produced %d messages, want 1", len(msgs))
	}
	app.send(msgs[0])

	if strings.Contains(app.View(), "Pay rent") {
		t.Error("completed item still shown")
	}
	var status todo.Status
	todo.Walk(app.Items(), func(item todo.Item) bool {
		if item.Text == "Pay rent" {
			status = item.Status
		}
		return true
	})
	if status != todo.StatusComplete {
		t.Errorf("status = %v, want complete", status)
	}
}

func TestApp_DragCopiesPayload(t *testing.T) {
	app := newTestApp(t, nil)

	msgs := runCmd(app.typeKeys("m"))
	if len(msgs) != 1 {
		t.Fatalf("drag produced %d messages, want 1", len(msgs))
	}
	started, ok := msgs[0].(components.DragStartedMsg)
	if !ok {
		t.Fatalf("drag produced %T, want DragStartedMsg", msgs[0])
	}
	if started.ID != "notes/today.md-Plan trip" || started.Type != components.TodoItemDragType {
		t.Errorf("drag msg = %+v", started)
	}
	want := "pw/todo-item\nnotes/today.md-Plan trip"
	if len(app.copied) != 1 || app.copied[0] != want {
		t.Errorf("clipboard = %q, want %q", app.copied, want)
	}

	app.send(started)
	if !strings.Contains(app.View(), "Plan trip") || app.statusErr {
		t.Errorf("unexpected status %q", app.statusMsg)
	}
}

func TestApp_DragClipboardError(t *testing.T) {
	app := newTestApp(t, nil)
	app.clipboard = func(string) error { return errors.New("no display") }

	msgs := runCmd(app.typeKeys("m"))
	if len(msgs) != 1 {
		t.Fatalf("drag produced %d messages, want 1", len(msgs))
	}
	app.send(msgs[0])
	if !app.statusErr || !strings.Contains(app.View(), "no display") {
		t.Errorf("clipboard error not shown, status %q", app.statusMsg)
	}
}

func TestApp_EditorCommand(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.Editor = "nvim -R" })

	cmd, err := app.editorCommand(todo.File{ID: "notes/today.md", Path: "/notes/today.md"}, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"nvim", "-R", "+5", "/notes/today.md"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}

	cmd, err = app.editorCommand(todo.File{ID: "notes/inbox.md"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := cmd.Args[len(cmd.Args)-1]; got != "notes/inbox.md" {
		t.Errorf("path = %q, want file id fallback", got)
	}
}

func TestApp_LoadErrorShownAndTreeKept(t *testing.T) {
	app := newTestApp(t, nil)
	if err := os.WriteFile(app.store.Path(), []byte("files: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	app.send(app.loadTodos()())
	view := app.View()
	if !app.statusErr || !strings.Contains(view, "failed to load") {
		t.Errorf("load error not shown, status %q", app.statusMsg)
	}
	if !strings.Contains(view, "Plan trip") {
		t.Error("previous tree dropped after a failed load")
	}
}

// mouseTarget finds the screen position of zone on the first row for text.
func mouseTarget(t *testing.T, app *testApp, text string, zone components.Zone) (int, int) {
	t.Helper()
	for line, row := range app.rows.Rows() {
		if row.Item == nil || row.Item.Item().Text != text {
			continue
		}
		for x := 0; x < 80; x++ {
			if row.ZoneAt(x) == zone {
				return x + appPadding + gutterWidth, line - app.viewport.YOffset + headerHeight
			}
		}
	}
	t.Fatalf("no zone %v on a row for %q", zone, text)
	return 0, 0
}

func (ta *testApp) clickAt(x, y int) tea.Cmd {
	ta.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return ta.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease})
}

func TestApp_MouseFoldZone(t *testing.T) {
	app := newTestApp(t, nil)

	x, y := mouseTarget(t, app, "Plan trip", components.ZoneFold)
	app.clickAt(x, y)
	if !strings.Contains(app.View(), "Book flights") {
		t.Error("clicking the fold affix did not unfold")
	}
}

func TestApp_MouseCheckboxZone(t *testing.T) {
	app := newTestApp(t, nil)

	x, y := mouseTarget(t, app, "Pay rent", components.ZoneCheckbox)
	msgs := runCmd(app.clickAt(x, y))
	if len(msgs) != 1 {
		t.Fatalf("checkbox click produced %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(TodosChangedMsg); !ok {
		t.Errorf("checkbox click produced %T", msgs[0])
	}
	if got := app.selected().Item().Text; got != "Pay rent" {
		t.Errorf("click did not move the cursor, selected %q", got)
	}
}

func TestApp_MouseDrag(t *testing.T) {
	app := newTestApp(t, nil)

	x, y := mouseTarget(t, app, "Plan trip", components.ZoneText)
	app.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	msgs := runCmd(app.send(tea.MouseMsg{X: x, Y: y + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}))
	if len(msgs) != 1 {
		t.Fatalf("drag produced %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(components.DragStartedMsg); !ok {
		t.Errorf("drag produced %T", msgs[0])
	}

	// The release after a drag is not a click.
	if cmd := app.send(tea.MouseMsg{X: x, Y: y + 1, Action: tea.MouseActionRelease}); cmd != nil {
		t.Error("release after drag returned a command")
	}
}

func TestApp_QuitKey(t *testing.T) {
	app := newTestApp(t, nil)
	cmd := app.typeKeys("q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestApp_CtrlCQuitsWhileFiltering(t *testing.T) {
	app := newTestApp(t, nil)
	app.typeKeys("/", "r", "e")
	if !app.filtering {
		t.Fatal("filter input not open")
	}

	cmd := app.typeKeys("ctrl+c")
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit from the filter input")
	}
	if got := app.filterInput.Value(); got != "re" {
		t.Errorf("filter value = %q, want %q", got, "re")
	}

	// q is still just text in the filter.
	app.typeKeys("q")
	if got := app.filterInput.Value(); got != "req" {
		t.Errorf("filter value = %q, want %q", got, "req")
	}
}

func TestNewApp_InvalidFoldKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.FoldKey = "uuid"
	if _, err := NewApp(Options{Config: cfg}); err == nil {
		t.Error("expected error for unknown fold key")
	}
}
