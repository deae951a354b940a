package tui

import (
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/components"
)

// hostEvents wires the renderer callbacks to the editor, the store and
// the clipboard.
func (a *App) hostEvents() *components.Events {
	events := &components.Events{
		OpenFile: a.openFile,
		OnDrag:   a.startDrag,
		OnFilter: a.bus,
	}
	if a.store != nil {
		events.OnCheckboxClicked = a.toggleCheckbox
	}
	return events
}

// editorCommand builds `editor +line path` for a zero-based line.
func (a *App) editorCommand(file todo.File, line int) (*exec.Cmd, error) {
	args := strings.Fields(a.config.EditorCommand())
	if len(args) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}
	path := file.Path
	if path == "" {
		path = file.ID
	}
	args = append(args, fmt.Sprintf("+%d", line+1), path)
	return exec.Command(args[0], args[1:]...), nil
}

// openFile suspends the panel and opens the note in the editor.
func (a *App) openFile(file todo.File, line int) tea.Cmd {
	cmd, err := a.editorCommand(file, line)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	a.logger.Debug("Opening note", "path", cmd.Args[len(cmd.Args)-1], "line", line)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err}
	})
}

// toggleCheckbox flips the item between open and complete in the store.
func (a *App) toggleCheckbox(item todo.Item) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		items, err := store.ToggleStatus(item)
		if err != nil {
			return errMsg{err}
		}
		return TodosChangedMsg{Items: items}
	}
}

// startDrag copies the drag payload to the clipboard so the item can be
// dropped into another application.
func (a *App) startDrag(id string, r *components.ItemRenderer) tea.Cmd {
	item := r.Item()
	write := a.clipboard
	return func() tea.Msg {
		payload := components.TodoItemDragType + "\n" + id
		if err := write(payload); err != nil {
			return errMsg{fmt.Errorf("failed to copy %q to clipboard: %w", item.Text, err)}
		}
		return components.DragStartedMsg{
			Type: components.TodoItemDragType,
			ID:   id,
			Item: item,
		}
	}
}
