package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/components"
)

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width - 2*appPadding
		a.ready = true
		a.resize()
		return a, nil

	case TodosChangedMsg:
		a.setItems(msg.Items)
		return a, nil

	case sourceChangedMsg:
		a.logger.Debug("Snapshot changed on disk")
		return a, tea.Batch(a.loadTodos(), a.waitForChange())

	case errMsg:
		a.logger.Error("Command failed", "err", msg.err)
		a.setStatus(msg.err.Error(), true)
		return a, nil

	case statusMsg:
		a.setStatus(msg.msg, false)
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.logger.Error("Editor exited with error", "err", msg.err)
			a.setStatus(fmt.Sprintf("Editor: %v", msg.err), true)
		}
		return a, nil

	case components.DragStartedMsg:
		a.dragKey = todo.Key(msg.ID)
		a.setStatus(fmt.Sprintf("Copied %q for dropping", msg.Item.Text), false)
		a.refresh()
		return a, nil

	case checkDueMsg:
		cmds := []tea.Cmd{checkDueCmd()}
		if a.notifier != nil {
			cmds = append(cmds, a.notifier.check(a.items, time.Time(msg), a.state.Key))
		}
		return a, tea.Batch(cmds...)
	}

	if a.filtering {
		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filtering {
		return a.handleFilterKey(msg)
	}

	// Clear a status message on the next key press.
	a.statusMsg = ""

	switch {
	case key.Matches(msg, a.keys.Quit), key.Matches(msg, a.keys.ForceQuit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.resize()

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.Top):
		a.moveCursor(-len(a.itemRows))
	case key.Matches(msg, a.keys.Bottom):
		a.moveCursor(len(a.itemRows))

	case key.Matches(msg, a.keys.Toggle):
		if item := a.selected(); item != nil && item.Item().HasSubtasks() {
			a.toggleFold(item)
		}

	case key.Matches(msg, a.keys.Expand):
		if item := a.selected(); item != nil && item.Item().HasSubtasks() && !item.Expanded() {
			a.toggleFold(item)
		}

	case key.Matches(msg, a.keys.Collapse):
		item := a.selected()
		if item == nil {
			break
		}
		if item.Expanded() {
			a.toggleFold(item)
		} else {
			a.selectParent()
		}

	case key.Matches(msg, a.keys.Check):
		if item := a.selected(); item != nil {
			return a, item.ClickCheckbox()
		}

	case key.Matches(msg, a.keys.Open):
		if item := a.selected(); item != nil {
			return a, item.ClickText()
		}

	case key.Matches(msg, a.keys.Drag):
		if item := a.selected(); item != nil {
			return a, item.DragStart()
		}

	case key.Matches(msg, a.keys.Filter):
		a.filtering = true
		a.filterInput.SetValue(a.query)
		a.filterInput.CursorEnd()
		return a, a.filterInput.Focus()

	case key.Matches(msg, a.keys.ClearFilter):
		a.filterInput.SetValue("")
		a.publishFilter("")

	case key.Matches(msg, a.keys.Reload):
		a.setStatus("Reloading…", false)
		return a, a.loadTodos()
	}

	return a, nil
}

// handleFilterKey edits the filter query; every edit is published live.
func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.ClearFilter):
		a.filtering = false
		a.filterInput.Blur()
		a.filterInput.SetValue("")
		a.publishFilter("")
		return a, nil

	case key.Matches(msg, a.keys.ApplyFilter):
		a.filtering = false
		a.filterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.publishFilter(a.filterInput.Value())
	return a, cmd
}

func (a *App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	line, ok := a.lineAt(msg.Y)
	if !ok {
		if msg.Action == tea.MouseActionRelease {
			a.press = nil
		}
		return a, nil
	}
	row := a.rows.Rows()[line]
	zone := row.ZoneAt(msg.X - appPadding - gutterWidth)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		a.press = &mousePress{line: line, zone: zone}
		if row.Item != nil {
			a.selectLine(line)
		}

	case tea.MouseActionMotion:
		p := a.press
		if p == nil || p.dragged || msg.Button != tea.MouseButtonLeft || line == p.line || p.line >= a.rows.Len() {
			return a, nil
		}
		// Dragging off the pressed row picks the item up.
		item := a.rows.Rows()[p.line].Item
		if item == nil || p.zone == components.ZoneNone || !item.Draggable() {
			return a, nil
		}
		p.dragged = true
		return a, item.DragStart()

	case tea.MouseActionRelease:
		p := a.press
		a.press = nil
		if p == nil || p.dragged || p.line != line || p.zone != zone || row.Item == nil {
			return a, nil
		}
		return a, a.click(row.Item, zone)
	}

	return a, nil
}

// click dispatches a completed click on one of the row zones.
func (a *App) click(item *components.ItemRenderer, zone components.Zone) tea.Cmd {
	switch zone {
	case components.ZoneCheckbox:
		return item.ClickCheckbox()
	case components.ZoneText:
		return item.ClickText()
	case components.ZoneFold:
		if item.Item().HasSubtasks() {
			a.toggleFold(item)
		}
	}
	return nil
}
