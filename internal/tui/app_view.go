package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/components"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/styles"
)

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	parts := []string{
		a.renderTitle(),
		a.renderFilterLine(),
		a.viewport.View(),
		a.renderStatusBar(),
		a.help.View(a.keys),
	}
	return styles.App.Render(strings.Join(parts, "\n"))
}

func (a *App) renderTitle() string {
	title := styles.Title.Render("Todos")
	if a.store != nil {
		title += " " + styles.SectionEmpty.Render(a.store.Path())
	}
	return a.truncate(title)
}

func (a *App) renderFilterLine() string {
	switch {
	case a.filtering:
		return a.truncate(a.filterInput.View())
	case a.query != "":
		return a.truncate(styles.FilterActive.Render("filter: " + a.query))
	}
	return ""
}

func (a *App) renderStatusBar() string {
	if a.statusMsg != "" {
		if a.statusErr {
			return a.truncate(styles.StatusBarError.Render(a.statusMsg))
		}
		return a.truncate(styles.StatusBarSuccess.Render(a.statusMsg))
	}

	open, due := 0, 0
	now := a.state.Now()
	todo.Walk(a.items, func(item todo.Item) bool {
		if !item.Status.Closed() {
			open++
		}
		if todo.IsDue(item, now, nil) {
			due++
		}
		return true
	})
	return a.truncate(styles.StatusBar.Render(fmt.Sprintf("%d open · %d due", open, due)))
}

// resize fits the viewport between the header and the footer.
func (a *App) resize() {
	footer := 1 + lipgloss.Height(a.help.View(a.keys))
	height := a.height - headerHeight - footer
	if height < 1 {
		height = 1
	}
	width := a.width - 2*appPadding
	if width < 1 {
		width = 1
	}
	a.viewport.Width = width
	a.viewport.Height = height
	a.refresh()
}

// render rebuilds the rows from the renderer tree.
func (a *App) render() {
	a.rows.Reset()
	a.list.Render(&a.rows, 0)
	a.itemRows = a.rows.ItemRows()
	if a.cursor >= len(a.itemRows) {
		a.cursor = len(a.itemRows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.refresh()
}

// refresh redraws the viewport content from the current rows.
func (a *App) refresh() {
	cursorLine := -1
	if len(a.itemRows) > 0 {
		cursorLine = a.itemRows[a.cursor]
	}

	rows := a.rows.Rows()
	lines := make([]string, len(rows))
	for i, row := range rows {
		gutter := strings.Repeat(" ", gutterWidth)
		switch {
		case i == cursorLine:
			gutter = styles.CursorRow.Render(">") + " "
		case row.Item != nil && a.dragKey != "" && row.Item.Key() == a.dragKey:
			gutter = styles.DragSource.Render("*") + " "
		}
		lines[i] = a.truncate(gutter + row.Content)
	}
	a.viewport.SetContent(strings.Join(lines, "\n"))
	a.syncViewportToCursor()
}

// truncate cuts a styled line to the content width.
func (a *App) truncate(s string) string {
	width := a.width - 2*appPadding
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// syncViewportToCursor scrolls so the cursor row is visible.
func (a *App) syncViewportToCursor() {
	if len(a.itemRows) == 0 || a.viewport.Height <= 0 {
		return
	}
	line := a.itemRows[a.cursor]
	if a.cursor == 0 && line < a.viewport.Height {
		// Keep the first section header in view.
		a.viewport.SetYOffset(0)
		return
	}
	if line < a.viewport.YOffset {
		a.viewport.SetYOffset(line)
	} else if line >= a.viewport.YOffset+a.viewport.Height {
		a.viewport.SetYOffset(line - a.viewport.Height + 1)
	}
}

// lineAt maps a screen row to a row index.
func (a *App) lineAt(y int) (int, bool) {
	y -= headerHeight
	if y < 0 || y >= a.viewport.Height {
		return 0, false
	}
	line := y + a.viewport.YOffset
	if line >= a.rows.Len() {
		return 0, false
	}
	return line, true
}

// selected returns the item under the cursor.
func (a *App) selected() *components.ItemRenderer {
	if len(a.itemRows) == 0 {
		return nil
	}
	return a.rows.Rows()[a.itemRows[a.cursor]].Item
}

func (a *App) moveCursor(delta int) {
	if len(a.itemRows) == 0 {
		return
	}
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= len(a.itemRows) {
		a.cursor = len(a.itemRows) - 1
	}
	a.refresh()
}

// selectLine puts the cursor on the item at row index line.
func (a *App) selectLine(line int) {
	for i, l := range a.itemRows {
		if l == line {
			a.cursor = i
			a.refresh()
			return
		}
	}
}

// selectParent moves the cursor to the closest row above with a smaller
// depth.
func (a *App) selectParent() {
	if len(a.itemRows) == 0 {
		return
	}
	rows := a.rows.Rows()
	current := rows[a.itemRows[a.cursor]]
	for i := a.cursor - 1; i >= 0; i-- {
		if rows[a.itemRows[i]].Depth < current.Depth {
			a.cursor = i
			a.refresh()
			return
		}
	}
}

// cursorAnchor returns the key and row index under the cursor so the
// cursor can follow its item across a rebuild.
func (a *App) cursorAnchor() (todo.Key, int) {
	item := a.selected()
	if item == nil {
		return "", 0
	}
	return item.Key(), a.itemRows[a.cursor]
}

// restoreCursor moves the cursor to the row with key closest to line.
// Keys can repeat across sections, hence the distance check.
func (a *App) restoreCursor(key todo.Key, line int) {
	if key == "" {
		return
	}
	rows := a.rows.Rows()
	best, bestDist := -1, 0
	for i, l := range a.itemRows {
		if rows[l].Item.Key() != key {
			continue
		}
		dist := l - line
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best >= 0 {
		a.cursor = best
		a.refresh()
	}
}
