package components

import (
	"strings"

	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// Fold affixes shown after the item text.
const (
	FoldedText   = " ▶"
	UnfoldedText = " ▼"
	noSubtasks   = "  "
	indentUnit   = "  "
)

// ItemRenderer renders one todo row and, while expanded, its subtasks.
type ItemRenderer struct {
	events *Events
	state  *UIState
	todo   todo.Item
	key    todo.Key

	expanded bool
	sub      *ListRenderer // nil while folded
	hidden   bool
	unlisten func()
}

// NewItemRenderer builds the renderer for item. If the shared fold state
// marks the item expanded, its subtasks are expanded once here.
func NewItemRenderer(events *Events, state *UIState, item todo.Item) *ItemRenderer {
	if events == nil {
		events = &Events{}
	}
	r := &ItemRenderer{
		events: events,
		state:  state,
		todo:   item,
		key:    state.Key(item),
	}

	if bus := events.OnFilter; bus != nil {
		r.onFilter(bus.Current())
		r.unlisten = bus.Listen(r.onFilter)
	}

	if state.Expanded(r.key) {
		r.ToggleFold()
	}
	return r
}

func (r *ItemRenderer) onFilter(f todo.Filter) {
	r.hidden = f != nil && !f(r.todo)
}

// Item returns the rendered todo.
func (r *ItemRenderer) Item() todo.Item {
	return r.todo
}

// Key returns the derived identity used for fold state.
func (r *ItemRenderer) Key() todo.Key {
	return r.key
}

// Expanded reports whether the subtasks are shown.
func (r *ItemRenderer) Expanded() bool {
	return r.expanded
}

// Hidden reports whether the current filter hides the item.
func (r *ItemRenderer) Hidden() bool {
	return r.hidden
}

// SubContainer returns the rows currently built for the subtasks.
func (r *ItemRenderer) SubContainer() *Container {
	c := &Container{}
	if r.sub != nil {
		r.sub.Render(c, 0)
	}
	return c
}

// ToggleFold shows or hides the subtasks and records the new state.
// Folding discards the subtask renderers; unfolding rebuilds them.
func (r *ItemRenderer) ToggleFold() {
	if r.expanded {
		if r.sub != nil {
			r.sub.Close()
			r.sub = nil
		}
	} else {
		r.sub = NewSubtaskList(r.events, r.state, r.todo.Subtasks)
	}
	r.expanded = !r.expanded
	r.state.SetExpanded(r.key, r.expanded)
}

// ClickCheckbox hands the item to the checkbox callback.
func (r *ItemRenderer) ClickCheckbox() tea.Cmd {
	if r.events.OnCheckboxClicked == nil {
		return nil
	}
	return r.events.OnCheckboxClicked(r.todo)
}

// ClickText asks the host to open the item's source location.
func (r *ItemRenderer) ClickText() tea.Cmd {
	if r.events.OpenFile == nil {
		return nil
	}
	return r.events.OpenFile(r.todo.File, r.todo.Line)
}

// DragStart hands the item identity to the drag callback.
func (r *ItemRenderer) DragStart() tea.Cmd {
	if r.events.OnDrag == nil {
		return nil
	}
	return r.events.OnDrag(string(r.key), r)
}

// Draggable reports whether drag is wired.
func (r *ItemRenderer) Draggable() bool {
	return r.events.OnDrag != nil
}

// Render implements Renderer.
func (r *ItemRenderer) Render(c *Container, depth int) {
	if r.hidden {
		return
	}

	indent := strings.Repeat(indentUnit, depth)
	checkbox := todo.StatusIcon(r.todo.Status) + " "

	text := r.todo.Text
	if icon := todo.PriorityIcon(r.todo.Attributes); icon != "" {
		text = icon + " " + text
	}

	affix := noSubtasks
	if r.todo.HasSubtasks() {
		affix = FoldedText
		if r.expanded {
			affix = UnfoldedText
		}
	}

	textStyle := styles.TodoText
	if r.todo.Status.Closed() {
		textStyle = styles.TodoTextComplete
	} else if todo.IsDue(r.todo, r.state.Now(), nil) {
		textStyle = styles.TodoTextDue
	}

	start := runewidth.StringWidth(indent)
	checkboxEnd := start + runewidth.StringWidth(checkbox)
	textEnd := checkboxEnd + runewidth.StringWidth(text)
	foldEnd := textEnd + runewidth.StringWidth(affix)

	c.Append(Row{
		Kind:        RowItem,
		Content:     indent + styles.Checkbox.Render(checkbox) + textStyle.Render(text) + styles.FoldAffix.Render(affix),
		Item:        r,
		Depth:       depth,
		start:       start,
		checkboxEnd: checkboxEnd,
		textEnd:     textEnd,
		foldEnd:     foldEnd,
	})

	if r.sub != nil {
		r.sub.Render(c, depth+1)
	}
}

// Close implements Renderer.
func (r *ItemRenderer) Close() {
	if r.unlisten != nil {
		r.unlisten()
		r.unlisten = nil
	}
	if r.sub != nil {
		r.sub.Close()
	}
}
