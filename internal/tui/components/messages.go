package components

import (
	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	tea "github.com/charmbracelet/bubbletea"
)

// TodoItemDragType labels drag payloads so other drop targets can
// recognise a todo item.
const TodoItemDragType = "pw/todo-item"

// Events is the host callback bundle. Every member is optional; a nil
// member disables the matching affordance on each row.
type Events struct {
	// OpenFile jumps to the source location of an item.
	OpenFile func(file todo.File, line int) tea.Cmd

	// OnCheckboxClicked is called when the status icon is clicked.
	// The returned command runs asynchronously and is not awaited.
	OnCheckboxClicked func(item todo.Item) tea.Cmd

	// OnDrag is called when an item is picked up.
	OnDrag func(id string, item *ItemRenderer) tea.Cmd

	// OnFilter delivers visibility predicates to rendered items.
	OnFilter *FilterBus
}

// DragStartedMsg reports the item picked up by a drag.
type DragStartedMsg struct {
	Type string
	ID   string
	Item todo.Item
}
