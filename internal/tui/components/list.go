package components

import (
	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/styles"
)

// Section titles of the top-level list.
const (
	SectionSelected = "Selected:"
	SectionDue      = "Due:"
	SectionAll      = "All:"
)

const emptySectionText = "none"

// section is one titled group of rows. Nested lists use a single
// untitled section.
type section struct {
	title string
	items []*ItemRenderer
}

// ListRenderer renders an ordered list of todo rows.
type ListRenderer struct {
	sections []section
}

// NewListRenderer splits items into the Selected, Due and All sections.
// The views are computed once, at construction.
func NewListRenderer(events *Events, state *UIState, items []todo.Item) *ListRenderer {
	selected := todo.Selected(items)
	due := todo.Due(items, state.Now(), state.Logger())

	return &ListRenderer{
		sections: []section{
			{title: SectionSelected, items: newItemRenderers(events, state, selected)},
			{title: SectionDue, items: newItemRenderers(events, state, due)},
			{title: SectionAll, items: newItemRenderers(events, state, items)},
		},
	}
}

// NewSubtaskList renders subtasks as a single untitled section.
func NewSubtaskList(events *Events, state *UIState, items []todo.Item) *ListRenderer {
	return &ListRenderer{
		sections: []section{{items: newItemRenderers(events, state, items)}},
	}
}

func newItemRenderers(events *Events, state *UIState, items []todo.Item) []*ItemRenderer {
	out := make([]*ItemRenderer, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemRenderer(events, state, item))
	}
	return out
}

// Section returns the item renderers of the titled section, or nil.
func (l *ListRenderer) Section(title string) []*ItemRenderer {
	for _, s := range l.sections {
		if s.title == title {
			return s.items
		}
	}
	return nil
}

// Items returns every top-level item renderer in display order.
func (l *ListRenderer) Items() []*ItemRenderer {
	var out []*ItemRenderer
	for _, s := range l.sections {
		out = append(out, s.items...)
	}
	return out
}

// Render implements Renderer.
func (l *ListRenderer) Render(c *Container, depth int) {
	for _, s := range l.sections {
		if s.title == "" {
			for _, item := range s.items {
				item.Render(c, depth)
			}
			continue
		}

		c.Append(Row{Kind: RowHeader, Content: styles.SectionHeader.Render(s.title), Depth: depth})
		before := c.Len()
		for _, item := range s.items {
			item.Render(c, depth)
		}
		if c.Len() == before {
			c.Append(Row{Kind: RowEmpty, Content: styles.SectionEmpty.Render(emptySectionText), Depth: depth})
		}
	}
}

// Close implements Renderer.
func (l *ListRenderer) Close() {
	for _, s := range l.sections {
		for _, item := range s.items {
			item.Close()
		}
	}
}
