// Package components renders the todo tree into rows for the panel.
package components

// Renderer is a node of the rendered tree. Each node writes its visible
// rows into a Container and releases its subscriptions on Close.
type Renderer interface {
	// Render appends the node's rows at the given nesting depth.
	Render(c *Container, depth int)

	// Close detaches the node and its subtree from the filter bus.
	Close()
}

var (
	_ Renderer = (*ItemRenderer)(nil)
	_ Renderer = (*ListRenderer)(nil)
)
