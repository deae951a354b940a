package components

import "github.com/RobTranquillo/obsidian-pw/internal/todo"

// FilterBus broadcasts visibility predicates to rendered items.
// A nil filter shows everything.
type FilterBus struct {
	listeners map[int]func(todo.Filter)
	nextID    int
	current   todo.Filter
}

// NewFilterBus returns a bus with no filter applied.
func NewFilterBus() *FilterBus {
	return &FilterBus{listeners: make(map[int]func(todo.Filter))}
}

// Listen registers fn for future broadcasts. The returned func removes it.
func (b *FilterBus) Listen(fn func(todo.Filter)) (cancel func()) {
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return func() { delete(b.listeners, id) }
}

// Publish stores f as the current filter and hands it to every listener.
func (b *FilterBus) Publish(f todo.Filter) {
	b.current = f
	for _, fn := range b.listeners {
		fn(f)
	}
}

// Current returns the most recently published filter.
func (b *FilterBus) Current() todo.Filter {
	return b.current
}

// Listeners returns the number of registered listeners.
func (b *FilterBus) Listeners() int {
	return len(b.listeners)
}
