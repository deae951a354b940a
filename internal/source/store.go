package source

import (
	"fmt"
	"sync"

	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/charmbracelet/log"
)

// Store holds the latest todo tree read from a snapshot file.
// Toggles are applied in memory only; the next reload replaces them.
type Store struct {
	path   string
	logger *log.Logger

	mu    sync.RWMutex
	items []todo.Item
}

// NewStore returns a store for the snapshot at path.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the snapshot path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot and replaces the tree.
// On error the previous tree is kept.
func (s *Store) Load() ([]todo.Item, error) {
	snap, err := ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.path, err)
	}
	items := snap.Items(s.logger)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Debug("Loaded snapshot", "path", s.path, "todos", len(items))
	return items, nil
}

// Items returns the current tree.
func (s *Store) Items() []todo.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// NextStatus is the status a checkbox click moves an item to.
func NextStatus(s todo.Status) todo.Status {
	if s.Closed() {
		return todo.StatusTodo
	}
	return todo.StatusComplete
}

// ToggleStatus flips the checkbox of the item matching target by file,
// line and text. The tree is copied along the path to the item, so trees
// handed out earlier are not modified.
func (s *Store) ToggleStatus(target todo.Item) ([]todo.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := toggle(s.items, target)
	if !ok {
		return nil, fmt.Errorf("todo %q not found in %s", target.Text, target.File.ID)
	}
	s.items = items
	return items, nil
}

func sameItem(a, b todo.Item) bool {
	return a.File.ID == b.File.ID && a.Line == b.Line && a.Text == b.Text
}

func toggle(items []todo.Item, target todo.Item) ([]todo.Item, bool) {
	for i, item := range items {
		if sameItem(item, target) {
			out := append([]todo.Item(nil), items...)
			out[i].Status = NextStatus(item.Status)
			return out, true
		}
		if subs, ok := toggle(item.Subtasks, target); ok {
			out := append([]todo.Item(nil), items...)
			out[i].Subtasks = subs
			return out, true
		}
	}
	return items, false
}
