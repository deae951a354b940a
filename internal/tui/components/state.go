package components

import (
	"time"

	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/charmbracelet/log"
)

// UIState is the view state shared by every renderer of one panel. It is
// owned by the top-level model and lives as long as the session; it is only
// touched from the bubbletea event loop.
type UIState struct {
	fold    map[todo.Key]bool
	keyFunc todo.KeyFunc
	now     func() time.Time
	logger  *log.Logger
}

// StateOption configures a UIState.
type StateOption func(*UIState)

// WithKeyFunc sets how items are identified for fold state.
func WithKeyFunc(fn todo.KeyFunc) StateOption {
	return func(s *UIState) {
		if fn != nil {
			s.keyFunc = fn
		}
	}
}

// WithClock sets the clock used for the Due section.
func WithClock(now func() time.Time) StateOption {
	return func(s *UIState) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used by renderers.
func WithLogger(logger *log.Logger) StateOption {
	return func(s *UIState) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewUIState returns an empty state with text keys and the wall clock.
func NewUIState(opts ...StateOption) *UIState {
	s := &UIState{
		fold:    make(map[todo.Key]bool),
		keyFunc: todo.TextKey,
		now:     time.Now,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key derives the identity of an item.
func (s *UIState) Key(item todo.Item) todo.Key {
	return s.keyFunc(item)
}

// Expanded reports the saved fold state of a key.
func (s *UIState) Expanded(key todo.Key) bool {
	return s.fold[key]
}

// SetExpanded records the fold state of a key.
func (s *UIState) SetExpanded(key todo.Key, expanded bool) {
	s.fold[key] = expanded
}

// Now returns the current time from the configured clock.
func (s *UIState) Now() time.Time {
	return s.now()
}

// Logger returns the renderer logger.
func (s *UIState) Logger() *log.Logger {
	return s.logger
}
