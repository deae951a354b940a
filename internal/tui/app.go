// Package tui provides the terminal todo panel.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"

	"github.com/RobTranquillo/obsidian-pw/internal/config"
	"github.com/RobTranquillo/obsidian-pw/internal/source"
	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/components"
	"github.com/RobTranquillo/obsidian-pw/internal/tui/styles"
)

// Layout offsets used to map mouse coordinates onto rows.
const (
	headerHeight = 2 // title and filter line
	appPadding   = 1 // horizontal padding of styles.App
	gutterWidth  = 2 // cursor marker column
)

// Options configures a new App.
type Options struct {
	Config *config.Config
	Store  *source.Store
	Logger *log.Logger

	// Changes signals that the snapshot changed on disk. Nil disables
	// live reload.
	Changes <-chan struct{}

	// Clock, Notify and Clipboard default to the real implementations.
	Clock     func() time.Time
	Notify    func(title, message string) error
	Clipboard func(text string) error
}

// App is the main Bubble Tea model for the panel.
type App struct {
	// Dependencies
	config    *config.Config
	store     *source.Store
	logger    *log.Logger
	changes   <-chan struct{}
	clipboard func(text string) error

	// Rendering state
	state  *components.UIState
	bus    *components.FilterBus
	events *components.Events
	list   *components.ListRenderer
	rows   components.Container
	items  []todo.Item

	// List state
	cursor   int   // index into itemRows
	itemRows []int // row indices that carry an item
	dragKey  todo.Key
	press    *mousePress

	// Components
	viewport    viewport.Model
	filterInput textinput.Model
	help        help.Model
	keys        KeyMap
	notifier    *dueNotifier

	// UI state
	ready     bool
	filtering bool
	query     string
	statusMsg string
	statusErr bool
	width     int
	height    int
}

// mousePress remembers where the left button went down.
type mousePress struct {
	line    int
	zone    components.Zone
	dragged bool
}

// NewApp creates a new App instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	keyFunc, err := todo.KeyFuncByName(cfg.UI.FoldKey)
	if err != nil {
		return nil, err
	}

	stateOpts := []components.StateOption{
		components.WithKeyFunc(keyFunc),
		components.WithLogger(logger),
	}
	if opts.Clock != nil {
		stateOpts = append(stateOpts, components.WithClock(opts.Clock))
	}

	notify := opts.Notify
	if notify == nil {
		notify = func(title, message string) error {
			return beeep.Notify(title, message, "")
		}
	}
	write := opts.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}

	filterInput := textinput.New()
	filterInput.Prompt = styles.FilterPrompt.Render("/")
	filterInput.Placeholder = "text, key:value, is:status, @key"
	filterInput.CharLimit = 200

	a := &App{
		config:      cfg,
		store:       opts.Store,
		logger:      logger,
		changes:     opts.Changes,
		clipboard:   write,
		state:       components.NewUIState(stateOpts...),
		bus:         components.NewFilterBus(),
		viewport:    viewport.New(0, 0),
		filterInput: filterInput,
		help:        help.New(),
		keys:        DefaultKeyMap(),
	}
	a.viewport.MouseWheelEnabled = true
	a.events = a.hostEvents()
	if cfg.Notifications.Enabled {
		a.notifier = newDueNotifier(notify, logger)
	}
	a.list = components.NewListRenderer(a.events, a.state, nil)
	return a, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadTodos(), a.waitForChange()}
	if a.notifier != nil {
		cmds = append(cmds, checkDueCmd())
	}
	return tea.Batch(cmds...)
}

// loadTodos reads the snapshot through the store.
func (a *App) loadTodos() tea.Cmd {
	store := a.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := store.Load()
		if err != nil {
			return errMsg{err}
		}
		return TodosChangedMsg{Items: items}
	}
}

// waitForChange blocks until the watcher reports a snapshot change.
func (a *App) waitForChange() tea.Cmd {
	ch := a.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sourceChangedMsg{}
	}
}

// setItems replaces the rendered tree. Fold state survives because it
// lives in UIState, not in the renderers.
func (a *App) setItems(items []todo.Item) {
	a.items = items
	visible := items
	if a.config.UI.HideCompleted {
		visible = todo.Open(items)
	}

	key, line := a.cursorAnchor()
	a.list.Close()
	a.list = components.NewListRenderer(a.events, a.state, visible)
	a.render()
	a.restoreCursor(key, line)
}

// toggleFold flips item and rebuilds the list so every copy of the item,
// in any section, picks up the shared fold state.
func (a *App) toggleFold(item *components.ItemRenderer) {
	item.ToggleFold()
	a.setItems(a.items)
}

// Items returns the tree currently shown.
func (a *App) Items() []todo.Item {
	return a.items
}

// publishFilter sends the parsed query to every rendered item.
func (a *App) publishFilter(query string) {
	if query == a.query {
		return
	}
	a.query = query
	key, line := a.cursorAnchor()
	a.bus.Publish(todo.ParseQuery(query))
	a.render()
	a.restoreCursor(key, line)
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusErr = isErr
}

// Message types

// TodosChangedMsg carries a freshly loaded or modified todo tree.
type TodosChangedMsg struct {
	Items []todo.Item
}

type sourceChangedMsg struct{}
type errMsg struct{ err error }
type statusMsg struct{ msg string }
type editorFinishedMsg struct{ err error }
