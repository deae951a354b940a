package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/RobTranquillo/obsidian-pw/internal/todo"
)

const (
	notificationTitle = "pwtodo"

	// More due items than this in one check are reported as a single summary.
	maxNotifications = 3
)

type checkDueMsg time.Time

func checkDueCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return checkDueMsg(t)
	})
}

// dueNotifier sends one desktop notification per item key and session.
type dueNotifier struct {
	notify   func(title, message string) error
	logger   *log.Logger
	notified map[todo.Key]bool
}

func newDueNotifier(notify func(title, message string) error, logger *log.Logger) *dueNotifier {
	return &dueNotifier{
		notify:   notify,
		logger:   logger,
		notified: make(map[todo.Key]bool),
	}
}

// check collects items that became due since the last check and returns
// the command that notifies about them.
func (n *dueNotifier) check(items []todo.Item, now time.Time, keyOf todo.KeyFunc) tea.Cmd {
	var fresh []string
	todo.Walk(items, func(item todo.Item) bool {
		key := keyOf(item)
		// Bad dates were already logged when the list was built.
		if n.notified[key] || !todo.IsDue(item, now, nil) {
			return true
		}
		n.notified[key] = true
		fresh = append(fresh, item.Text)
		return true
	})
	if len(fresh) == 0 {
		return nil
	}

	n.logger.Debug("Due todos", "count", len(fresh), "at", now)

	messages := make([]string, 0, len(fresh))
	if len(fresh) > maxNotifications {
		messages = append(messages, fmt.Sprintf("%d todos are due", len(fresh)))
	} else {
		for _, text := range fresh {
			messages = append(messages, "Due: "+text)
		}
	}

	notify := n.notify
	cmds := make([]tea.Cmd, 0, len(messages))
	for _, msg := range messages {
		cmds = append(cmds, func() tea.Msg {
			if err := notify(notificationTitle, msg); err != nil {
				return errMsg{fmt.Errorf("failed to send notification: %w", err)}
			}
			return statusMsg{msg}
		})
	}
	return tea.Batch(cmds...)
}
