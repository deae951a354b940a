package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/RobTranquillo/obsidian-pw/internal/config"
	"github.com/RobTranquillo/obsidian-pw/internal/todo"
)

func dueItem(text, due string, status todo.Status) todo.Item {
	return todo.Item{
		Status:     status,
		Text:       text,
		File:       todo.File{ID: "notes/today.md"},
		Attributes: todo.Attributes{"due": todo.String(due)},
	}
}

func TestDueNotifier_Check(t *testing.T) {
	tests := []struct {
		name  string
		items []todo.Item
		want  []string
	}{
		{
			name:  "past due notifies",
			items: []todo.Item{dueItem("Pay rent", "2026-10-01", todo.StatusTodo)},
			want:  []string{"Due: Pay rent"},
		},
		{
			name:  "future due is quiet",
			items: []todo.Item{dueItem("Renew passport", "2027-01-01", todo.StatusTodo)},
		},
		{
			name:  "closed item is quiet",
			items: []todo.Item{dueItem("Pay rent", "2026-10-01", todo.StatusComplete)},
		},
		{
			name: "nested subtask notifies",
			items: []todo.Item{{
				Text:     "Taxes",
				File:     todo.File{ID: "notes/today.md"},
				Subtasks: []todo.Item{dueItem("File return", "2026-10-15T09:00", todo.StatusInProgress)},
			}},
			want: []string{"Due: File return"},
		},
		{
			name: "many items are summarised",
			items: []todo.Item{
				dueItem("one", "2026-10-01", todo.StatusTodo),
				dueItem("two", "2026-10-02", todo.StatusTodo),
				dueItem("three", "2026-10-03", todo.StatusTodo),
				dueItem("four", "2026-10-04", todo.StatusTodo),
			},
			want: []string{"4 todos are due"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent []string
			n := newDueNotifier(func(title, message string) error {
				sent = append(sent, message)
				return nil
			}, log.New(&strings.Builder{}))

			msgs := runCmd(n.check(tt.items, testNow, todo.TextKey))
			if fmt.Sprint(sent) != fmt.Sprint(tt.want) {
				t.Errorf("sent %q, want %q", sent, tt.want)
			}
			if len(msgs) != len(tt.want) {
				t.Errorf("got %d messages, want %d", len(msgs), len(tt.want))
			}

			// A second check in the same session stays quiet.
			sent = nil
			if cmd := n.check(tt.items, testNow.Add(time.Minute), todo.TextKey); cmd != nil {
				runCmd(cmd)
			}
			if len(sent) != 0 {
				t.Errorf("second check sent %q", sent)
			}
		})
	}
}

func TestDueNotifier_Error(t *testing.T) {
	n := newDueNotifier(func(string, string) error {
		return errors.New("no notification daemon")
	}, log.New(&strings.Builder{}))

	msgs := runCmd(n.check([]todo.Item{dueItem("Pay rent", "2026-10-01", todo.StatusTodo)}, testNow, todo.TextKey))
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(errMsg); !ok {
		t.Errorf("got %T, want errMsg", msgs[0])
	}
}

func TestDueNotifier_UnparseableDateIsQuiet(t *testing.T) {
	var logs strings.Builder
	var sent []string
	n := newDueNotifier(func(_, message string) error {
		sent = append(sent, message)
		return nil
	}, log.New(&logs))

	items := []todo.Item{dueItem("Someday", "after the holidays", todo.StatusTodo)}
	for i := 0; i < 2; i++ {
		if cmd := n.check(items, testNow.Add(time.Duration(i)*time.Minute), todo.TextKey); cmd != nil {
			runCmd(cmd)
		}
	}
	if len(sent) != 0 {
		t.Errorf("sent %q for an unparseable date", sent)
	}
	if logs.Len() != 0 {
		t.Errorf("check logged %q, want nothing", logs.String())
	}
}

func TestApp_CheckDueNotifies(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.Notifications.Enabled = true })

	cmd := app.send(checkDueMsg(testNow))
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("check did not batch the next tick with notifications")
	}
	// Skip the tick, which would wait a minute.
	for _, c := range batch[1:] {
		for _, msg := range runCmd(c) {
			app.send(msg)
		}
	}

	if len(app.notified) != 1 || app.notified[0] != "Due: Pay rent" {
		t.Errorf("notified %q, want [Due: Pay rent]", app.notified)
	}
	if !strings.Contains(app.View(), "Due: Pay rent") {
		t.Error("notification not echoed on the status line")
	}
}

func TestApp_NotificationsDisabled(t *testing.T) {
	app := newTestApp(t, nil)
	if app.notifier != nil {
		t.Fatal("notifier created while notifications are disabled")
	}
	app.send(checkDueMsg(testNow))
	if len(app.notified) != 0 {
		t.Errorf("notified %q with notifications disabled", app.notified)
	}
}
