// Package todo holds the todo tree handed to the panel by the extractor,
// plus the pure functions the panel derives from it.
package todo

import (
	"strconv"
	"strings"
)

// Status is the state of a todo item.
type Status int

const (
	StatusUnknown Status = iota
	StatusTodo
	StatusInProgress
	StatusComplete
	StatusCanceled
	StatusDelegated
	StatusAttentionRequired
)

var statusNames = map[Status]string{
	StatusTodo:              "todo",
	StatusInProgress:        "in-progress",
	StatusComplete:          "complete",
	StatusCanceled:          "canceled",
	StatusDelegated:         "delegated",
	StatusAttentionRequired: "attention-required",
}

// String returns the canonical name of the status, or "" when unknown.
func (s Status) String() string {
	return statusNames[s]
}

// Closed reports whether the item no longer needs work.
func (s Status) Closed() bool {
	return s == StatusComplete || s == StatusCanceled
}

// ParseStatus maps a status name to a Status.
// Unrecognised names yield StatusUnknown and ok=false.
func ParseStatus(name string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "todo":
		return StatusTodo, true
	case "in-progress", "inprogress", "in_progress":
		return StatusInProgress, true
	case "complete", "completed", "done":
		return StatusComplete, true
	case "canceled", "cancelled":
		return StatusCanceled, true
	case "delegated":
		return StatusDelegated, true
	case "attention-required", "attention", "attention_required":
		return StatusAttentionRequired, true
	}
	return StatusUnknown, false
}

// Value is an attribute value: either a string or a boolean.
type Value struct {
	str    string
	b      bool
	isBool bool
}

// String returns a string-valued attribute.
func String(s string) Value { return Value{str: s} }

// Bool returns a boolean-valued attribute.
func Bool(b bool) Value { return Value{b: b, isBool: true} }

// IsBool reports whether the value holds a boolean.
func (v Value) IsBool() bool { return v.isBool }

// Truthy is false for false and the empty string.
func (v Value) Truthy() bool {
	if v.isBool {
		return v.b
	}
	return v.str != ""
}

// String renders the value the way it was written.
func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.b)
	}
	return v.str
}

// Attributes are the key/value pairs attached to an item.
type Attributes map[string]Value

// File is the note an item was extracted from.
type File struct {
	ID   string // stable identifier from the extractor
	Path string // filesystem path used to open the note
}

// Item is one todo and its nested subtasks.
type Item struct {
	Status     Status
	Text       string
	Attributes Attributes
	Subtasks   []Item
	File       File
	Line       int // zero-based source line
}

// Attr returns the named attribute and whether it is set.
func (i Item) Attr(name string) (Value, bool) {
	if i.Attributes == nil {
		return Value{}, false
	}
	v, ok := i.Attributes[name]
	return v, ok
}

// HasSubtasks reports whether the item has children.
func (i Item) HasSubtasks() bool {
	return len(i.Subtasks) > 0
}

// Walk visits items depth first. Returning false from fn skips the subtree.
func Walk(items []Item, fn func(item Item) bool) {
	for _, item := range items {
		if fn(item) {
			Walk(item.Subtasks, fn)
		}
	}
}
