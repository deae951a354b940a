// Package styles provides Lip Gloss styles for the todo panel.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for the cursor row
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#AD8CFF"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Base styles
var (
	// App is the base style for the whole panel
	App = lipgloss.NewStyle().
		Padding(0, 1)

	// Title is the panel header
	// NOTE: No margins - they break the row-to-line mapping used for mouse clicks
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// SectionHeader is for the Selected/Due/All titles
	SectionHeader = lipgloss.NewStyle().
			Bold(true)

	// SectionEmpty is the placeholder row of an empty section
	SectionEmpty = lipgloss.NewStyle().
			Foreground(Subtle).
			Faint(true).
			Italic(true)
)

// Row styles.
// NOTE: Row styles must not add horizontal padding; click zones are measured
// on the unstyled text.
var (
	// Checkbox is the status icon
	Checkbox = lipgloss.NewStyle()

	// TodoText is the item text
	TodoText = lipgloss.NewStyle()

	// TodoTextComplete is for complete and canceled items
	TodoTextComplete = lipgloss.NewStyle().
				Faint(true).
				Strikethrough(true)

	// TodoTextDue is for items past their due date
	TodoTextDue = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// FoldAffix is the ▶/▼ toggle
	FoldAffix = lipgloss.NewStyle().
			Foreground(Subtle)

	// CursorRow is the row under the cursor
	CursorRow = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	// DragSource marks the item picked up for a drag
	DragSource = lipgloss.NewStyle().
			Underline(true)
)

// StatusBar styles
var (
	// StatusBar is the base style for the status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"})

	// StatusBarError is for error messages
	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// StatusBarSuccess is for success messages
	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)
)

// Input styles
var (
	// FilterPrompt is the "/" prompt of the filter input
	FilterPrompt = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// FilterActive shows the applied query when the input is closed
	FilterActive = lipgloss.NewStyle().
			Foreground(WarningColor).
			Italic(true)
)
