package todo

// Row glyphs.
const (
	IconComplete          = "✔"
	IconAttentionRequired = "❗"
	IconCanceled          = "❌"
	IconDelegated         = "👬"
	IconInProgress        = "⏩"
	IconTodo              = "⬜"

	IconPriorityCritical = "⚠⚠"
	IconPriorityHigh     = "⚠"
	IconPriorityMedium   = "🔸"
	IconPriorityLow      = "🔽"
	IconPriorityLowest   = "⏬"
)

// priorityAttributes are checked in order; the first one present wins.
var priorityAttributes = []string{"priority", "importance"}

// StatusIcon returns the glyph for a status, or "" for an unknown status.
func StatusIcon(s Status) string {
	switch s {
	case StatusComplete:
		return IconComplete
	case StatusAttentionRequired:
		return IconAttentionRequired
	case StatusCanceled:
		return IconCanceled
	case StatusDelegated:
		return IconDelegated
	case StatusInProgress:
		return IconInProgress
	case StatusTodo:
		return IconTodo
	default:
		return ""
	}
}

// PriorityIcon returns the glyph for the item's priority or importance
// attribute. Missing, boolean or unrecognised values give "".
func PriorityIcon(attrs Attributes) string {
	for _, name := range priorityAttributes {
		v, ok := attrs[name]
		if !ok {
			continue
		}
		if v.IsBool() {
			return ""
		}
		return priorityGlyph(v.String())
	}
	return ""
}

func priorityGlyph(level string) string {
	switch level {
	case "critical":
		return IconPriorityCritical
	case "high":
		return IconPriorityHigh
	case "medium":
		return IconPriorityMedium
	case "low":
		return IconPriorityLow
	case "lowest":
		return IconPriorityLowest
	default:
		return ""
	}
}
