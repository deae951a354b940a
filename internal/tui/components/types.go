package components

// RowKind tells item rows apart from decoration.
type RowKind int

const (
	RowItem RowKind = iota
	RowHeader
	RowEmpty
)

// Zone is a clickable part of an item row.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneCheckbox
	ZoneText
	ZoneFold
)

// Row is one display line with an optional item reference.
type Row struct {
	Kind    RowKind
	Content string
	Item    *ItemRenderer // nil for headers and placeholders
	Depth   int

	// Column boundaries, in cells, of the checkbox, text and fold affix.
	// They are relative to the start of Content.
	start       int
	checkboxEnd int
	textEnd     int
	foldEnd     int
}

// ZoneAt returns the clickable zone under column x.
func (r Row) ZoneAt(x int) Zone {
	if r.Item == nil || x < r.start {
		return ZoneNone
	}
	switch {
	case x < r.checkboxEnd:
		return ZoneCheckbox
	case x < r.textEnd:
		return ZoneText
	case x < r.foldEnd:
		return ZoneFold
	}
	return ZoneNone
}

// Container collects rendered rows in display order.
type Container struct {
	rows []Row
}

// Append adds a row.
func (c *Container) Append(r Row) {
	c.rows = append(c.rows, r)
}

// Rows returns the rows in display order.
func (c *Container) Rows() []Row {
	return c.rows
}

// Len returns the number of rows.
func (c *Container) Len() int {
	return len(c.rows)
}

// Reset empties the container.
func (c *Container) Reset() {
	c.rows = c.rows[:0]
}

// ItemRows returns the indices of rows that carry an item.
func (c *Container) ItemRows() []int {
	var out []int
	for i, r := range c.rows {
		if r.Item != nil {
			out = append(out, i)
		}
	}
	return out
}
