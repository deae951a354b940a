// Package source loads the todo tree produced by the extractor and keeps
// it in memory for the panel.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/RobTranquillo/obsidian-pw/internal/todo"
	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk document written by the extractor.
//
//	files:
//	  - id: notes/today.md
//	    path: /home/me/notes/today.md
//	    todos:
//	      - status: todo
//	        text: Write report
//	        line: 12
//	        attributes: {priority: high, due: 2026-10-01, selected: true}
//	        subtasks: [...]
type Snapshot struct {
	Files []FileDoc `yaml:"files" json:"files" toml:"files"`
}

// FileDoc is one note and its top-level todos.
type FileDoc struct {
	ID    string    `yaml:"id" json:"id" toml:"id"`
	Path  string    `yaml:"path" json:"path" toml:"path"`
	Todos []ItemDoc `yaml:"todos" json:"todos" toml:"todos"`
}

// ItemDoc is one todo as written in the snapshot.
type ItemDoc struct {
	Status     string    `yaml:"status" json:"status" toml:"status"`
	Text       string    `yaml:"text" json:"text" toml:"text"`
	Line       int       `yaml:"line" json:"line" toml:"line"`
	Attributes AttrMap   `yaml:"attributes,omitempty" json:"attributes,omitempty" toml:"attributes,omitempty"`
	Subtasks   []ItemDoc `yaml:"subtasks,omitempty" json:"subtasks,omitempty" toml:"subtasks,omitempty"`
}

// AttrMap holds the raw attribute values of one todo.
type AttrMap map[string]any

// UnmarshalYAML keeps timestamp scalars as written. yaml.v3 would
// otherwise resolve a bare 2026-10-01 to UTC midnight, while a date
// without a zone means local midnight.
func (m *AttrMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", node.Line)
	}
	attrs := make(AttrMap, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind == yaml.ScalarNode && v.ShortTag() == "!!timestamp" {
			attrs[k.Value] = v.Value
			continue
		}
		var value any
		if err := v.Decode(&value); err != nil {
			return err
		}
		attrs[k.Value] = value
	}
	*m = attrs
	return nil
}

// Format is a snapshot encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
}

// Decode parses snapshot data in the given format.
func Decode(data []byte, format Format) (*Snapshot, error) {
	var snap Snapshot
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	case FormatJSON:
		err = json.Unmarshal(data, &snap)
	case FormatTOML:
		err = toml.Unmarshal(data, &snap)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s snapshot: %w", format, err)
	}
	return &snap, nil
}

// ReadFile loads and decodes the snapshot at path.
func ReadFile(path string) (*Snapshot, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data, format)
}

// Items converts the snapshot into the todo tree, in file order.
// Unknown statuses are logged and kept as todo.StatusUnknown.
func (s *Snapshot) Items(logger *log.Logger) []todo.Item {
	var items []todo.Item
	for _, f := range s.Files {
		file := todo.File{ID: f.ID, Path: f.Path}
		if file.ID == "" {
			file.ID = f.Path
		}
		for _, doc := range f.Todos {
			items = append(items, doc.item(file, logger))
		}
	}
	return items
}

func (d ItemDoc) item(file todo.File, logger *log.Logger) todo.Item {
	status, ok := todo.ParseStatus(d.Status)
	if !ok && logger != nil {
		logger.Warn("Unknown todo status", "status", d.Status, "file", file.ID, "line", d.Line)
	}

	item := todo.Item{
		Status: status,
		Text:   d.Text,
		File:   file,
		Line:   d.Line,
	}
	if len(d.Attributes) > 0 {
		item.Attributes = make(todo.Attributes, len(d.Attributes))
		for k, v := range d.Attributes {
			item.Attributes[k] = attrValue(v)
		}
	}
	for _, sub := range d.Subtasks {
		item.Subtasks = append(item.Subtasks, sub.item(file, logger))
	}
	return item
}

// attrValue narrows a decoded scalar to a string or bool attribute.
func attrValue(v any) todo.Value {
	switch v := v.(type) {
	case bool:
		return todo.Bool(v)
	case string:
		return todo.String(v)
	case nil:
		return todo.String("")
	case time.Time:
		// TOML local dates and times carry a "*-local" placeholder zone.
		local := strings.HasSuffix(v.Location().String(), "-local")
		switch {
		case local && v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0:
			return todo.String(v.Format("2006-01-02"))
		case local:
			return todo.String(v.Format("2006-01-02T15:04:05"))
		}
		return todo.String(v.Format(time.RFC3339))
	case fmt.Stringer:
		return todo.String(v.String())
	default:
		return todo.String(fmt.Sprint(v))
	}
}
