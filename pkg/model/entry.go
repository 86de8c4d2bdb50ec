package model

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Group is an ordered set of fields rendered side by side in one row.
type Group []Field

// Key joins the members' keys (ID, falling back to Name) with "-".
func (g Group) Key() string {
	parts := make([]string, 0, len(g))
	for _, f := range g {
		parts = append(parts, f.Key())
	}
	return strings.Join(parts, "-")
}

// Entry is one element of a form's field list: either a single field or a
// row group.
type Entry struct {
	field *Field
	group Group
}

// Single wraps a field as a top-level entry.
func Single(f Field) Entry {
	return Entry{field: &f}
}

// Row wraps fields as a row group entry.
func Row(fields ...Field) Entry {
	return Entry{group: append(Group{}, fields...)}
}

// Entries builds a list of single entries.
func Entries(fields ...Field) []Entry {
	out := make([]Entry, 0, len(fields))
	for _, f := range fields {
		out = append(out, Single(f))
	}
	return out
}

// IsGroup reports whether the entry is a row group.
func (e Entry) IsGroup() bool {
	return e.field == nil && e.group != nil
}

// Field returns the wrapped field of a single entry.
func (e Entry) Field() (Field, bool) {
	if e.field == nil {
		return Field{}, false
	}
	return *e.field, true
}

// Group returns the members of a row group.
func (e Entry) Group() Group {
	return e.group
}

// Fields returns the field of a single entry or the members of a group.
func (e Entry) Fields() []Field {
	if e.field != nil {
		return []Field{*e.field}
	}
	return append([]Field(nil), e.group...)
}

// Key returns the rendering key of the entry.
func (e Entry) Key() string {
	if e.field != nil {
		return e.field.Key()
	}
	return e.group.Key()
}

// Map returns a copy of the entry with fn applied to every field.
func (e Entry) Map(fn func(Field) Field) Entry {
	if e.field != nil {
		return Single(fn(*e.field))
	}
	out := make(Group, 0, len(e.group))
	for _, f := range e.group {
		out = append(out, fn(f))
	}
	return Entry{group: out}
}

// MarshalJSON emits a field object or a group array.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.field != nil {
		return json.Marshal(e.field)
	}
	return json.Marshal([]Field(e.group))
}

// UnmarshalJSON accepts a field object or an array of field objects.
func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("model: empty field entry")
	}
	if trimmed[0] == '[' {
		var group []Field
		if err := json.Unmarshal(trimmed, &group); err != nil {
			return fmt.Errorf("model: decode field group: %w", err)
		}
		*e = Entry{group: Group(group)}
		return nil
	}
	var f Field
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}
	*e = Entry{field: &f}
	return nil
}

// MarshalYAML emits a field mapping or a group sequence.
func (e Entry) MarshalYAML() (any, error) {
	if e.field != nil {
		return e.field, nil
	}
	return []Field(e.group), nil
}

// UnmarshalYAML accepts a field mapping or a sequence of field mappings.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var group []Field
		if err := node.Decode(&group); err != nil {
			return fmt.Errorf("model: decode field group (line %d): %w", node.Line, err)
		}
		*e = Entry{group: Group(group)}
		return nil
	case yaml.MappingNode:
		var f Field
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("model: decode field (line %d): %w", node.Line, err)
		}
		*e = Entry{field: &f}
		return nil
	default:
		return fmt.Errorf("model: field entry at line %d must be a mapping or a sequence", node.Line)
	}
}
