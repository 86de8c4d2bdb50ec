package openapi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Violation is a hint problem reported by Lint.
type Violation struct {
	// Location is a " > " separated path such as
	// "operation > signup > properties.email > label".
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

type hintKind int

const (
	hintString hintKind = iota
	hintBool
	hintNumber
	hintDate
	hintFieldType
)

var operationHints = map[string]hintKind{
	"label":       hintString,
	"testId":      hintString,
	"submit":      hintString,
	"loadingText": hintString,
}

var propertyHints = map[string]hintKind{
	"label":         hintString,
	"placeholder":   hintString,
	"helperMessage": hintString,
	"heading":       hintString,
	"testId":        hintString,
	"row":           hintString,
	"buttonLabel":   hintString,
	"format":        hintString,
	"type":          hintFieldType,
	"hidden":        hintBool,
	"order":         hintNumber,
	"minDate":       hintDate,
	"maxDate":       hintDate,
}

// Lint reports unknown hints and hint values of the wrong kind on op and
// its request body, sorted by location.
func Lint(op Operation) []Violation {
	base := []string{"operation", op.ID}
	out := lintHints(base, op.Extensions, operationHints)
	out = append(out, lintSchema(append(base, "requestBody"), op.RequestBody)...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].Message < out[j].Message
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func lintSchema(path []string, s Schema) []Violation {
	out := lintHints(path, s.Extensions, propertyHints)
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, lintSchema(appendPath(path, "properties."+name), s.Properties[name])...)
	}
	if s.Items != nil {
		out = append(out, lintSchema(appendPath(path, "items"), *s.Items)...)
	}
	return out
}

func lintHints(path []string, ext map[string]any, allowed map[string]hintKind) []Violation {
	if raw, ok := ext[ExtensionKey]; ok {
		if _, isObject := raw.(map[string]any); !isObject {
			return []Violation{{
				Location: formatLocation(path),
				Message:  fmt.Sprintf("%s must be an object, found %T", ExtensionKey, raw),
			}}
		}
	}

	hints := hintsFrom(ext)
	keys := make([]string, 0, len(hints))
	for key := range hints {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []Violation
	for _, key := range keys {
		location := formatLocation(appendPath(path, key))
		kind, ok := allowed[key]
		if !ok {
			out = append(out, Violation{Location: location, Message: fmt.Sprintf("unsupported hint %q (supported: %s)", key, strings.Join(hintNames(allowed), ", "))})
			continue
		}
		if msg := checkHint(kind, hints[key]); msg != "" {
			out = append(out, Violation{Location: location, Message: msg})
		}
	}
	return out
}

func checkHint(kind hintKind, value any) string {
	switch kind {
	case hintBool:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("must be a boolean, got %T", value)
		}
	case hintNumber:
		if _, ok := (Hints{"order": value}).Order(); !ok {
			return fmt.Sprintf("must be a number, got %v", value)
		}
	default:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("must be a string, got %T", value)
		}
		switch kind {
		case hintDate:
			if _, err := time.Parse(model.DefaultDateFormat, strings.TrimSpace(s)); err != nil {
				return fmt.Sprintf("must be a %s date, got %q", model.DefaultDateFormat, s)
			}
		case hintFieldType:
			if !model.FieldType(strings.TrimSpace(s)).Valid() {
				return fmt.Sprintf("unknown field type %q", s)
			}
		}
	}
	return ""
}

func hintNames(allowed map[string]hintKind) []string {
	out := make([]string, 0, len(allowed))
	for key := range allowed {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
