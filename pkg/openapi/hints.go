package openapi

import (
	"strconv"
	"strings"
)

// ExtensionKey is the vendor extension carrying rendering hints, on a
// property or on an operation. Single hints may also be given flat, as
// "x-dynform-<hint>".
const ExtensionKey = "x-dynform"

// Hints are the rendering hints attached to a schema or operation.
type Hints map[string]any

// Hints returns the x-dynform extension of the schema.
func (s Schema) Hints() Hints {
	return hintsFrom(s.Extensions)
}

// Hints returns the x-dynform extension of the operation.
func (op Operation) Hints() Hints {
	return hintsFrom(op.Extensions)
}

// hintsFrom merges the x-dynform object with flat "x-dynform-<key>"
// extensions, the flat form winning.
func hintsFrom(ext map[string]any) Hints {
	var out Hints
	if raw, ok := ext[ExtensionKey].(map[string]any); ok {
		out = make(Hints, len(raw))
		for k, v := range raw {
			out[k] = v
		}
	}
	for key, value := range ext {
		name, ok := strings.CutPrefix(key, ExtensionKey+"-")
		if !ok || name == "" {
			continue
		}
		if out == nil {
			out = make(Hints)
		}
		out[name] = value
	}
	return out
}

// String returns the trimmed string hint for key.
func (h Hints) String(key string) string {
	if s, ok := h[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Bool returns the boolean hint for key.
func (h Hints) Bool(key string) bool {
	switch v := h[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

// Order returns the "order" hint.
func (h Hints) Order() (int, bool) {
	switch v := h["order"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}
