package gotemplate

import (
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-dynform/pkg/view"
)

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":    filterTrim,
		"style":   filterStyle,
		"cssvars": filterCSSVars,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterStyle renders a map of declarations as an inline style value.
func filterStyle(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(view.Style(stringMap(in.Interface()))), nil
}

// filterCSSVars renders a map of custom properties as a :root rule. Keys
// without a leading "--" get one.
func filterCSSVars(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	vars := make(map[string]string)
	for k, v := range stringMap(in.Interface()) {
		name := strings.TrimSpace(k)
		value := strings.TrimSpace(v)
		if name == "" || value == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		vars[name] = value
	}
	if len(vars) == 0 {
		return pongo2.AsValue(""), nil
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {")
	for _, name := range names {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(vars[name])
		b.WriteString(";")
	}
	b.WriteString(" }")
	return pongo2.AsValue(b.String()), nil
}

func stringMap(v any) map[string]string {
	switch m := v.(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			if s, ok := val.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}
