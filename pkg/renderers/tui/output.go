package tui

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-dynform/pkg/model"
)

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		out := url.Values{}
		flatten("", values, out)
		return []byte(out.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		writePretty(&b, "", values)
		return []byte(b.String()), nil
	default:
		data, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return data, nil
	}
}

// flatten writes nested maps as dotted keys and selections as repeated
// "key[]" values.
func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []model.MenuOption:
		for _, opt := range v {
			out.Add(prefix+"[]", opt.Value)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", scalar(val))
		}
	default:
		out.Set(prefix, scalar(v))
	}
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []model.MenuOption:
		labels := make([]string, 0, len(v))
		for _, opt := range v {
			labels = append(labels, opt.Label)
		}
		fmt.Fprintf(b, "%s=%s\n", prefix, strings.Join(labels, ", "))
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%s\n", prefix, scalar(v))
		}
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format(time.RFC3339)
	case model.MenuOption:
		return t.Value
	case map[string]any:
		if val, ok := t["value"]; ok {
			return fmt.Sprint(val)
		}
	}
	return fmt.Sprint(v)
}
