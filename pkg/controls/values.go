package controls

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Text renders a state value for a text surface.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(model.DefaultDateFormat)
	default:
		return fmt.Sprint(v)
	}
}

// Bool coerces a state value into a toggle state.
func Bool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

// ParseNumber converts raw input into a float64 rounded to the configured
// precision. Empty or unparsable input is returned unchanged.
func ParseNumber(raw any, opts *model.NumberOptions) any {
	switch v := raw.(type) {
	case float64:
		return round(v, opts)
	case int:
		return round(float64(v), opts)
	case string:
		trimmed := strings.TrimSpace(v)
		if opts != nil {
			trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, opts.Prefix), opts.Suffix)
			trimmed = strings.TrimSpace(trimmed)
		}
		if trimmed == "" {
			return v
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return v
		}
		return round(f, opts)
	default:
		return raw
	}
}

// FormatNumber renders a state value for a numeric surface.
func FormatNumber(value any, opts *model.NumberOptions) string {
	f, ok := value.(float64)
	if !ok {
		if i, isInt := value.(int); isInt {
			f, ok = float64(i), true
		}
	}
	if !ok {
		return Text(value)
	}
	if opts != nil && opts.Precision > 0 {
		return strconv.FormatFloat(f, 'f', opts.Precision, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Step returns the configured step or 1.
func Step(opts *model.NumberOptions) float64 {
	if opts == nil || opts.Step <= 0 {
		return 1
	}
	return opts.Step
}

// Clamp bounds f by the configured min and max.
func Clamp(f float64, opts *model.NumberOptions) float64 {
	if opts == nil {
		return f
	}
	if opts.Min != nil && f < *opts.Min {
		f = *opts.Min
	}
	if opts.Max != nil && f > *opts.Max {
		f = *opts.Max
	}
	return f
}

func round(f float64, opts *model.NumberOptions) float64 {
	if opts == nil || opts.Precision <= 0 {
		return f
	}
	pow := math.Pow(10, float64(opts.Precision))
	return math.Round(f*pow) / pow
}

// ParseDate commits a date selection. Strings are parsed with the configured
// layout. Zero times, unparsable input and dates outside the configured range
// are rejected.
func ParseDate(value any, opts *model.DatepickerOptions) (time.Time, bool) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		t = *v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false
		}
		parsed, err := time.Parse(opts.Layout(), trimmed)
		if err != nil {
			return time.Time{}, false
		}
		t = parsed
	default:
		return time.Time{}, false
	}
	if t.IsZero() {
		return time.Time{}, false
	}
	if opts != nil {
		if opts.MinDate != nil && t.Before(*opts.MinDate) {
			return time.Time{}, false
		}
		if opts.MaxDate != nil && t.After(*opts.MaxDate) {
			return time.Time{}, false
		}
	}
	return t, true
}

// FormatDate renders a state value for a date surface.
func FormatDate(value any, opts *model.DatepickerOptions) string {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(opts.Layout())
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(opts.Layout())
	default:
		return Text(value)
	}
}

// Selection normalises a select value into menu options. Plain values are
// matched against items to recover their labels.
func Selection(value any, items []model.MenuOption) []model.MenuOption {
	byValue := make(map[string]model.MenuOption, len(items))
	for _, item := range items {
		byValue[item.Value] = item
	}
	resolve := func(v string) model.MenuOption {
		if item, ok := byValue[v]; ok {
			return item
		}
		return model.MenuOption{Label: v, Value: v}
	}

	switch v := value.(type) {
	case nil:
		return []model.MenuOption{}
	case []model.MenuOption:
		return append([]model.MenuOption{}, v...)
	case model.MenuOption:
		return []model.MenuOption{v}
	case []string:
		out := make([]model.MenuOption, 0, len(v))
		for _, s := range v {
			out = append(out, resolve(s))
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return []model.MenuOption{}
		}
		return []model.MenuOption{resolve(v)}
	case []any:
		out := make([]model.MenuOption, 0, len(v))
		for _, entry := range v {
			switch e := entry.(type) {
			case map[string]any:
				opt := model.MenuOption{Label: Text(e["label"]), Value: Text(e["value"])}
				if opt.Label == "" {
					opt = resolve(opt.Value)
				}
				out = append(out, opt)
			case model.MenuOption:
				out = append(out, e)
			default:
				out = append(out, resolve(Text(e)))
			}
		}
		return out
	default:
		return []model.MenuOption{resolve(Text(v))}
	}
}

// Toggled returns selection with option added or removed. Single-choice
// menus replace the selection.
func Toggled(selection []model.MenuOption, option model.MenuOption, single bool) []model.MenuOption {
	out := make([]model.MenuOption, 0, len(selection)+1)
	removed := false
	for _, item := range selection {
		if item.Value == option.Value {
			removed = true
			continue
		}
		out = append(out, item)
	}
	if removed {
		return out
	}
	if single {
		return []model.MenuOption{option}
	}
	return append(out, option)
}
