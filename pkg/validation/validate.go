package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-dynform/pkg/model"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Compose runs validators in order and returns the first message.
func Compose(validators ...model.ValidateFunc) model.ValidateFunc {
	return func(value any) string {
		for _, fn := range validators {
			if fn == nil {
				continue
			}
			if msg := fn(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// Required rejects empty strings, false toggles, empty selections and
// missing dates.
func Required(msg string) model.ValidateFunc {
	if msg == "" {
		msg = "This field is required"
	}
	return func(value any) string {
		if IsEmpty(value) {
			return msg
		}
		return ""
	}
}

// NonEmpty rejects values made only of whitespace. Missing values pass so it
// composes with Required.
func NonEmpty(msg string) model.ValidateFunc {
	if msg == "" {
		msg = "Must not be blank"
	}
	return func(value any) string {
		s, ok := value.(string)
		if ok && s != "" && strings.TrimSpace(s) == "" {
			return msg
		}
		return ""
	}
}

// MinLength rejects text shorter than n runes. Empty values pass.
func MinLength(n int, msg string) model.ValidateFunc {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return func(value any) string {
		s := text(value)
		if s == "" {
			return ""
		}
		if len([]rune(s)) < n {
			return msg
		}
		return ""
	}
}

// MaxLength rejects text longer than n runes.
func MaxLength(n int, msg string) model.ValidateFunc {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return func(value any) string {
		if len([]rune(text(value))) > n {
			return msg
		}
		return ""
	}
}

// Pattern rejects non-empty text not matching expr. It panics when expr does
// not compile.
func Pattern(expr, msg string) model.ValidateFunc {
	re := regexp.MustCompile(expr)
	if msg == "" {
		msg = "Invalid format"
	}
	return func(value any) string {
		s := text(value)
		if s == "" || re.MatchString(s) {
			return ""
		}
		return msg
	}
}

// Range rejects numbers outside [min, max]. Nil bounds are open. Raw strings
// left by unparsable numeric input are rejected as well.
func Range(min, max *float64, msg string) model.ValidateFunc {
	return func(value any) string {
		var f float64
		switch v := value.(type) {
		case nil:
			return ""
		case float64:
			f = v
		case int:
			f = float64(v)
		case string:
			if strings.TrimSpace(v) == "" {
				return ""
			}
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return orDefault(msg, "Must be a number")
			}
			f = parsed
		default:
			return ""
		}
		if min != nil && f < *min {
			return orDefault(msg, "Must be at least "+strconv.FormatFloat(*min, 'f', -1, 64))
		}
		if max != nil && f > *max {
			return orDefault(msg, "Must be at most "+strconv.FormatFloat(*max, 'f', -1, 64))
		}
		return ""
	}
}

// Email rejects non-empty text that is not an e-mail address.
func Email(msg string) model.ValidateFunc {
	return Tag("email", orDefault(msg, "Invalid email address"))
}

// Tag validates non-empty values against a go-playground/validator tag such
// as "url", "uuid4" or "e164".
func Tag(tag, msg string) model.ValidateFunc {
	if msg == "" {
		msg = "Invalid value"
	}
	return func(value any) string {
		if IsEmpty(value) {
			return ""
		}
		if err := engine().Var(value, tag); err != nil {
			return msg
		}
		return ""
	}
}

// IsEmpty reports whether a state value counts as missing.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	case []model.MenuOption:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v == nil || v.IsZero()
	}
	return false
}

func text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
