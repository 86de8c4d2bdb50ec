package schema

import (
	"fmt"
	"regexp"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// Rules declare the validation of one field. Each rule has its default
// message unless Message overrides them all.
type Rules struct {
	Required  bool     `json:"required,omitempty" yaml:"required,omitempty"`
	NonEmpty  bool     `json:"nonEmpty,omitempty" yaml:"nonEmpty,omitempty"`
	Email     bool     `json:"email,omitempty" yaml:"email,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	// Tag is a go-playground/validator tag such as "url" or "e164".
	Tag     string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Validator composes the declared rules in a fixed order: required,
// non-empty, email, lengths, pattern, range, tag. It returns nil when no rule
// is declared.
func (r Rules) Validator() model.ValidateFunc {
	var fns []model.ValidateFunc
	if r.Required {
		fns = append(fns, validation.Required(r.Message))
	}
	if r.NonEmpty {
		fns = append(fns, validation.NonEmpty(r.Message))
	}
	if r.Email {
		fns = append(fns, validation.Email(r.Message))
	}
	if r.MinLength != nil {
		fns = append(fns, validation.MinLength(*r.MinLength, r.Message))
	}
	if r.MaxLength != nil {
		fns = append(fns, validation.MaxLength(*r.MaxLength, r.Message))
	}
	if r.Pattern != "" {
		fns = append(fns, validation.Pattern(r.Pattern, r.Message))
	}
	if r.Min != nil || r.Max != nil {
		fns = append(fns, validation.Range(r.Min, r.Max, r.Message))
	}
	if r.Tag != "" {
		fns = append(fns, validation.Tag(r.Tag, r.Message))
	}
	if len(fns) == 0 {
		return nil
	}
	return validation.Compose(fns...)
}

func (r Rules) check() error {
	if r.Pattern != "" {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("pattern %q: %w", r.Pattern, err)
		}
	}
	if r.MinLength != nil && r.MaxLength != nil && *r.MinLength > *r.MaxLength {
		return fmt.Errorf("minLength %d exceeds maxLength %d", *r.MinLength, *r.MaxLength)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("min %v exceeds max %v", *r.Min, *r.Max)
	}
	return nil
}
