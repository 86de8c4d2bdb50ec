package model

import "strings"

// ActionType selects how an action reacts to activation.
type ActionType string

const (
	// ActionButton invokes the action's OnClick callback.
	ActionButton ActionType = "button"
	// ActionSubmit routes through the form's submit pipeline.
	ActionSubmit ActionType = "submit"
)

// Action describes a button rendered in the action bar.
type Action struct {
	Title       string     `json:"title" yaml:"title"`
	Type        ActionType `json:"type,omitempty" yaml:"type,omitempty"`
	Label       string     `json:"label,omitempty" yaml:"label,omitempty"`
	Disabled    bool       `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	LoadingText string     `json:"loadingText,omitempty" yaml:"loadingText,omitempty"`
	TestID      string     `json:"testId,omitempty" yaml:"testId,omitempty"`

	OnClick func() `json:"-" yaml:"-"`
}

// Kind returns the normalised type, defaulting to ActionButton.
func (a Action) Kind() ActionType {
	if ActionType(strings.ToLower(strings.TrimSpace(string(a.Type)))) == ActionSubmit {
		return ActionSubmit
	}
	return ActionButton
}

// AccessibleName returns Label, falling back to Title.
func (a Action) AccessibleName() string {
	if strings.TrimSpace(a.Label) != "" {
		return a.Label
	}
	return a.Title
}

// Busy returns LoadingText, falling back to Title.
func (a Action) Busy() string {
	if strings.TrimSpace(a.LoadingText) != "" {
		return a.LoadingText
	}
	return a.Title
}
