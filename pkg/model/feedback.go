package model

// FeedbackKind keys a feedback entry.
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
	FeedbackPending FeedbackKind = "pending"
)

// FeedbackEntry is a status message that can replace the form.
type FeedbackEntry struct {
	Kind        FeedbackKind   `json:"kind" yaml:"kind"`
	Visible     bool           `json:"isVisible" yaml:"isVisible"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Payload     map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Feedback is the ordered set of feedback entries of a form, keyed by Kind.
type Feedback []FeedbackEntry

// Get returns the entry with kind.
func (f Feedback) Get(kind FeedbackKind) (FeedbackEntry, bool) {
	for _, entry := range f {
		if entry.Kind == kind {
			return entry, true
		}
	}
	return FeedbackEntry{}, false
}

// Visible returns the visible entries in order.
func (f Feedback) Visible() []FeedbackEntry {
	var out []FeedbackEntry
	for _, entry := range f {
		if entry.Visible {
			out = append(out, entry)
		}
	}
	return out
}

// AnyVisible reports whether at least one entry is visible.
func (f Feedback) AnyVisible() bool {
	for _, entry := range f {
		if entry.Visible {
			return true
		}
	}
	return false
}

// With returns a copy where the entry for kind is replaced (or appended).
func (f Feedback) With(entry FeedbackEntry) Feedback {
	out := make(Feedback, 0, len(f)+1)
	replaced := false
	for _, existing := range f {
		if existing.Kind == entry.Kind {
			out = append(out, entry)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, entry)
	}
	return out
}

// Show returns a copy with only kind visible.
func (f Feedback) Show(kind FeedbackKind) Feedback {
	out := make(Feedback, len(f))
	for i, entry := range f {
		entry.Visible = entry.Kind == kind
		out[i] = entry
	}
	return out
}

// Hide returns a copy with every entry hidden.
func (f Feedback) Hide() Feedback {
	out := make(Feedback, len(f))
	for i, entry := range f {
		entry.Visible = false
		out[i] = entry
	}
	return out
}
