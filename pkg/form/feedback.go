package form

import (
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// feedbackView renders every visible entry once, keyed by kind, in order.
func (f *Form) feedbackView(feedback model.Feedback) *view.Node {
	out := view.Fragment()
	for _, entry := range feedback.Visible() {
		out.Append(f.feedbackEntry(entry))
	}
	return out
}

func (f *Form) feedbackEntry(entry model.FeedbackEntry) *view.Node {
	kind := string(entry.Kind)
	role := "status"
	if entry.Kind == model.FeedbackError {
		role = "alert"
	}
	node := view.El("div", view.Attrs{
		"class":       "feedback feedback--" + kind,
		"role":        role,
		"data-kind":   kind,
		"data-testid": f.testID + "--feedback-" + kind,
	}).WithKey(kind)
	if entry.Title != "" {
		node.Append(view.El("h3", view.Attrs{"class": "feedback__title"}, view.Text(entry.Title)))
	}
	if body := view.SafeHTML(entry.Description); body != nil {
		node.Append(view.El("div", view.Attrs{"class": "feedback__description"}, body))
	}
	return node
}
