package model_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/model"
)

func TestGroupKey_JoinsIDOrName(t *testing.T) {
	entry := model.Row(
		model.Field{ID: "first", Name: "firstName", Type: model.FieldTypeText},
		model.Field{Name: "lastName", Type: model.FieldTypeText},
	)
	if !entry.IsGroup() {
		t.Fatalf("expected group entry")
	}
	if got := entry.Key(); got != "first-lastName" {
		t.Fatalf("unexpected group key %q", got)
	}
	single := model.Single(model.Field{Name: "email"})
	if single.IsGroup() || single.Key() != "email" {
		t.Fatalf("unexpected single entry key %q", single.Key())
	}
}

func TestEntry_DecodeYAML(t *testing.T) {
	src := []byte(`
testId: signup
fields:
  - name: email
    type: email
    label: Email
    required: true
  - - name: first
      type: text
    - name: last
      type: text
  - name: qty
    type: number
    numberOptions:
      precision: 2
      step: 0.5
feedback:
  - kind: success
    isVisible: false
    title: Done
`)
	var form model.Form
	if err := yaml.Unmarshal(src, &form); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(form.Fields) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(form.Fields))
	}
	if form.Fields[0].IsGroup() || !form.Fields[1].IsGroup() || form.Fields[2].IsGroup() {
		t.Fatalf("unexpected entry shapes")
	}
	if got := form.Fields[1].Key(); got != "first-last" {
		t.Fatalf("unexpected group key %q", got)
	}
	qty, _ := form.Fields[2].Field()
	if qty.NumberOptions == nil || qty.NumberOptions.Precision != 2 || qty.NumberOptions.Step != 0.5 {
		t.Fatalf("number options not decoded: %+v", qty.NumberOptions)
	}
	if entry, ok := form.Feedback.Get(model.FeedbackSuccess); !ok || entry.Title != "Done" {
		t.Fatalf("feedback not decoded: %+v", form.Feedback)
	}
}

func TestEntry_JSONRoundTripShapes(t *testing.T) {
	form := model.Form{
		Fields: []model.Entry{
			model.Single(model.Field{Name: "a", Type: model.FieldTypeText}),
			model.Row(model.Field{Name: "b", Type: model.FieldTypeText}, model.Field{Name: "c", Type: model.FieldTypeText}),
		},
	}
	data, err := json.Marshal(form)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded model.Form
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var keys []string
	for _, entry := range decoded.Fields {
		keys = append(keys, entry.Key())
	}
	if diff := cmp.Diff([]string{"a", "b-c"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if !decoded.Fields[1].IsGroup() {
		t.Fatalf("expected group to survive JSON")
	}
}

func TestForm_DefaultsAndValues(t *testing.T) {
	form := model.Form{
		InitialValues: map[string]any{"email": "a@b.c"},
		Fields: []model.Entry{
			model.Single(model.Field{Name: "email", Type: model.FieldTypeEmail}),
			model.Single(model.Field{Name: "title", Type: model.FieldTypeHeader, Heading: "Details"}),
			model.Row(
				model.Field{Name: "agree", Type: model.FieldTypeCheckbox},
				model.Field{Name: "tags", Type: model.FieldTypeSelect},
			),
			model.Single(model.Field{Name: "mystery", Type: "radio"}),
		},
	}
	if form.ResolvedTestID() != model.DefaultTestID || form.ResolvedLabel() != model.DefaultLabel {
		t.Fatalf("unexpected defaults")
	}
	want := map[string]any{
		"email": "a@b.c",
		"agree": false,
		"tags":  []model.MenuOption{},
	}
	if diff := cmp.Diff(want, form.DefaultValues()); diff != "" {
		t.Fatalf("default values mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedback_ShowHideWith(t *testing.T) {
	fb := model.Feedback{
		{Kind: model.FeedbackSuccess, Title: "ok"},
		{Kind: model.FeedbackError, Title: "bad"},
	}
	if fb.AnyVisible() {
		t.Fatalf("nothing should be visible")
	}
	shown := fb.Show(model.FeedbackError)
	if got := shown.Visible(); len(got) != 1 || got[0].Kind != model.FeedbackError {
		t.Fatalf("unexpected visible entries %+v", got)
	}
	if fb.AnyVisible() {
		t.Fatalf("Show must not mutate the receiver")
	}
	added := shown.With(model.FeedbackEntry{Kind: model.FeedbackPending, Visible: true})
	if len(added) != 3 || len(added.Visible()) != 2 {
		t.Fatalf("unexpected With result %+v", added)
	}
	if added.Hide().AnyVisible() {
		t.Fatalf("Hide should clear visibility")
	}
}

func TestAction_Defaults(t *testing.T) {
	a := model.Action{Title: "Save"}
	if a.Kind() != model.ActionButton || a.AccessibleName() != "Save" || a.Busy() != "Save" {
		t.Fatalf("unexpected defaults: %v %q %q", a.Kind(), a.AccessibleName(), a.Busy())
	}
	b := model.Action{Title: "Save", Type: "SUBMIT", Label: "Save profile", LoadingText: "Saving..."}
	if b.Kind() != model.ActionSubmit || b.AccessibleName() != "Save profile" || b.Busy() != "Saving..." {
		t.Fatalf("unexpected overrides")
	}
}
