package controls_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// harness keeps a widget's value in a local variable and re-renders it after
// every change, the same way the field binder feeds form state back in.
type harness struct {
	value   any
	changes []any
	doc     *view.Document
}

func mount(widget controls.Widget, props controls.Props) *harness {
	h := &harness{value: props.Value}
	h.doc = view.NewDocument(func() *view.Node {
		p := props
		p.Value = h.value
		p.OnChange = func(v any) {
			h.value = v
			h.changes = append(h.changes, v)
		}
		return view.El("div", nil, widget(p))
	})
	return h
}

func (h *harness) root() *view.Node { return h.doc.Root() }

func TestTextInput_EmitsStrings(t *testing.T) {
	h := mount(controls.TextInput, controls.Props{ID: "name", Name: "name", TestID: "t--name-field", InputType: "email", Label: "Name"})
	input := h.root().ByTestID("t--name-field")
	if input == nil || input.AttrValue("type") != "email" {
		t.Fatalf("expected email input, got %+v", input)
	}
	if err := h.doc.Change(input, "ada@example.com"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if diff := cmp.Diff([]any{"ada@example.com"}, h.changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if got := h.root().ByTestID("t--name-field").AttrValue("value"); got != "ada@example.com" {
		t.Fatalf("expected value to be reflected, got %q", got)
	}
}

func TestTextInput_DisabledDropsEvents(t *testing.T) {
	h := mount(controls.TextInput, controls.Props{ID: "name", Name: "name", TestID: "x", Disabled: true})
	if err := h.doc.Change(h.root().ByTestID("x"), "nope"); err != view.ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if len(h.changes) != 0 {
		t.Fatalf("disabled input must not emit, got %v", h.changes)
	}
}

func TestTextArea_RendersValueAsText(t *testing.T) {
	h := mount(controls.TextArea, controls.Props{ID: "bio", Name: "bio", TestID: "bio", Value: "hello"})
	area := h.root().ByTestID("bio")
	if area.Tag != "textarea" || area.TextContent() != "hello" {
		t.Fatalf("unexpected textarea: %s", view.HTML(area))
	}
}

func TestNumberInput_ParsesAndRounds(t *testing.T) {
	opts := &model.NumberOptions{Precision: 2, Prefix: "$"}
	h := mount(controls.NumberInput, controls.Props{ID: "amount", Name: "amount", TestID: "amount", Options: opts})
	input := h.root().ByTestID("amount")
	if input.AttrValue("inputmode") != "decimal" || input.AttrValue("data-allow-mouse-wheel") != "false" {
		t.Fatalf("unexpected number attributes: %s", view.HTML(input))
	}

	if err := h.doc.Change(input, "$ 12.346"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := h.doc.Change(h.root().ByTestID("amount"), ""); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := h.doc.Change(h.root().ByTestID("amount"), "abc"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if diff := cmp.Diff([]any{12.35, "", "abc"}, h.changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if h.root().ByText("$") == nil {
		t.Fatalf("expected prefix to render")
	}
}

func TestNumberInput_StepperClamps(t *testing.T) {
	max := 2.0
	opts := &model.NumberOptions{Step: 1, Max: &max, ShowStepper: true}
	h := mount(controls.NumberInput, controls.Props{ID: "qty", Name: "qty", TestID: "qty", Options: opts, Value: 1.0})

	inc := h.root().ByRole("button", "Increment")
	if inc == nil {
		t.Fatalf("expected increment button")
	}
	for i := 0; i < 3; i++ {
		if err := h.doc.Click(h.root().ByRole("button", "Increment")); err != nil {
			t.Fatalf("click: %v", err)
		}
	}
	if h.value != 2.0 {
		t.Fatalf("expected value clamped to 2, got %v", h.value)
	}
	if err := h.doc.Click(h.root().ByRole("button", "Decrement")); err != nil {
		t.Fatalf("click: %v", err)
	}
	if h.value != 1.0 {
		t.Fatalf("expected 1 after decrement, got %v", h.value)
	}
}

func TestCheckbox_ClickTogglesAndLabelFollowsControl(t *testing.T) {
	h := mount(controls.Checkbox, controls.Props{ID: "terms", Name: "terms", TestID: "terms", Label: "Accept terms", Required: true})

	box := h.root().ByLabelText("Accept terms")
	if box == nil || box.Role() != "checkbox" {
		t.Fatalf("expected checkbox resolvable by label text")
	}
	label := h.root().ByTestID("terms")
	children := label.Elements()
	if len(children) != 2 || children[0].Tag != "input" || children[1].AccessibleText() != "Accept terms" {
		t.Fatalf("expected input followed by label text, got %s", view.HTML(label))
	}

	if err := h.doc.Click(box); err != nil {
		t.Fatalf("click: %v", err)
	}
	if err := h.doc.Click(h.root().ByText("Accept terms")); err != nil {
		t.Fatalf("click label: %v", err)
	}
	if diff := cmp.Diff([]any{true, false}, h.changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestSwitch_ExposesSwitchRole(t *testing.T) {
	h := mount(controls.Switch, controls.Props{ID: "on", Name: "on", TestID: "on", Label: "Enabled", Value: true})
	sw := h.root().ByRole("switch", "")
	if sw == nil || sw.AttrValue("aria-checked") != "true" || !sw.HasAttr("checked") {
		t.Fatalf("unexpected switch: %s", view.HTML(h.root()))
	}
	if err := h.doc.Click(sw); err != nil {
		t.Fatalf("click: %v", err)
	}
	if h.value != false {
		t.Fatalf("expected switch off, got %v", h.value)
	}
	if got := h.root().ByRole("switch", "").AttrValue("aria-checked"); got != "false" {
		t.Fatalf("expected aria-checked=false, got %q", got)
	}
}

func TestDatePicker_CommitsOnlyValidDates(t *testing.T) {
	min := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := &model.DatepickerOptions{MinDate: &min}
	h := mount(controls.DatePicker, controls.Props{ID: "start", Name: "start", TestID: "f--start-field", Options: opts})

	if h.root().ByTestID("f--start-field") == nil {
		t.Fatalf("expected datepicker container")
	}
	input := h.root().ByTestID("f--start-field--input")
	if input == nil || input.AttrValue("id") != "start" || input.AttrValue("placeholder") != model.DefaultDateFormat {
		t.Fatalf("unexpected text surface: %s", view.HTML(h.root()))
	}

	for _, raw := range []any{"2024-0", "not a date", "2023-12-31", ""} {
		if err := h.doc.Change(h.root().ByTestID("f--start-field--input"), raw); err != nil {
			t.Fatalf("change: %v", err)
		}
	}
	if len(h.changes) != 0 {
		t.Fatalf("expected no commits for partial input, got %v", h.changes)
	}

	if err := h.doc.Change(h.root().ByTestID("f--start-field--input"), "2024-03-05"); err != nil {
		t.Fatalf("change: %v", err)
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if len(h.changes) != 1 || !h.changes[0].(time.Time).Equal(want) {
		t.Fatalf("expected committed date %v, got %v", want, h.changes)
	}
	if got := h.root().ByTestID("f--start-field--input").AttrValue("value"); got != "2024-03-05" {
		t.Fatalf("expected formatted value, got %q", got)
	}
}

func TestMultiSelect_TogglesSelection(t *testing.T) {
	opts := &model.SelectOptions{
		Items: []model.MenuOption{
			{Label: "Red", Value: "red"},
			{Label: "Green", Value: "green"},
			{Label: "Blue", Value: "blue"},
		},
		ShowSelectedItems: true,
		ButtonLabel:       "Pick colours",
	}
	h := mount(controls.MultiSelect, controls.Props{ID: "colours", Name: "colours", TestID: "colours", Options: opts, Value: []string{"green"}})

	if h.root().ByRole("button", "Pick colours") == nil {
		t.Fatalf("expected menu button")
	}
	if got := h.root().ByRole("option", "Green").AttrValue("aria-selected"); got != "true" {
		t.Fatalf("expected preselected green, got %q", got)
	}

	if err := h.doc.Click(h.root().ByRole("option", "Red")); err != nil {
		t.Fatalf("click: %v", err)
	}
	want := []model.MenuOption{{Label: "Green", Value: "green"}, {Label: "Red", Value: "red"}}
	if diff := cmp.Diff(want, h.value); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	if err := h.doc.Click(h.root().ByRole("button", "Remove Green")); err != nil {
		t.Fatalf("remove chip: %v", err)
	}
	want = []model.MenuOption{{Label: "Red", Value: "red"}}
	if diff := cmp.Diff(want, h.value); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	hidden := h.root().FindAll(func(n *view.Node) bool { return n.AttrValue("type") == "hidden" })
	if len(hidden) != 1 || hidden[0].AttrValue("value") != "red" {
		t.Fatalf("expected one hidden input for red, got %d", len(hidden))
	}
}

func TestMultiSelect_SingleReplacesSelection(t *testing.T) {
	opts := &model.SelectOptions{
		Items:  []model.MenuOption{{Label: "One", Value: "1"}, {Label: "Two", Value: "2"}},
		Single: true,
	}
	h := mount(controls.MultiSelect, controls.Props{ID: "n", Name: "n", TestID: "n", Options: opts, Value: "1"})
	if h.root().ByRole("listbox", "").HasAttr("aria-multiselectable") {
		t.Fatalf("single menus are not multiselectable")
	}
	if err := h.doc.Click(h.root().ByRole("option", "Two")); err != nil {
		t.Fatalf("click: %v", err)
	}
	if diff := cmp.Diff([]model.MenuOption{{Label: "Two", Value: "2"}}, h.value); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestSelection_Normalises(t *testing.T) {
	items := []model.MenuOption{{Label: "Alpha", Value: "a"}}
	cases := map[string]struct {
		in   any
		want []model.MenuOption
	}{
		"nil":         {nil, []model.MenuOption{}},
		"blank":       {"  ", []model.MenuOption{}},
		"string":      {"a", []model.MenuOption{{Label: "Alpha", Value: "a"}}},
		"unknown":     {"z", []model.MenuOption{{Label: "z", Value: "z"}}},
		"decoded any": {[]any{map[string]any{"value": "a"}, "z"}, []model.MenuOption{{Label: "Alpha", Value: "a"}, {Label: "z", Value: "z"}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, controls.Selection(tc.in, items)); diff != "" {
				t.Fatalf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
