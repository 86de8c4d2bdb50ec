package view_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/view"
)

func TestHTML_DeterministicOutput(t *testing.T) {
	tree := view.El("form", view.Attrs{"novalidate": "", "data-testid": "f", "class": "x"},
		view.El("input", view.Attrs{"type": "text", "value": `a"b<c`, "disabled": ""}),
		view.Fragment(view.Text("one & two"), nil),
		view.El("br", nil),
	)
	want := `<form class="x" data-testid="f" novalidate><input disabled type="text" value="a&#34;b&lt;c">one &amp; two<br></form>`
	if got := view.HTML(tree); got != want {
		t.Fatalf("html mismatch:\nwant %s\ngot  %s", want, got)
	}
}

func TestStyle_SortsAndSkipsBlank(t *testing.T) {
	got := view.Style(map[string]string{"width": "10px", "color": "red", "margin": " "})
	if got != "color: red; width: 10px" {
		t.Fatalf("unexpected style %q", got)
	}
	merged := view.MergeStyle(map[string]string{"a": "1", "b": "2"}, map[string]string{"b": "3"})
	if diff := cmp.Diff(map[string]string{"a": "1", "b": "3"}, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestQueries(t *testing.T) {
	tree := view.El("div", nil,
		view.El("label", view.Attrs{"for": "email"}, view.Text("Email"), view.El("span", view.Attrs{"aria-hidden": "true"}, view.Text("*"))),
		view.El("input", view.Attrs{"id": "email", "type": "email", "data-testid": "email"}),
		view.El("label", nil, view.El("input", view.Attrs{"type": "checkbox", "id": "c"}), view.El("span", nil, view.Text("Subscribe"))),
		view.El("button", view.Attrs{"type": "submit"}, view.Text("Save")),
		view.El("button", view.Attrs{"aria-label": "Close"}, view.Text("×")),
		view.El("h3", nil, view.Text("Section")),
	)

	if got := tree.ByLabelText("Email"); got == nil || got.AttrValue("id") != "email" {
		t.Fatalf("expected label[for] lookup to find #email")
	}
	if got := tree.ByLabelText("Subscribe"); got == nil || got.AttrValue("id") != "c" {
		t.Fatalf("expected nested label lookup to find #c")
	}
	if got := tree.ByLabelText("Close"); got == nil || got.Tag != "button" {
		t.Fatalf("expected aria-label lookup")
	}
	if tree.ByRole("button", "Save") == nil || tree.ByRole("button", "Close") == nil {
		t.Fatalf("expected buttons by role")
	}
	if tree.ByRole("heading", "Section") == nil {
		t.Fatalf("expected heading role")
	}
	if got := tree.ByText("Subscribe"); got == nil || got.Tag != "span" {
		t.Fatalf("expected innermost text match, got %+v", got)
	}
	if tree.ByTestID("email") == nil || tree.ByTestID("missing") != nil {
		t.Fatalf("unexpected test id lookup")
	}
	if n := len(tree.AllByRole("button", "")); n != 2 {
		t.Fatalf("expected 2 buttons, got %d", n)
	}
}

func TestDocument_DispatchBubblesAndRefreshes(t *testing.T) {
	var log []string
	count := 0
	doc := view.NewDocument(func() *view.Node {
		form := view.El("form", nil,
			view.El("div", nil,
				view.El("button", view.Attrs{"type": "submit", "data-testid": "go"}, view.Text("Go")).
					On(view.EventClick, func(*view.Event) { log = append(log, "button") }),
			).On(view.EventClick, func(*view.Event) { log = append(log, "div") }),
			view.El("span", view.Attrs{"data-testid": "count"}, view.Text(strings.Repeat("|", count))),
		)
		form.On(view.EventSubmit, func(*view.Event) {
			log = append(log, "submit")
			count++
		})
		return form
	})

	if err := doc.Click(doc.Root().ByTestID("go")); err != nil {
		t.Fatalf("click: %v", err)
	}
	if diff := cmp.Diff([]string{"button", "div", "submit"}, log); diff != "" {
		t.Fatalf("dispatch order mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Root().ByTestID("count").TextContent(); got != "|" {
		t.Fatalf("expected refreshed tree, got %q", got)
	}
}

func TestDocument_PreventDefaultAndDisabled(t *testing.T) {
	submitted := 0
	doc := view.NewDocument(func() *view.Node {
		return view.El("form", nil,
			view.El("button", view.Attrs{"type": "submit", "data-testid": "prevent"}).
				On(view.EventClick, func(e *view.Event) { e.PreventDefault() }),
			view.El("fieldset", view.Attrs{"disabled": ""},
				view.El("button", view.Attrs{"type": "submit", "data-testid": "inside"}),
			),
		).On(view.EventSubmit, func(*view.Event) { submitted++ })
	})

	if err := doc.Click(doc.Root().ByTestID("prevent")); err != nil {
		t.Fatalf("click: %v", err)
	}
	if err := doc.Click(doc.Root().ByTestID("inside")); err != view.ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if submitted != 0 {
		t.Fatalf("expected no submissions, got %d", submitted)
	}

	stale := view.El("button", nil)
	if err := doc.Click(stale); err != view.ErrDetached {
		t.Fatalf("expected ErrDetached, got %v", err)
	}
}

func TestDocument_BlurDoesNotBubble(t *testing.T) {
	var log []string
	doc := view.NewDocument(func() *view.Node {
		return view.El("div", nil,
			view.El("input", view.Attrs{"data-testid": "in"}).On(view.EventBlur, func(*view.Event) { log = append(log, "input") }),
		).On(view.EventBlur, func(*view.Event) { log = append(log, "div") })
	})
	if err := doc.Blur(doc.Root().ByTestID("in")); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if diff := cmp.Diff([]string{"input"}, log); diff != "" {
		t.Fatalf("blur mismatch (-want +got):\n%s", diff)
	}
}

func TestSafeHTML_StripsScripts(t *testing.T) {
	node := view.SafeHTML(`<strong>Saved</strong><script>alert(1)</script><img src=x onerror=alert(1)>`)
	if node == nil {
		t.Fatalf("expected sanitized node")
	}
	got := view.HTML(node)
	if strings.Contains(got, "script") || strings.Contains(got, "onerror") {
		t.Fatalf("unsafe markup survived: %s", got)
	}
	if !strings.Contains(got, "<strong>Saved</strong>") {
		t.Fatalf("expected formatting to survive: %s", got)
	}
	if view.SafeHTML("<script>x</script>") != nil {
		t.Fatalf("expected nil for markup that sanitises to nothing")
	}
	wrapper := view.El("p", nil, view.SafeHTML("<em>Hi</em> there"))
	if wrapper.AccessibleText() != "Hi there" {
		t.Fatalf("unexpected accessible text %q", wrapper.AccessibleText())
	}
}
