package schema_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/schema"
)

func loadFixtures(t *testing.T) *schema.Store {
	t.Helper()
	store, err := schema.LoadFS(os.DirFS("testdata/forms"))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	return store
}

func TestLoadFS_CollectsFormsAcrossFiles(t *testing.T) {
	store := loadFixtures(t)

	if diff := cmp.Diff([]string{"contact", "newsletter", "signup"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	contact, ok := store.Form("contact")
	if !ok {
		t.Fatalf("contact form missing")
	}
	if contact.Source != "nested/contact.json" {
		t.Fatalf("source = %q", contact.Source)
	}
	if _, ok := store.Form("missing"); ok {
		t.Fatalf("unexpected form")
	}
}

func TestLoadFS_DecodesEntriesAndGroups(t *testing.T) {
	doc, _ := loadFixtures(t).Form("signup")

	var keys []string
	for _, entry := range doc.Form.Fields {
		keys = append(keys, entry.Key())
	}
	want := []string{"account", "firstName-lastName", "email", "plan", "seats", "terms"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("entry keys mismatch (-want +got):\n%s", diff)
	}
	if !doc.Form.Fields[1].IsGroup() {
		t.Fatalf("expected a row group for the name fields")
	}
	if doc.Form.Style["max-width"] != "480px" {
		t.Fatalf("style not decoded: %v", doc.Form.Style)
	}
	if doc.Form.Actions[1].Kind() != model.ActionSubmit {
		t.Fatalf("expected submit action, got %+v", doc.Form.Actions[1])
	}
}

func TestDocument_ConfigAttachesRules(t *testing.T) {
	doc, _ := loadFixtures(t).Form("signup")

	cancelled := false
	f, err := form.New(doc.Config(schema.Bindings{
		Actions: map[string]func(){"cancel": func() { cancelled = true }},
	}))
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	engine := f.Engine()

	want := map[string]string{
		"email": "This field is required",
		"terms": "Please accept the terms",
	}
	if diff := cmp.Diff(want, engine.ValidateForm()); diff != "" {
		t.Fatalf("validation mismatch (-want +got):\n%s", diff)
	}

	engine.SetFieldValue("firstName", "A")
	if got := engine.ValidateField("firstName"); got != "Too short" {
		t.Fatalf("firstName = %q", got)
	}
	engine.SetFieldValue("seats", float64(80))
	if got := engine.ValidateField("seats"); got != "Must be at most 50" {
		t.Fatalf("seats = %q", got)
	}

	doc2 := f.Document()
	cancel := doc2.Root().ByTestID("cancel")
	if cancel == nil {
		t.Fatalf("cancel button not rendered")
	}
	if err := doc2.Click(cancel); err != nil {
		t.Fatalf("click: %v", err)
	}
	if !cancelled {
		t.Fatalf("cancel binding not invoked")
	}
}

func TestDocument_ConfigLeavesUnboundButtonsToFormNew(t *testing.T) {
	doc, _ := loadFixtures(t).Form("signup")
	if _, err := form.New(doc.Config(schema.Bindings{})); err == nil {
		t.Fatalf("expected unbound cancel button to fail")
	}

	var fallback []string
	cfg := doc.Config(schema.Bindings{Fallback: func(a model.Action) { fallback = append(fallback, a.Title) }})
	f, err := form.New(cfg)
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	d := f.Document()
	cancel := d.Root().ByTestID("cancel")
	if cancel == nil {
		t.Fatalf("cancel button not rendered")
	}
	if err := d.Click(cancel); err != nil {
		t.Fatalf("click: %v", err)
	}
	if diff := cmp.Diff([]string{"Cancel"}, fallback); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_ConfigMarksRuleRequiredFields(t *testing.T) {
	doc, _ := loadFixtures(t).Form("contact")
	cfg := doc.Config(schema.Bindings{})
	for _, field := range cfg.AllFields() {
		if field.Name == "message" && (!field.Required || field.Validate == nil) {
			t.Fatalf("message should be required with a validator: %+v", field)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		data   string
		want   string
	}{
		{"empty", "empty.yaml", "  ", "schema: file empty.yaml is empty"},
		{"no forms", "none.yaml", "label: nothing", "schema: file none.yaml defines no forms"},
		{
			"unknown rule field",
			"rules.yaml",
			"fields: [{name: a, type: text}]\nrules: {b: {required: true}}",
			`schema: form "rules" (file rules.yaml) declares rules for unknown field "b"`,
		},
		{
			"bad pattern",
			"pattern.yaml",
			"fields: [{name: a, type: text}]\nrules: {a: {pattern: \"(\"}}",
			`field "a": pattern "("`,
		},
		{
			"inverted range",
			"range.json",
			`{"fields": [{"name": "n", "type": "number"}], "rules": {"n": {"min": 5, "max": 1}}}`,
			"min 5 exceeds max 1",
		},
		{
			"mixed layout",
			"mixed.yaml",
			"fields: [{name: a, type: text}]\nforms: {x: {fields: [{name: b, type: text}]}}",
			"mixes top-level fields with forms",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tc.data), tc.source)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParse_TopLevelFormUsesFileName(t *testing.T) {
	docs, err := schema.Parse([]byte("fields: [{name: q, type: text}]"), "forms/search.yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "search" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
}

func TestLoadFS_DuplicateIDs(t *testing.T) {
	files := fstest.MapFS{
		"a.yaml": {Data: []byte("id: dup\nfields: [{name: a, type: text}]")},
		"b.yaml": {Data: []byte("id: dup\nfields: [{name: b, type: text}]")},
	}
	if _, err := schema.LoadFS(files); err == nil || !strings.Contains(err.Error(), `duplicate form "dup"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	store, err := schema.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("nil fs should give an empty store, got %v %v", store, err)
	}
}

func TestLoadFS_SkipsFilesWithoutForms(t *testing.T) {
	files := fstest.MapFS{
		"theme.yml":   {Data: []byte("name: acme\ntokens: {color-primary: \"#123456\"}")},
		"search.yaml": {Data: []byte("fields: [{name: q, type: text}]")},
	}
	store, err := schema.LoadFS(files)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff([]string{"search"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	_, err = schema.Parse([]byte("label: nothing"), "none.yaml")
	if !errors.Is(err, schema.ErrNoForms) {
		t.Fatalf("expected ErrNoForms, got %v", err)
	}
}
