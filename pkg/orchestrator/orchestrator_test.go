package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/schema"
)

const contactsAPI = `
openapi: 3.0.3
info:
  title: Contacts
  version: "1.0"
paths:
  /contacts:
    post:
      operationId: createContact
      summary: New contact
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: {type: string, x-dynform: {order: 1}}
                email: {type: string, format: email, x-dynform: {order: 2}}
      responses:
        "201": {description: created}
    get:
      operationId: listContacts
      responses:
        "200": {description: ok}
`

const feedbackForm = `
forms:
  feedback:
    testId: feedback
    label: Feedback
    fields:
      - name: comment
        type: textarea
        label: Comment
    actions:
      - title: Send
        type: submit
    rules:
      comment: {required: true}
`

func contactsDocument(t *testing.T) *pkgopenapi.Document {
	t.Helper()
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile("contacts.yaml"), []byte(contactsAPI))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return &doc
}

type captureRenderer struct {
	form    *form.Form
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	r.form = f
	r.options = opts
	return []byte(f.TestID()), nil
}

func newCapture(t *testing.T, options ...orchestrator.Option) (*orchestrator.Orchestrator, *captureRenderer) {
	t.Helper()
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	base := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	}
	return orchestrator.New(append(base, options...)...), renderer
}

func TestGenerate_OperationToHTML(t *testing.T) {
	orch := orchestrator.New()
	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Document:    contactsDocument(t),
		OperationID: "createContact",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	page := string(out)
	for _, fragment := range []string{"<title>New contact</title>", `name="name"`, `type="email"`} {
		if !strings.Contains(page, fragment) {
			t.Fatalf("page missing %q:\n%s", fragment, page)
		}
	}
}

func TestGenerate_FormDocument(t *testing.T) {
	var submitted map[string]any
	orch, renderer := newCapture(t, orchestrator.WithSchemaFS(fstest.MapFS{
		"feedback.yaml": {Data: []byte(feedbackForm)},
	}))

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		FormID: "feedback",
		Bindings: schema.Bindings{OnSubmit: func(_ context.Context, values map[string]any, _ *formstate.Helpers) error {
			submitted = values
			return nil
		}},
		RenderOptions: render.RenderOptions{Values: map[string]any{"comment": "Great"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(out) != "feedback" {
		t.Fatalf("unexpected output %q", out)
	}
	if diff := cmp.Diff(map[string]any{"comment": "Great"}, renderer.options.Values); diff != "" {
		t.Fatalf("render options mismatch (-want +got):\n%s", diff)
	}

	f := renderer.form
	if err := f.Submit(context.Background()); !errors.Is(err, formstate.ErrInvalid) {
		t.Fatalf("the comment rule should block an empty submit, got %v", err)
	}
	f.Engine().SetFieldValue("comment", "Great")
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submitted["comment"] != "Great" {
		t.Fatalf("submit binding not called: %#v", submitted)
	}
	if diff := cmp.Diff([]string{"feedback"}, orch.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_AppliesTransformer(t *testing.T) {
	preset, err := orchestrator.NewJSONPresetTransformer([]byte(`{
		"label": "Add a contact",
		"initialValues": {"email": "someone@example.com"},
		"fields": {"email": {"label": "Work email", "rename": "workEmail"}}
	}`))
	if err != nil {
		t.Fatalf("NewJSONPresetTransformer: %v", err)
	}
	called := false
	orch, renderer := newCapture(t, orchestrator.WithSchemaTransformer(orchestrator.Chain(
		preset,
		orchestrator.TransformerFunc(func(_ context.Context, f *model.Form) error {
			called = true
			f.TestID = "contact"
			return nil
		}),
	)))

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Document:    contactsDocument(t),
		OperationID: "createContact",
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !called {
		t.Fatalf("expected the chained transformer to run")
	}
	cfg := renderer.form.Config()
	if cfg.Label != "Add a contact" || renderer.form.TestID() != "contact" {
		t.Fatalf("form patch missing: label=%q testId=%q", cfg.Label, renderer.form.TestID())
	}
	var email model.Field
	for _, field := range cfg.AllFields() {
		if field.Name == "workEmail" {
			email = field
		}
	}
	if email.Label != "Work email" {
		t.Fatalf("field patch missing: %+v", email)
	}
	if got := renderer.form.Engine().Value("workEmail"); got != "someone@example.com" {
		t.Fatalf("initial value not moved with the rename: %#v", got)
	}
}

func TestJSONPresetTransformer_UnknownField(t *testing.T) {
	preset, err := orchestrator.NewJSONPresetTransformerFromFS(fstest.MapFS{
		"preset.json": {Data: []byte(`{"fields": {"missing": {"label": "x"}}}`)},
	}, "preset.json")
	if err != nil {
		t.Fatalf("NewJSONPresetTransformerFromFS: %v", err)
	}
	f := model.Form{Fields: []model.Entry{model.Single(model.Field{Name: "name", Type: model.FieldTypeText})}}
	err = preset.Transform(context.Background(), &f)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := orchestrator.NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestOperations_ListsIDs(t *testing.T) {
	ids, err := orchestrator.New().Operations(context.Background(), orchestrator.Request{Document: contactsDocument(t)})
	if err != nil {
		t.Fatalf("Operations: %v", err)
	}
	if diff := cmp.Diff([]string{"createContact", "listContacts"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Errors(t *testing.T) {
	doc := contactsDocument(t)
	cases := []struct {
		name string
		req  orchestrator.Request
		want string
	}{
		{"no selector", orchestrator.Request{Document: doc}, "form id or operation id is required"},
		{"both selectors", orchestrator.Request{Document: doc, FormID: "a", OperationID: "b"}, "mutually exclusive"},
		{"unknown form", orchestrator.Request{FormID: "nope"}, `form "nope" not found`},
		{"unknown operation", orchestrator.Request{Document: doc, OperationID: "nope"}, `operation "nope" not found`},
		{"no body", orchestrator.Request{Document: doc, OperationID: "listContacts"}, "build descriptors"},
		{"no source", orchestrator.Request{OperationID: "createContact"}, "source or document is required"},
		{"unknown renderer", orchestrator.Request{Document: doc, OperationID: "createContact", Renderer: "pdf"}, `renderer "pdf"`},
	}
	orch := orchestrator.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orch.Generate(context.Background(), tc.req)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestNew_SchemaLoadErrorSurfaces(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithSchemaFS(fstest.MapFS{
		"broken.yaml": {Data: []byte("")},
	}))
	_, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "broken"})
	if err == nil || !strings.Contains(err.Error(), "load form documents") {
		t.Fatalf("expected load error, got %v", err)
	}
}
