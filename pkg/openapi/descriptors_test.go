package openapi_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/openapi"
)

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func order(n int) map[string]any  { return hint(map[string]any{"order": float64(n)}) }

func hint(h map[string]any) map[string]any {
	return map[string]any{openapi.ExtensionKey: h}
}

func signupOperation() openapi.Operation {
	return openapi.Operation{
		ID:      "createAccount",
		Method:  "POST",
		Path:    "/accounts",
		Summary: "Create account",
		RequestBody: openapi.Schema{
			Type:     "object",
			Required: []string{"email", "plan", "terms"},
			Properties: map[string]openapi.Schema{
				"email": {Type: "string", Format: "email", Extensions: order(1)},
				"firstName": {
					Type:       "string",
					MinLength:  intPtr(2),
					Extensions: hint(map[string]any{"order": float64(2), "row": "name"}),
				},
				"lastName": {
					Type:       "string",
					Extensions: hint(map[string]any{"order": float64(3), "row": "name"}),
				},
				"plan": {
					Type:       "string",
					Enum:       []any{"basic", "pro"},
					Default:    "pro",
					Extensions: order(4),
				},
				"seats": {
					Type:       "integer",
					Minimum:    floatPtr(1),
					Maximum:    floatPtr(10),
					Default:    float64(3),
					Extensions: order(5),
				},
				"bio":        {Type: "string", MaxLength: intPtr(1000), Description: "Tell us about you"},
				"birthday":   {Type: "string", Format: "date"},
				"terms":      {Type: "boolean", Title: "Accept terms"},
				"newsletter": {Type: "boolean", Extensions: hint(map[string]any{"type": "switch"})},
				"tags": {
					Type:  "array",
					Items: &openapi.Schema{Type: "string", Enum: []any{"go", "web"}},
				},
				"address": {
					Type: "object",
					Properties: map[string]openapi.Schema{
						"city": {Type: "string"},
					},
				},
				"internal": {Type: "string", Extensions: hint(map[string]any{"hidden": true})},
			},
		},
	}
}

func TestDescriptors_MapsSchemaToFields(t *testing.T) {
	form, err := openapi.Descriptors(signupOperation())
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}

	type entry struct {
		Names []string
		Types []model.FieldType
	}
	var got []entry
	for _, e := range form.Fields {
		var row entry
		for _, f := range e.Fields() {
			name := f.Name
			if name == "" {
				name = f.ID
			}
			row.Names = append(row.Names, name)
			row.Types = append(row.Types, f.Type)
		}
		got = append(got, row)
	}

	want := []entry{
		{Names: []string{"email"}, Types: []model.FieldType{model.FieldTypeEmail}},
		{Names: []string{"firstName", "lastName"}, Types: []model.FieldType{model.FieldTypeText, model.FieldTypeText}},
		{Names: []string{"plan"}, Types: []model.FieldType{model.FieldTypeSelect}},
		{Names: []string{"seats"}, Types: []model.FieldType{model.FieldTypeNumber}},
		{Names: []string{"address"}, Types: []model.FieldType{model.FieldTypeHeader}},
		{Names: []string{"address.city"}, Types: []model.FieldType{model.FieldTypeText}},
		{Names: []string{"bio"}, Types: []model.FieldType{model.FieldTypeTextarea}},
		{Names: []string{"birthday"}, Types: []model.FieldType{model.FieldTypeDatepicker}},
		{Names: []string{"newsletter"}, Types: []model.FieldType{model.FieldTypeSwitch}},
		{Names: []string{"tags"}, Types: []model.FieldType{model.FieldTypeSelect}},
		{Names: []string{"terms"}, Types: []model.FieldType{model.FieldTypeCheckbox}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	if form.Label != "Create account" {
		t.Fatalf("expected label from summary, got %q", form.Label)
	}
	if len(form.Actions) != 1 || form.Actions[0].Kind() != model.ActionSubmit {
		t.Fatalf("expected one submit action, got %+v", form.Actions)
	}
}

func TestDescriptors_FieldDetails(t *testing.T) {
	form, err := openapi.Descriptors(signupOperation())
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
	fields := make(map[string]model.Field)
	for _, f := range form.AllFields() {
		fields[f.Key()] = f
	}

	if f := fields["firstName"]; f.Label != "First name" {
		t.Fatalf("expected humanized label, got %q", f.Label)
	}
	if f := fields["terms"]; f.Label != "Accept terms" || !f.Required {
		t.Fatalf("expected titled required checkbox, got %+v", f)
	}
	if f := fields["bio"]; f.HelperMessage != "Tell us about you" {
		t.Fatalf("expected description as helper message, got %q", f.HelperMessage)
	}
	if f := fields["plan"]; f.SelectOptions == nil || !f.SelectOptions.Single {
		t.Fatalf("expected single select for enum, got %+v", f.SelectOptions)
	}
	if f := fields["tags"]; f.SelectOptions == nil || f.SelectOptions.Single || !f.SelectOptions.ShowSelectedItems {
		t.Fatalf("expected multi select for array enum, got %+v", f.SelectOptions)
	}
	if f := fields["seats"]; f.NumberOptions == nil || f.NumberOptions.Step != 1 || *f.NumberOptions.Max != 10 {
		t.Fatalf("expected integer number options, got %+v", f.NumberOptions)
	}
	if _, ok := fields["internal"]; ok {
		t.Fatalf("hidden property should be skipped")
	}
}

func TestDescriptors_Validation(t *testing.T) {
	form, err := openapi.Descriptors(signupOperation())
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
	fields := make(map[string]model.Field)
	for _, f := range form.AllFields() {
		fields[f.Key()] = f
	}

	cases := []struct {
		field string
		value any
		want  string
	}{
		{"email", "", "This field is required"},
		{"email", "nope", "Invalid email address"},
		{"email", "a@b.co", ""},
		{"firstName", "A", "Must be at least 2 characters"},
		{"firstName", "", ""},
		{"seats", float64(11), "Must be at most 10"},
		{"seats", float64(4), ""},
		{"terms", false, "You must accept this"},
		{"plan", []model.MenuOption{}, "This field is required"},
		{"tags", []model.MenuOption{}, ""},
	}
	for _, tc := range cases {
		f := fields[tc.field]
		if f.Validate == nil {
			if tc.want != "" {
				t.Fatalf("%s: expected validator", tc.field)
			}
			continue
		}
		if got := f.Validate(tc.value); got != tc.want {
			t.Fatalf("%s(%v): got %q want %q", tc.field, tc.value, got, tc.want)
		}
	}
}

func TestDescriptors_InitialValues(t *testing.T) {
	op := signupOperation()
	birthday := op.RequestBody.Properties["birthday"]
	birthday.Default = "2000-01-02"
	op.RequestBody.Properties["birthday"] = birthday

	form, err := openapi.Descriptors(op)
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
	want := map[string]any{
		"plan":     []model.MenuOption{{Label: "Pro", Value: "pro"}},
		"seats":    float64(3),
		"birthday": time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, form.InitialValues); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
}

func TestDescriptors_OperationHints(t *testing.T) {
	op := signupOperation()
	op.Extensions = hint(map[string]any{"label": "Join", "testId": "join", "submit": "Sign up", "loadingText": "Signing up..."})

	form, err := openapi.Descriptors(op)
	if err != nil {
		t.Fatalf("Descriptors: %v", err)
	}
	if form.Label != "Join" || form.TestID != "join" {
		t.Fatalf("unexpected form identity: %q %q", form.Label, form.TestID)
	}
	action := form.Actions[0]
	if action.Title != "Sign up" || action.LoadingText != "Signing up..." {
		t.Fatalf("unexpected submit action: %+v", action)
	}
}

func TestDescriptors_RejectsNonObjectBodies(t *testing.T) {
	cases := map[string]openapi.Schema{
		"array body": {Type: "array", Items: &openapi.Schema{Type: "string"}},
		"empty body": {Type: "object"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := openapi.Descriptors(openapi.Operation{ID: "op", RequestBody: body})
			if err == nil || !strings.Contains(err.Error(), `operation "op"`) {
				t.Fatalf("expected operation error, got %v", err)
			}
		})
	}
}

func TestPropertyNames_OrderHintThenName(t *testing.T) {
	s := openapi.Schema{Properties: map[string]openapi.Schema{
		"b": {}, "a": {}, "z": {Extensions: order(1)}, "y": {Extensions: order(0)},
	}}
	if diff := cmp.Diff([]string{"y", "z", "a", "b"}, s.PropertyNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
