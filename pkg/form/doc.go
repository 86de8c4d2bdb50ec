// Package form turns a declarative Config into a rendered, interactive form.
//
// Each descriptor is resolved to a control kind, bound to the shared
// form-state engine and laid out in order, with row groups rendered side by
// side. The action bar routes submit actions through the engine's submit
// pipeline and button actions to their own callbacks. When any feedback
// entry is visible the form is replaced by the visible entries.
//
// A minimal form:
//
//	f, err := form.New(form.Config{
//		Form: model.Form{
//			Fields:  model.Entries(model.Field{Name: "email", Type: model.FieldTypeEmail, Label: "Email"}),
//			Actions: []model.Action{{Title: "Save", Type: model.ActionSubmit}},
//		},
//		OnSubmit: save,
//	})
//	doc := f.Document()
package form
