package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Operations converts a Document into operations keyed by operationId.
// Operations without an id are keyed "<method>:<path>".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if (api.Paths == nil || api.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	if p.options.ResolveReferences {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	if api.Paths != nil {
		for path, item := range api.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				if converted, ok := convertOperation(method, path, op); ok {
					operations[converted.ID] = converted
				}
			}
		}
	}
	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func convertOperation(method, path string, operation *openapi3.Operation) (pkgopenapi.Operation, bool) {
	if operation == nil {
		return pkgopenapi.Operation{}, false
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	op, err := pkgopenapi.NewOperation(id, strings.ToUpper(method), path, requestSchema(operation.RequestBody))
	if err != nil {
		return pkgopenapi.Operation{}, false
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	op.Extensions = extractExtensions(operation.Extensions)
	return op, true
}

// formMediaTypes are tried in order before falling back to any content.
var formMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if body == nil {
		return pkgopenapi.Schema{}
	}
	if body.Value == nil {
		return pkgopenapi.Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	for _, mt := range content {
		if mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return convert(ref, map[*openapi3.Schema]bool{})
}

// convert walks ref. A schema already on the current path is returned as a
// bare reference so cycles terminate.
func convert(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]bool) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	src := ref.Value
	if src == nil || visiting[src] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	visiting[src] = true
	defer delete(visiting, src)

	schema := pkgopenapi.Schema{
		Ref:              ref.Ref,
		Type:             schemaType(src.Type),
		Format:           src.Format,
		Title:            src.Title,
		Description:      src.Description,
		Default:          src.Default,
		Pattern:          src.Pattern,
		ExclusiveMinimum: src.ExclusiveMin,
		ExclusiveMaximum: src.ExclusiveMax,
		Extensions:       extractExtensions(src.Extensions),
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convert(property, visiting)
		}
	}
	if src.Items != nil {
		items := convert(src.Items, visiting)
		schema.Items = &items
	}
	if src.Min != nil {
		v := *src.Min
		schema.Minimum = &v
	}
	if src.Max != nil {
		v := *src.Max
		schema.Maximum = &v
	}
	if src.MinLength != 0 {
		v := int(src.MinLength)
		schema.MinLength = &v
	}
	if src.MaxLength != nil {
		v := int(*src.MaxLength)
		schema.MaxLength = &v
	}
	mergeAllOf(&schema, src.AllOf, visiting)
	return schema
}

// mergeAllOf folds allOf members into target: properties and required names
// are added, hints are merged with the outer schema winning.
func mergeAllOf(target *pkgopenapi.Schema, refs openapi3.SchemaRefs, visiting map[*openapi3.Schema]bool) {
	for _, ref := range refs {
		if ref == nil || ref.Value == nil {
			continue
		}
		member := convert(ref, visiting)
		if target.Type == "" {
			target.Type = member.Type
		}
		for name, prop := range member.Properties {
			if target.Properties == nil {
				target.Properties = make(map[string]pkgopenapi.Schema)
			}
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = prop
			}
		}
		for _, name := range member.Required {
			if !target.IsRequired(name) {
				target.Required = append(target.Required, name)
			}
		}
		if hints, ok := member.Extensions[pkgopenapi.ExtensionKey].(map[string]any); ok {
			merged := make(map[string]any, len(hints))
			for k, v := range hints {
				merged[k] = v
			}
			if own, ok := target.Extensions[pkgopenapi.ExtensionKey].(map[string]any); ok {
				for k, v := range own {
					merged[k] = v
				}
			}
			if target.Extensions == nil {
				target.Extensions = make(map[string]any, 1)
			}
			target.Extensions[pkgopenapi.ExtensionKey] = merged
		}
	}
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

// extractExtensions keeps the x-dynform hints and any x-dynform-* keys.
func extractExtensions(raw map[string]any) map[string]any {
	result := make(map[string]any)
	for key, value := range raw {
		switch {
		case key == pkgopenapi.ExtensionKey:
			if mapped, ok := value.(map[string]any); ok && len(mapped) > 0 {
				cloned := make(map[string]any, len(mapped))
				for k, v := range mapped {
					cloned[k] = v
				}
				result[key] = cloned
			}
		case strings.HasPrefix(key, pkgopenapi.ExtensionKey+"-"):
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
