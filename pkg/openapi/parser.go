package openapi

import "context"

// Parser turns a document into operations keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions toggle parser behaviour.
type ParserOptions struct {
	// ResolveReferences validates the document and resolves $ref pointers.
	ResolveReferences bool
	// AllowPartialDocuments accepts documents without operations.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for documents without operations.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ResolveReferences: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
