package dynform

import (
	internalLoader "github.com/goliatone/go-dynform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-dynform/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader. File and fs sources work out of the
// box; HTTP sources need WithHTTPClient or WithHTTPFallback.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}
