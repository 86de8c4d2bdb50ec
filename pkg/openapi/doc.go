// Package openapi exposes the loader and parser contracts for OpenAPI
// documents and derives form descriptors from an operation's request body.
// Implementations live under internal/openapi so kin-openapi stays hidden
// from consumers.
package openapi
