package dynform

import (
	"io/fs"

	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the default stylesheet for serving next to rendered
// pages:
//
//	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(dynform.EmbeddedAssets())))
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
