package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
)

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "contact.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join("testdata", "contact.yaml")
	doc, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != string(fixture(t)) {
		t.Fatalf("payload mismatch")
	}
	if doc.Location() != path {
		t.Fatalf("location = %q, want %q", doc.Location(), path)
	}
}

func TestLoad_FS(t *testing.T) {
	files := fstest.MapFS{"specs/contact.yaml": {Data: fixture(t)}}

	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))
	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("specs/contact.yaml")); err != nil {
		t.Fatalf("load: %v", err)
	}

	bare := New(pkgopenapi.NewLoaderOptions())
	if _, err := bare.Load(context.Background(), pkgopenapi.SourceFromFS("specs/contact.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoad_HTTP(t *testing.T) {
	data := fixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	src, err := pkgopenapi.SourceFromURL(server.URL + "/contact.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src); err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled http error, got %v", err)
	}

	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	doc, err := loader.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Raw()) != len(data) {
		t.Fatalf("payload size = %d, want %d", len(doc.Raw()), len(data))
	}

	missing, _ := pkgopenapi.SourceFromURL(server.URL + "/missing")
	if _, err := loader.Load(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(pkgopenapi.NewLoaderOptions()).Load(ctx, pkgopenapi.SourceFromFile(filepath.Join("testdata", "contact.yaml")))
	if err == nil {
		t.Fatalf("expected context error")
	}
}
