package parser

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/testsupport"
)

func TestParserOperations_LintGolden(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "hints.yaml"))

	operations, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if want := []string{"createAccount", "ping"}; strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected operations %v", ids)
	}

	var b strings.Builder
	for _, id := range ids {
		for _, v := range pkgopenapi.Lint(operations[id]) {
			b.WriteString(v.String())
			b.WriteByte('\n')
		}
	}

	goldenPath := filepath.Join("testdata", "hints_lint.golden.txt")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(b.String())) {
		return
	}
	want := strings.Split(strings.TrimSpace(testsupport.MustReadGoldenString(t, goldenPath)), "\n")
	got := strings.Split(strings.TrimSpace(b.String()), "\n")
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("lint mismatch (-want +got):\n%s", diff)
	}
}
