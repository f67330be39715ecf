package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/milk9111/slingcritter/levels"
)

func TestCheckAndReport(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json": &fstest.MapFile{Data: []byte(`{"id": "broken"`)},
	}
	l := levels.NewLoader(fsys, "")
	embedded := levels.NewLoader(levels.LevelsFS, "")

	tests := []struct {
		name     string
		loader   *levels.Loader
		ids      []string
		failed   int
		contains []string
	}{
		{
			name:     "embedded levels pass",
			loader:   embedded,
			ids:      []string{"level-001", "level-002"},
			failed:   0,
			contains: []string{"ok    level-001", "ok    level-002"},
		},
		{
			name:     "parse failure names the stage",
			loader:   l,
			ids:      []string{"broken"},
			failed:   1,
			contains: []string{"FAIL  broken [parse]"},
		},
		{
			name:     "missing level suggests close ids",
			loader:   embedded,
			ids:      []string{"level-01"},
			failed:   1,
			contains: []string{"FAIL  level-01 [fetch]", "did you mean"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			failed := report(&buf, check(context.Background(), tt.loader, tt.ids))
			if failed != tt.failed {
				t.Fatalf("failed = %d, want %d\n%s", failed, tt.failed, buf.String())
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestCheckCleansPaths(t *testing.T) {
	res := check(context.Background(), levels.NewLoader(levels.LevelsFS, ""), []string{"some/dir/level-003.json"})
	if len(res) != 1 || res[0].id != "level-003" || res[0].err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}
