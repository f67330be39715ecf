package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestTuningReloaderSkipsUnchangedFile(t *testing.T) {
	dir := t.TempDir()
	SetDiskDir(dir)
	defer SetDiskDir("prefabs")
	path := filepath.Join(dir, TuningFile)

	write := func(directHit string, mtime time.Time) {
		t.Helper()
		if err := os.WriteFile(path, []byte("scoring:\n  direct_hit: "+directHit+"\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	base := time.Unix(1_700_000_000, 0)
	write("2000", base)

	r := &TuningReloader{
		watcher: &Watcher{Events: make(chan string, 4), Errors: make(chan error, 1)},
		logger:  log.WithPrefix("prefabs"),
	}
	steps := []struct {
		name   string
		events []string
		edit   func()
		want   int
	}{
		{name: "first change reloads", events: []string{path}, want: 2000},
		{name: "no events", want: 0},
		{name: "other file", events: []string{filepath.Join(dir, "levels.yaml")}, want: 0},
		{name: "repeat event for the same write", events: []string{path, path}, want: 0},
		{name: "newer write reloads", events: []string{path}, edit: func() { write("3000", base.Add(time.Second)) }, want: 3000},
	}
	for _, st := range steps {
		if st.edit != nil {
			st.edit()
		}
		for _, e := range st.events {
			r.watcher.Events <- e
		}
		got, ok := r.Poll()
		if st.want == 0 {
			if ok {
				t.Fatalf("%s: unexpected reload %+v", st.name, got.Scoring)
			}
			continue
		}
		if !ok {
			t.Fatalf("%s: expected a reload", st.name)
		}
		if got.Scoring.DirectHit != st.want {
			t.Fatalf("%s: direct hit = %d, want %d", st.name, got.Scoring.DirectHit, st.want)
		}
	}
}
