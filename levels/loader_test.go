package levels

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

const validLevel = `{
  "id": "test-001",
  "world": { "gravity": 1, "wind": 0 },
  "camera": { "startX": 640, "startY": 360, "minX": 0, "maxX": 3200 },
  "slingshot": { "x": 200, "y": 470, "maxPull": 100, "powerK": 5 },
  "birds": [{ "type": "basic" }],
  "blocks": [{ "shape": "rect", "x": 900, "y": 550, "w": 20, "h": 100, "mat": "wood", "hp": 40 }],
  "targets": [{ "shape": "circle", "x": 950, "y": 580, "r": 18, "mat": "target" }],
  "goals": { "destroyTargets": true, "scoreStars": [1000, 2500, 3000] }
}`

func TestEmbeddedLevelsAreValid(t *testing.T) {
	l := NewLoader(LevelsFS, "")
	ids := l.IDs()
	if len(ids) == 0 {
		t.Fatalf("no embedded levels")
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			desc, err := l.Load(context.Background(), id)
			if err != nil {
				t.Fatalf("Load(%s): %v", id, err)
			}
			if desc.ID != id {
				t.Fatalf("file %s declares id %q", id, desc.ID)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		stage Stage
	}{
		{name: "malformed", data: `{"id": `, stage: StageParse},
		{name: "missing powerK", data: strings.Replace(validLevel, `, "powerK": 5`, "", 1), stage: StageValidate},
		{name: "string where number expected", data: strings.Replace(validLevel, `"hp": 40`, `"hp": "40"`, 1), stage: StageValidate},
		{name: "stars not increasing", data: strings.Replace(validLevel, `[1000, 2500, 3000]`, `[1000, 1000, 3000]`, 1), stage: StageValidate},
		{name: "camera bounds inverted", data: strings.Replace(validLevel, `"maxX": 3200`, `"maxX": -1`, 1), stage: StageValidate},
		{name: "no targets", data: strings.Replace(validLevel, `[{ "shape": "circle", "x": 950, "y": 580, "r": 18, "mat": "target" }]`, `[]`, 1), stage: StageValidate},
		{name: "unknown material", data: strings.Replace(validLevel, `"mat": "wood"`, `"mat": "ice"`, 1), stage: StageValidate},
		{name: "tiny block", data: strings.Replace(validLevel, `"w": 20`, `"w": 2`, 1), stage: StageValidate},
		{name: "gravity out of range", data: strings.Replace(validLevel, `"gravity": 1`, `"gravity": 9`, 1), stage: StageValidate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(fstest.MapFS{"bad.json": {Data: []byte(tt.data)}}, "")
			_, err := l.Load(context.Background(), "bad")
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if le.Stage != tt.stage || le.LevelID != "bad" {
				t.Fatalf("got stage %s id %q, want stage %s: %v", le.Stage, le.LevelID, tt.stage, err)
			}
			if tt.stage == StageValidate && !errors.Is(err, ErrInvalid) {
				t.Fatalf("validation failure should wrap ErrInvalid: %v", err)
			}
		})
	}
}

func TestLoadValid(t *testing.T) {
	l := NewLoader(fstest.MapFS{"test-001.json": {Data: []byte(validLevel)}}, "")
	desc, err := l.Load(context.Background(), "levels/test-001.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if desc.Slingshot.PowerK != 5 || len(desc.Blocks) != 1 || desc.Goals.ScoreStars[2] != 3000 {
		t.Fatalf("unexpected description %+v", desc)
	}
}

func TestLoadNotFoundSuggests(t *testing.T) {
	l := NewLoader(LevelsFS, "")
	_, err := l.Load(context.Background(), "level-01")
	var le *LoadError
	if !errors.As(err, &le) || le.Stage != StageFetch {
		t.Fatalf("expected fetch LoadError, got %v", err)
	}
	if !slices.Contains(le.Suggestions, "level-001") {
		t.Fatalf("expected level-001 among suggestions, got %v", le.Suggestions)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(LevelsFS, "").Load(ctx, "level-001")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNext(t *testing.T) {
	fsys := fstest.MapFS{
		"level-001.json": {Data: []byte(validLevel)},
		"level-002.json": {Data: []byte(validLevel)},
	}
	l := NewLoader(fsys, "")
	if next, ok := l.Next("level-001"); !ok || next != "level-002" {
		t.Fatalf("Next(level-001) = %q, %v", next, ok)
	}
	if _, ok := l.Next("level-002"); ok {
		t.Fatalf("last level should have no successor")
	}
}

func TestCleanID(t *testing.T) {
	tests := map[string]string{
		"level-001":             "level-001",
		"level-001.json":        "level-001",
		"levels/level-002.json": "level-002",
	}
	for in, want := range tests {
		if got := CleanID(in); got != want {
			t.Fatalf("CleanID(%q) = %q, want %q", in, got, want)
		}
	}
}
