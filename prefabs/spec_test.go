package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/slingcritter/physics"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	SetDiskDir("")
	defer SetDiskDir("prefabs")

	got, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	def := DefaultTuning()
	if got.Physics != def.Physics {
		t.Fatalf("physics = %+v, want %+v", got.Physics, def.Physics)
	}
	for m, p := range def.Materials {
		if got.Materials[m] != p {
			t.Fatalf("material %s = %+v, want %+v", m, got.Materials[m], p)
		}
	}
	if got.Scoring.DirectHit != 1000 || got.Scoring.Toughness[physics.MaterialStone] != 0.5 {
		t.Fatalf("unexpected scoring %+v", got.Scoring)
	}
	if got.Slingshot.TrailSize != 40 || got.Slingshot.FollowLerp != 0.08 {
		t.Fatalf("unexpected slingshot tuning %+v", got.Slingshot)
	}
	if got.Render.Sky.Or(color.White) != (color.NRGBA{R: 0x0b, G: 0x10, B: 0x21, A: 0xff}) {
		t.Fatalf("sky colour not decoded: %v", got.Render.Sky)
	}
}

func TestDiskOverrideKeepsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	SetDiskDir(dir)
	defer SetDiskDir("prefabs")

	if err := os.WriteFile(filepath.Join(dir, TuningFile), []byte("scoring:\n  direct_hit: 2000\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if got.Scoring.DirectHit != 2000 {
		t.Fatalf("override not applied: %d", got.Scoring.DirectHit)
	}
	if got.Scoring.ChainHit != 500 || got.Physics.Gravity != 1000 {
		t.Fatalf("defaults lost: %+v %+v", got.Scoring, got.Physics)
	}
	if _, ok := ModTime(TuningFile); !ok {
		t.Fatalf("expected a mod time for the disk override")
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff8000"`, want: color.NRGBA{R: 0xff, G: 0x80, A: 0xff}},
		{in: `"00000080"`, want: color.NRGBA{A: 0x80}},
		{in: `"#fff"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		var c YAMLColor
		err := yaml.Unmarshal([]byte(tt.in), &c)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if c.Color != tt.want {
			t.Fatalf("%s decoded to %v, want %v", tt.in, c.Color, tt.want)
		}
	}
}

func TestCleanPrefabPath(t *testing.T) {
	for in, want := range map[string]string{
		"tuning.yaml":         "tuning.yaml",
		"prefabs/tuning.yaml": "tuning.yaml",
		"":                    "",
	} {
		if got := cleanPrefabPath(in); got != want {
			t.Fatalf("cleanPrefabPath(%q) = %q, want %q", in, got, want)
		}
	}
}
