package levels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tidwall/gjson"
)

// Loader reads level files from an fs.FS, preferring files in an optional
// disk directory so levels can be edited without rebuilding.
type Loader struct {
	fsys    fs.FS
	diskDir string
}

// NewLoader returns a loader over fsys. diskDir may be empty.
func NewLoader(fsys fs.FS, diskDir string) *Loader {
	return &Loader{fsys: fsys, diskDir: diskDir}
}

// Default returns a loader over the embedded levels with a "levels" disk
// override next to the working directory.
func Default() *Loader {
	return NewLoader(LevelsFS, "levels")
}

// Load reads, decodes and validates the level id. id may be a bare id, a
// file name or a path ending in .json. Every error is a *LoadError.
func (l *Loader) Load(ctx context.Context, id string) (*Description, error) {
	id = CleanID(id)
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{LevelID: id, Stage: StageFetch, Err: err}
	}

	data, err := l.read(id + ".json")
	if err != nil {
		le := &LoadError{LevelID: id, Stage: StageFetch, Err: err}
		if errors.Is(err, fs.ErrNotExist) {
			le.Suggestions = l.Suggest(id)
		}
		return nil, le
	}
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{LevelID: id, Stage: StageFetch, Err: err}
	}

	desc, stage, err := decode(data)
	if err != nil {
		return nil, &LoadError{LevelID: id, Stage: stage, Err: err}
	}
	return desc, nil
}

// Parse decodes and validates a level from raw JSON.
func Parse(data []byte) (*Description, error) {
	desc, _, err := decode(data)
	return desc, err
}

func decode(data []byte) (*Description, Stage, error) {
	if !gjson.ValidBytes(data) {
		return nil, StageParse, errors.New("malformed json")
	}
	if err := checkRequired(data); err != nil {
		return nil, StageValidate, err
	}
	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, StageParse, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, StageValidate, err
	}
	return &desc, StageValidate, nil
}

var (
	requiredNumbers = []string{
		"world.gravity", "world.wind",
		"camera.startX", "camera.startY", "camera.minX", "camera.maxX",
		"slingshot.x", "slingshot.y", "slingshot.maxPull", "slingshot.powerK",
	}
	blockNumbers  = []string{"x", "y", "w", "h", "hp"}
	targetNumbers = []string{"x", "y", "r"}
)

// checkRequired rejects documents with missing keys or wrongly typed
// values, which json.Unmarshal would otherwise turn into zero values.
func checkRequired(data []byte) error {
	var errs []error
	missing := func(p string) {
		errs = append(errs, fmt.Errorf("%s is required", p))
	}
	wantType := func(res gjson.Result, p string, typ gjson.Type) {
		if !res.Exists() {
			missing(p)
			return
		}
		if res.Type != typ {
			errs = append(errs, fmt.Errorf("%s must be a %s", p, typeName(typ)))
		}
	}

	root := gjson.ParseBytes(data)
	wantType(root.Get("id"), "id", gjson.String)
	for _, p := range requiredNumbers {
		wantType(root.Get(p), p, gjson.Number)
	}

	dt := root.Get("goals.destroyTargets")
	if !dt.Exists() {
		missing("goals.destroyTargets")
	} else if dt.Type != gjson.True && dt.Type != gjson.False {
		errs = append(errs, errors.New("goals.destroyTargets must be a boolean"))
	}
	stars := root.Get("goals.scoreStars")
	if !stars.IsArray() || len(stars.Array()) != 3 {
		errs = append(errs, errors.New("goals.scoreStars must be an array of 3 numbers"))
	}

	for _, key := range []string{"birds", "blocks", "targets"} {
		arr := root.Get(key)
		if !arr.IsArray() {
			errs = append(errs, fmt.Errorf("%s must be an array", key))
			continue
		}
		for i, el := range arr.Array() {
			prefix := fmt.Sprintf("%s[%d]", key, i)
			switch key {
			case "birds":
				wantType(el.Get("type"), prefix+".type", gjson.String)
			case "blocks":
				wantType(el.Get("shape"), prefix+".shape", gjson.String)
				wantType(el.Get("mat"), prefix+".mat", gjson.String)
				for _, f := range blockNumbers {
					wantType(el.Get(f), prefix+"."+f, gjson.Number)
				}
			case "targets":
				wantType(el.Get("shape"), prefix+".shape", gjson.String)
				wantType(el.Get("mat"), prefix+".mat", gjson.String)
				for _, f := range targetNumbers {
					wantType(el.Get(f), prefix+"."+f, gjson.Number)
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func typeName(t gjson.Type) string {
	switch t {
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		return t.String()
	}
}

func (l *Loader) read(name string) ([]byte, error) {
	if l.diskDir != "" {
		if data, err := os.ReadFile(filepath.Join(l.diskDir, name)); err == nil {
			return data, nil
		}
	}
	if l.fsys == nil {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(l.fsys, name)
}

// IDs lists the available level ids in order.
func (l *Loader) IDs() []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(names []string) {
		for _, n := range names {
			id := CleanID(n)
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if l.fsys != nil {
		names, _ := fs.Glob(l.fsys, "*.json")
		add(names)
	}
	if l.diskDir != "" {
		names, _ := filepath.Glob(filepath.Join(l.diskDir, "*.json"))
		add(names)
	}
	sort.Strings(ids)
	return ids
}

// Next returns the id after id in level order.
func (l *Loader) Next(id string) (string, bool) {
	id = CleanID(id)
	ids := l.IDs()
	for i, other := range ids {
		if other == id && i+1 < len(ids) {
			return ids[i+1], true
		}
	}
	return "", false
}

// Suggest returns up to three known ids resembling id.
func (l *Loader) Suggest(id string) []string {
	ids := l.IDs()
	ranks := fuzzy.RankFindNormalizedFold(id, ids)
	sort.Sort(ranks)
	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	if len(out) == 0 {
		for _, other := range ids {
			if fuzzy.LevenshteinDistance(id, other) <= 3 {
				out = append(out, other)
			}
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// CleanID strips directories and the .json extension from a level name.
func CleanID(name string) string {
	s := path.Base(filepath.ToSlash(name))
	return strings.TrimSuffix(s, ".json")
}
