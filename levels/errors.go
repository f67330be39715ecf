package levels

import (
	"fmt"
	"strings"
)

// Stage names the loading step that failed.
type Stage string

const (
	StageFetch    Stage = "fetch"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
)

// LoadError is returned by Loader.Load for any failure. Callers treat it as
// recoverable.
type LoadError struct {
	LevelID string
	Stage   Stage
	Err     error
	// Suggestions lists similar level ids when the level was not found.
	Suggestions []string
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("levels: %s %s: %v", e.Stage, e.LevelID, e.Err)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
