package gameplay

// RunState is the mutable progress of one level attempt.
type RunState struct {
	Score            int
	BirdsRemaining   int
	TargetsRemaining int
}

func NewRunState(birds, targets int) RunState {
	return RunState{BirdsRemaining: birds, TargetsRemaining: targets}
}

// AddScore adds non-negative points.
func (r *RunState) AddScore(points int) {
	if points > 0 {
		r.Score += points
	}
}

// UseBird consumes one bird, never going below zero.
func (r *RunState) UseBird() {
	if r.BirdsRemaining > 0 {
		r.BirdsRemaining--
	}
}

// Status is the result of checking a run for completion.
type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Check decides whether the run has ended. Winning takes priority over
// losing on the same step.
func Check(r RunState, hasActiveBird bool) Status {
	if r.TargetsRemaining == 0 {
		return Won
	}
	if r.BirdsRemaining == 0 && !hasActiveBird {
		return Lost
	}
	return Playing
}

// Outcome is handed to the result screen.
type Outcome struct {
	LevelID     string
	FinalScore  int
	Stars       int
	Won         bool
	NextLevelID string
	BestScore   int
}
