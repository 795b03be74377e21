package search

import "math"

// Probe represents a single measurement at a specific quality level.
type Probe struct {
	// Quality is the quality level used for this probe.
	Quality int

	// Score is the dissimilarity score measured against the source.
	Score float64
}

// State tracks the iterative quality search state for a single image.
type State struct {
	// Probes contains all completed measurements.
	Probes []Probe

	// Quality is the level the next probe will use. After the loop ends
	// it holds the last computed level, which on exhaustion was adjusted
	// once more after the final probe.
	Quality int

	// Step is the current adjustment magnitude.
	Step int

	// Score is the most recent measurement.
	Score float64

	// Round is the number of completed iterations.
	Round int
}

// NewState creates the starting state for a search. Score begins at +Inf,
// outside every valid band, so the loop always probes at least once.
func NewState(cfg Config) *State {
	return &State{
		Probes:  make([]Probe, 0, cfg.MaxIterations),
		Quality: cfg.InitialQuality,
		Step:    cfg.InitialStep,
		Score:   math.Inf(1),
	}
}

// AddProbe records a completed measurement.
func (s *State) AddProbe(quality int, score float64) {
	s.Probes = append(s.Probes, Probe{Quality: quality, Score: score})
	s.Score = score
}
