package search

import (
	"context"

	"github.com/pixelband/jpegfit/internal/errors"
)

// Prober measures the dissimilarity produced by re-encoding the source at
// a given quality level. Implementations compose an encoder with a scorer;
// tests substitute deterministic stubs.
type Prober interface {
	Measure(ctx context.Context, quality int) (float64, error)
}

// ProbeFunc adapts a plain function to the Prober interface.
type ProbeFunc func(ctx context.Context, quality int) (float64, error)

// Measure calls f.
func (f ProbeFunc) Measure(ctx context.Context, quality int) (float64, error) {
	return f(ctx, quality)
}

// Outcome tags how a search terminated.
type Outcome int

const (
	// Converged means the final probe's score landed inside the band.
	Converged Outcome = iota
	// Exhausted means the iteration budget ran out first.
	Exhausted
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result is the final product of a search run.
type Result struct {
	// Quality is the chosen quality level. On convergence it is the level
	// whose measured score fell inside the band; on exhaustion it is the
	// last computed level, adjusted after the final probe and therefore
	// never itself measured.
	Quality int

	// Score is the dissimilarity measured by the final probe.
	Score float64

	// Outcome reports whether the band was reached.
	Outcome Outcome

	// Probes holds every measurement in order.
	Probes []Probe
}

// OnProbe is called after each measurement with the 1-indexed round.
type OnProbe func(round int, p Probe)

// InBand reports whether a score falls inside the half-open acceptance
// band [lower, upper).
func InBand(score, lower, upper float64) bool {
	return score >= lower && score < upper
}

// NextStep halves the step, holding it at a floor of 1. The halving is
// unconditional every iteration regardless of how far off-band the score
// landed, which guarantees termination inside the iteration budget at the
// cost of slower overshoot correction.
func NextStep(step int) int {
	next := step / 2
	if next < 1 {
		next = 1
	}
	return next
}

// NextQuality applies one post-probe adjustment. A score below the band
// means the candidate is still too close to the source, so quality drops
// to compress harder; a score at or above the band pushes quality back up.
// The result is clamped to the configured quality bounds.
func NextQuality(quality, step int, score float64, cfg Config) int {
	if score < cfg.LowerBound {
		quality -= step
	} else {
		quality += step
	}
	return clamp(quality, cfg.MinQuality, cfg.MaxQuality)
}

// Run executes the search: probe, decide direction, halve the step, adjust,
// repeat. It stops when a score lands inside the band or the iteration
// budget runs out. A probe failure aborts the search immediately with no
// retry; the probe sequence is fully deterministic for a fixed prober.
func Run(ctx context.Context, prober Prober, cfg Config, onProbe OnProbe) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	state := NewState(cfg)

	for state.Round < cfg.MaxIterations {
		if ctx.Err() != nil {
			return nil, errors.NewCancelledError()
		}

		score, err := prober.Measure(ctx, state.Quality)
		if err != nil {
			return nil, err
		}
		state.AddProbe(state.Quality, score)

		if onProbe != nil {
			onProbe(state.Round+1, Probe{Quality: state.Quality, Score: score})
		}

		if InBand(score, cfg.LowerBound, cfg.UpperBound) {
			return &Result{
				Quality: state.Quality,
				Score:   score,
				Outcome: Converged,
				Probes:  state.Probes,
			}, nil
		}

		state.Step = NextStep(state.Step)
		state.Quality = NextQuality(state.Quality, state.Step, score, cfg)
		state.Round++
	}

	return &Result{
		Quality: state.Quality,
		Score:   state.Score,
		Outcome: Exhausted,
		Probes:  state.Probes,
	}, nil
}

// clamp restricts a value to the range [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
