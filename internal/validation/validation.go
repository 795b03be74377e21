// Package validation provides post-encode validation checks.
package validation

import (
	"fmt"

	"github.com/pixelband/jpegfit/internal/raster"
	"github.com/pixelband/jpegfit/internal/util"
)

// Options contains the expectations the output is checked against.
type Options struct {
	// InputSize is the size of the source file in bytes.
	InputSize uint64

	// ExpectedDimensions is the source width and height the output
	// must preserve.
	ExpectedDimensions [2]int

	// FinalScore is the dissimilarity score re-measured against the
	// written output, or nil when no score could be measured.
	FinalScore *float64

	// BandLower and BandUpper bound the acceptable score range,
	// inclusive of the lower bound and exclusive of the upper.
	BandLower float64
	BandUpper float64

	// SearchExhausted indicates the quality search ran out of
	// iterations without converging. An out-of-band score is then
	// reported as a warning rather than a failure.
	SearchExhausted bool
}

// Result contains the overall validation result.
type Result struct {
	IsNonEmpty          bool
	IsDecodable         bool
	IsDimensionsCorrect bool
	IsSizeReduced       bool
	IsScoreInBand       bool

	// Details
	InputSize          uint64
	OutputSize         uint64
	ActualDimensions   *[2]int
	ExpectedDimensions *[2]int
	FinalScore         *float64
	SearchExhausted    bool
	SizeMessage        string
	DecodeMessage      string
	DimensionsMessage  string
	ReductionMessage   string
	ScoreMessage       string

	scoreWarning bool
}

// ValidationStep represents a single validation check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Warning bool
	Details string
}

// ValidateOutput checks the written output bytes against the source
// expectations. Checks that cannot be measured, such as dimensions of
// an undecodable output, pass with a skip message so the root cause is
// the only reported failure.
func ValidateOutput(output []byte, opts Options) *Result {
	result := &Result{
		InputSize:          opts.InputSize,
		OutputSize:         uint64(len(output)),
		ExpectedDimensions: &opts.ExpectedDimensions,
		FinalScore:         opts.FinalScore,
		SearchExhausted:    opts.SearchExhausted,
	}

	result.IsNonEmpty, result.SizeMessage = validateNonEmpty(result.OutputSize)

	if !result.IsNonEmpty {
		result.IsDecodable = true
		result.DecodeMessage = "Decode check skipped"
	} else if decoded, err := raster.Normalize(output); err != nil {
		result.IsDecodable = false
		result.DecodeMessage = "Output could not be decoded"
	} else {
		result.IsDecodable = true
		result.DecodeMessage = "Output decodes cleanly"
		dims := [2]int{decoded.Width, decoded.Height}
		result.ActualDimensions = &dims
	}

	if result.ActualDimensions != nil {
		result.IsDimensionsCorrect, result.DimensionsMessage = validateDimensions(
			result.ActualDimensions[0], result.ActualDimensions[1],
			opts.ExpectedDimensions[0], opts.ExpectedDimensions[1],
		)
	} else {
		result.IsDimensionsCorrect = true
		result.DimensionsMessage = "Dimension check skipped"
	}

	result.IsSizeReduced, result.ReductionMessage = validateSizeReduction(
		opts.InputSize, result.OutputSize,
	)

	if opts.FinalScore != nil {
		result.IsScoreInBand, result.scoreWarning, result.ScoreMessage = validateScore(
			*opts.FinalScore, opts.BandLower, opts.BandUpper, opts.SearchExhausted,
		)
	} else {
		result.IsScoreInBand = true
		result.ScoreMessage = "Score check skipped"
	}

	return result
}

// IsValid returns true if all validation checks passed. Warning-class
// checks, size reduction and an out-of-band score after an exhausted
// search, do not fail the result.
func (r *Result) IsValid() bool {
	return r.IsNonEmpty &&
		r.IsDecodable &&
		r.IsDimensionsCorrect &&
		(r.IsScoreInBand || r.scoreWarning)
}

// GetValidationSteps returns all validation steps with results.
func (r *Result) GetValidationSteps() []ValidationStep {
	steps := []ValidationStep{
		{
			Name:    "Output file",
			Passed:  r.IsNonEmpty,
			Details: r.SizeMessage,
		},
		{
			Name:    "Decode check",
			Passed:  r.IsDecodable,
			Details: r.DecodeMessage,
		},
		{
			Name:    "Dimensions",
			Passed:  r.IsDimensionsCorrect,
			Details: r.DimensionsMessage,
		},
		{
			Name:    "Size reduction",
			Passed:  r.IsSizeReduced,
			Warning: !r.IsSizeReduced,
			Details: r.ReductionMessage,
		},
		{
			Name:    "Quality target",
			Passed:  r.IsScoreInBand,
			Warning: r.scoreWarning,
			Details: r.ScoreMessage,
		},
	}
	return steps
}

// GetFailures returns descriptions of failed validation checks.
func (r *Result) GetFailures() []string {
	var failures []string
	for _, step := range r.GetValidationSteps() {
		if !step.Passed && !step.Warning {
			failures = append(failures, step.Name+": "+step.Details)
		}
	}
	return failures
}

// GetWarnings returns descriptions of checks that failed as warnings.
func (r *Result) GetWarnings() []string {
	var warnings []string
	for _, step := range r.GetValidationSteps() {
		if !step.Passed && step.Warning {
			warnings = append(warnings, step.Name+": "+step.Details)
		}
	}
	return warnings
}

func validateNonEmpty(outputSize uint64) (bool, string) {
	if outputSize == 0 {
		return false, "Output file is empty"
	}
	return true, "Output size: " + util.FormatBytes(outputSize)
}

func validateDimensions(actualW, actualH, expectedW, expectedH int) (bool, string) {
	if actualW == expectedW && actualH == expectedH {
		return true, fmt.Sprintf("Dimensions match: %dx%d", actualW, actualH)
	}
	return false, fmt.Sprintf(
		"Dimension mismatch: got %dx%d, expected %dx%d",
		actualW, actualH, expectedW, expectedH,
	)
}

func validateSizeReduction(inputSize, outputSize uint64) (bool, string) {
	if outputSize < inputSize {
		reduction := util.CalculateSizeReduction(inputSize, outputSize)
		return true, fmt.Sprintf(
			"Size reduced by %.1f%% (%s → %s)",
			reduction, util.FormatBytes(inputSize), util.FormatBytes(outputSize),
		)
	}
	return false, fmt.Sprintf(
		"Output is not smaller than input (%s → %s)",
		util.FormatBytes(inputSize), util.FormatBytes(outputSize),
	)
}

// validateScore checks the re-measured score against the band. The
// second return value marks an out-of-band score as a warning when the
// search exhausted its iterations, since a best-effort result is then
// expected to land outside the band.
func validateScore(score, lower, upper float64, exhausted bool) (bool, bool, string) {
	if score >= lower && score < upper {
		return true, false, fmt.Sprintf(
			"Score %.6f within band [%.6f, %.6f)", score, lower, upper,
		)
	}
	if exhausted {
		return false, true, fmt.Sprintf(
			"Score %.6f outside band [%.6f, %.6f) after exhausting iterations",
			score, lower, upper,
		)
	}
	return false, false, fmt.Sprintf(
		"Score %.6f outside band [%.6f, %.6f)", score, lower, upper,
	)
}
