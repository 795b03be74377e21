package reporter

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/pixelband/jpegfit/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu            sync.Mutex
	progress      *progressbar.ProgressBar
	lastIteration int
	cyan          *color.Color
	green         *color.Color
	yellow        *color.Color
	red           *color.Color
	faint         *color.Color
	bold          *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:   color.New(color.FgCyan, color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		faint:  color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.lastIteration = 0
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("HARDWARE")
	r.printLabel(10, "Hostname:", summary.Hostname)
	r.printLabel(10, "Platform:", summary.Platform)
	r.printLabel(10, "CPUs:", strconv.Itoa(summary.NumCPU))
}

func (r *TerminalReporter) Initialization(summary InitializationSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("IMAGE")
	r.printLabel(12, "File:", summary.InputFile)
	r.printLabel(12, "Output:", summary.OutputFile)
	r.printLabel(12, "Resolution:", summary.Resolution)
	r.printLabel(12, "Size:", summary.InputSize)
}

func (r *TerminalReporter) SearchConfig(summary SearchConfigSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("SEARCH")
	const w = 16 // Width to fit "Initial quality:"
	r.printLabel(w, "Encoder:", summary.Encoder)
	r.printLabel(w, "Scorer:", summary.Scorer)
	r.printLabel(w, "Band:", summary.Band)
	r.printLabel(w, "Initial quality:", strconv.Itoa(summary.InitialQuality))
	r.printLabel(w, "Initial step:", strconv.Itoa(summary.InitialStep))
	r.printLabel(w, "Max iterations:", strconv.Itoa(summary.MaxIterations))
}

func (r *TerminalReporter) SearchStarted(maxIterations int) {
	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		int64(maxIterations),
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Probing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) ProbeResult(snapshot ProbeSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	if snapshot.Iteration > r.lastIteration {
		r.lastIteration = snapshot.Iteration
		_ = r.progress.Set64(int64(snapshot.Iteration))
	}

	desc := fmt.Sprintf("quality %d, score %.6f", snapshot.Quality, snapshot.Score)
	r.progress.Describe(desc)
}

func (r *TerminalReporter) SearchComplete(summary SearchSummary) {
	r.finishProgress()

	var status string
	if summary.Outcome == "converged" {
		status = r.green.Sprint(summary.Outcome)
	} else {
		status = r.yellow.Sprint(summary.Outcome)
	}
	fmt.Printf("  %s %s at quality %d after %d probes (score %.6f)\n",
		r.bold.Sprint("Search:"), status, summary.Quality, summary.Iterations, summary.Score)
}

func (r *TerminalReporter) ValidationComplete(summary ValidationSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("VALIDATION")

	hasWarnings := false
	for _, step := range summary.Steps {
		if !step.Passed && step.Warning {
			hasWarnings = true
		}
	}

	if !summary.Passed {
		fmt.Printf("  %s\n", r.red.Sprint("Validation failed"))
	} else if hasWarnings {
		fmt.Printf("  %s\n", r.yellow.Sprint("Passed with warnings"))
	} else {
		fmt.Printf("  %s\n", r.green.Add(color.Bold).Sprint("All checks passed"))
	}

	// Find the longest step name for alignment
	maxLen := 0
	for _, step := range summary.Steps {
		if len(step.Name) > maxLen {
			maxLen = len(step.Name)
		}
	}

	for _, step := range summary.Steps {
		var status string
		switch {
		case step.Passed:
			status = r.green.Sprint("✓")
		case step.Warning:
			status = r.yellow.Sprint("!")
		default:
			status = r.red.Sprint("✗")
		}
		// Pad the name for alignment
		paddedName := fmt.Sprintf("%-*s", maxLen, step.Name)
		fmt.Printf("  - %s: %s (%s)\n", paddedName, status, step.Details)
	}
}

func (r *TerminalReporter) EncodingComplete(summary EncodingOutcome) {
	reduction := util.CalculateSizeReduction(summary.OriginalSize, summary.EncodedSize)

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	fmt.Printf("  %s %s\n", r.bold.Sprint("Output:"), r.bold.Sprint(summary.OutputFile))
	fmt.Printf("  %s %s -> %s\n",
		r.bold.Sprint("Size:"),
		util.FormatBytes(summary.OriginalSize),
		util.FormatBytes(summary.EncodedSize))
	fmt.Printf("  %s %s\n", r.bold.Sprint("Reduction:"), r.bold.Sprintf("%.1f%%", reduction))
	fmt.Printf("  %s quality %d, score %.6f (%s)\n",
		r.bold.Sprint("Search:"), summary.Quality, summary.Score, summary.Outcome)
	fmt.Printf("  %s %s\n", r.bold.Sprint("Time:"), util.FormatDuration(summary.TotalTime.Seconds()))
	fmt.Printf("  %s %s\n", r.bold.Sprint("Saved to"), r.green.Sprint(summary.OutputPath))
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	fmt.Println()
	fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Processing %d files -> %s\n", info.TotalFiles, r.bold.Sprint(info.OutputDir))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	fmt.Printf("\nFile %s of %d\n",
		r.bold.Sprint(context.CurrentFile),
		context.TotalFiles)
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	reduction := util.CalculateSizeReduction(summary.TotalOriginalSize, summary.TotalEncodedSize)

	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d succeeded", summary.SuccessfulCount, summary.TotalFiles))
	fmt.Printf("  Validation: %s passed, %s failed\n",
		r.green.Sprint(summary.ValidationPassedCount),
		r.red.Sprint(summary.ValidationFailedCount))
	fmt.Printf("  Size: %s -> %s (%.1f%% reduction)\n",
		util.FormatBytes(summary.TotalOriginalSize),
		util.FormatBytes(summary.TotalEncodedSize),
		reduction)
	fmt.Printf("  Time: %s\n", util.FormatDuration(summary.TotalDuration.Seconds()))

	for _, result := range summary.FileResults {
		fmt.Printf("  - %s: quality %d, %s (%.1f%% reduction)\n",
			result.Filename, result.Quality, result.Outcome, result.Reduction)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	fmt.Printf("  %s %s\n", r.faint.Sprint("·"), r.faint.Sprint(message))
}
