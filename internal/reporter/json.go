package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pixelband/jpegfit/internal/util"
)

// JSONReporter outputs one JSON event per line for machine consumers.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Hardware(summary HardwareSummary) {
	r.write(map[string]interface{}{
		"type":      "hardware",
		"hostname":  summary.Hostname,
		"platform":  summary.Platform,
		"num_cpu":   summary.NumCPU,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Initialization(summary InitializationSummary) {
	r.write(map[string]interface{}{
		"type":        "initialization",
		"input_file":  summary.InputFile,
		"output_file": summary.OutputFile,
		"resolution":  summary.Resolution,
		"input_size":  summary.InputSize,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) SearchConfig(summary SearchConfigSummary) {
	r.write(map[string]interface{}{
		"type":            "search_config",
		"encoder":         summary.Encoder,
		"scorer":          summary.Scorer,
		"band":            summary.Band,
		"initial_quality": summary.InitialQuality,
		"initial_step":    summary.InitialStep,
		"max_iterations":  summary.MaxIterations,
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) SearchStarted(maxIterations int) {
	r.write(map[string]interface{}{
		"type":           "search_started",
		"max_iterations": maxIterations,
		"timestamp":      r.timestamp(),
	})
}

// ProbeResult emits every probe. The search is bounded by its
// iteration budget, so no throttling is needed.
func (r *JSONReporter) ProbeResult(snapshot ProbeSnapshot) {
	r.write(map[string]interface{}{
		"type":           "probe_result",
		"iteration":      snapshot.Iteration,
		"max_iterations": snapshot.MaxIterations,
		"quality":        snapshot.Quality,
		"score":          snapshot.Score,
		"in_band":        snapshot.InBand,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) SearchComplete(summary SearchSummary) {
	r.write(map[string]interface{}{
		"type":       "search_complete",
		"quality":    summary.Quality,
		"score":      summary.Score,
		"outcome":    summary.Outcome,
		"iterations": summary.Iterations,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) ValidationComplete(summary ValidationSummary) {
	steps := make([]map[string]interface{}, len(summary.Steps))
	for i, step := range summary.Steps {
		steps[i] = map[string]interface{}{
			"step":    step.Name,
			"passed":  step.Passed,
			"warning": step.Warning,
			"details": step.Details,
		}
	}

	r.write(map[string]interface{}{
		"type":              "validation_complete",
		"validation_passed": summary.Passed,
		"validation_steps":  steps,
		"timestamp":         r.timestamp(),
	})
}

func (r *JSONReporter) EncodingComplete(summary EncodingOutcome) {
	reduction := util.CalculateSizeReduction(summary.OriginalSize, summary.EncodedSize)

	r.write(map[string]interface{}{
		"type":                   "encoding_complete",
		"input_file":             summary.InputFile,
		"output_file":            summary.OutputFile,
		"original_size":          summary.OriginalSize,
		"encoded_size":           summary.EncodedSize,
		"quality":                summary.Quality,
		"score":                  summary.Score,
		"outcome":                summary.Outcome,
		"output_path":            summary.OutputPath,
		"duration_seconds":       int64(summary.TotalTime.Seconds()),
		"size_reduction_percent": reduction,
		"timestamp":              r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]interface{}{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]interface{}{
		"type":        "batch_started",
		"total_files": info.TotalFiles,
		"file_list":   info.FileList,
		"output_dir":  info.OutputDir,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]interface{}{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	reduction := util.CalculateSizeReduction(summary.TotalOriginalSize, summary.TotalEncodedSize)

	fileResults := make([]map[string]interface{}, len(summary.FileResults))
	for i, result := range summary.FileResults {
		fileResults[i] = map[string]interface{}{
			"filename":          result.Filename,
			"quality":           result.Quality,
			"outcome":           result.Outcome,
			"reduction_percent": result.Reduction,
		}
	}

	r.write(map[string]interface{}{
		"type":                         "batch_complete",
		"successful_count":             summary.SuccessfulCount,
		"total_files":                  summary.TotalFiles,
		"total_original_size":          summary.TotalOriginalSize,
		"total_encoded_size":           summary.TotalEncodedSize,
		"total_duration_seconds":       int64(summary.TotalDuration.Seconds()),
		"total_size_reduction_percent": reduction,
		"validation_passed_count":      summary.ValidationPassedCount,
		"validation_failed_count":      summary.ValidationFailedCount,
		"file_results":                 fileResults,
		"timestamp":                    r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
