// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// HardwareSummary contains host information.
type HardwareSummary struct {
	Hostname string
	Platform string
	NumCPU   int
}

// InitializationSummary describes the current file before the search.
type InitializationSummary struct {
	InputFile  string
	OutputFile string
	Resolution string
	InputSize  string
}

// SearchConfigSummary contains the quality search configuration.
type SearchConfigSummary struct {
	Encoder        string
	Scorer         string
	Band           string
	InitialQuality int
	InitialStep    int
	MaxIterations  int
}

// ProbeSnapshot contains a single probe measurement.
type ProbeSnapshot struct {
	Iteration     int
	MaxIterations int
	Quality       int
	Score         float64
	InBand        bool
}

// SearchSummary contains the outcome of a quality search.
type SearchSummary struct {
	Quality    int
	Score      float64
	Outcome    string
	Iterations int
}

// ValidationSummary contains validation results.
type ValidationSummary struct {
	Passed bool
	Steps  []ValidationStep
}

// ValidationStep represents a single validation check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Warning bool
	Details string
}

// EncodingOutcome contains final per-file results.
type EncodingOutcome struct {
	InputFile    string
	OutputFile   string
	OriginalSize uint64
	EncodedSize  uint64
	Quality      int
	Score        float64
	Outcome      string
	TotalTime    time.Duration
	OutputPath   string
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
	OutputDir  string
}

// FileProgressContext contains current file index within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	SuccessfulCount       int
	TotalFiles            int
	TotalOriginalSize     uint64
	TotalEncodedSize      uint64
	TotalDuration         time.Duration
	FileResults           []FileResult
	ValidationPassedCount int
	ValidationFailedCount int
}

// FileResult contains per-file search result.
type FileResult struct {
	Filename  string
	Quality   int
	Outcome   string
	Reduction float64
}
