// Package processing orchestrates the per-file re-encode pipeline.
package processing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pixelband/jpegfit/internal/cjpeg"
	"github.com/pixelband/jpegfit/internal/config"
	"github.com/pixelband/jpegfit/internal/dssim"
	"github.com/pixelband/jpegfit/internal/errors"
	"github.com/pixelband/jpegfit/internal/jpegoptim"
	"github.com/pixelband/jpegfit/internal/probe"
	"github.com/pixelband/jpegfit/internal/raster"
	"github.com/pixelband/jpegfit/internal/reporter"
	"github.com/pixelband/jpegfit/internal/search"
	"github.com/pixelband/jpegfit/internal/util"
	"github.com/pixelband/jpegfit/internal/validation"
)

// EncodeResult contains the result of a single file re-encode.
type EncodeResult struct {
	Filename         string
	Duration         time.Duration
	InputSize        uint64
	OutputSize       uint64
	Quality          int
	Score            float64
	Outcome          search.Outcome
	Iterations       int
	ValidationPassed bool
	ValidationSteps  []validation.ValidationStep
}

// ProcessImages orchestrates the quality search for a list of image files.
// Files are processed sequentially; a failure on one file is reported and
// the next file is attempted. The returned error is non-nil when the
// encoder or scorer is unavailable, the configuration is invalid, or any
// file failed.
func ProcessImages(
	ctx context.Context,
	cfg *config.Config,
	filesToProcess []string,
	targetFilenameOverride string,
	rep reporter.Reporter,
) ([]EncodeResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError(err.Error())
	}

	// The encoder is selected once; every file in the run uses the same
	// variant.
	enc, err := selectEncoder(cfg.Encoder)
	if err != nil {
		return nil, err
	}
	scorer := dssim.NewScorer()

	if err := enc.Check(); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("encoder unavailable: %v", err))
	}
	if err := scorer.Check(); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("scorer unavailable: %v", err))
	}

	return processImages(ctx, cfg, filesToProcess, targetFilenameOverride, rep, enc, scorer)
}

// processImages runs the pipeline with the given capability implementations.
func processImages(
	ctx context.Context,
	cfg *config.Config,
	filesToProcess []string,
	targetFilenameOverride string,
	rep reporter.Reporter,
	enc probe.Encoder,
	scorer probe.Scorer,
) ([]EncodeResult, error) {
	searchCfg := searchConfig(cfg)
	if err := searchCfg.Validate(); err != nil {
		return nil, err
	}

	var results []EncodeResult
	failedCount := 0

	// Emit hardware information
	sysInfo := util.GetSystemInfo()
	rep.Hardware(reporter.HardwareSummary{
		Hostname: sysInfo.Hostname,
		Platform: fmt.Sprintf("%s/%s", sysInfo.OS, sysInfo.Arch),
		NumCPU:   sysInfo.NumCPU,
	})

	// Show batch initialization for multiple files
	if len(filesToProcess) > 1 {
		var fileNames []string
		for _, f := range filesToProcess {
			fileNames = append(fileNames, util.GetFilename(f))
		}
		rep.BatchStarted(reporter.BatchStartInfo{
			TotalFiles: len(filesToProcess),
			FileList:   fileNames,
			OutputDir:  cfg.OutputDir,
		})
	}

	for fileIdx, inputPath := range filesToProcess {
		// Check for cancellation before starting each file
		if ctx.Err() != nil {
			rep.Warning(fmt.Sprintf("Processing cancelled: %v", ctx.Err()))
			break
		}

		fileStartTime := time.Now()

		// Show file progress for multiple files
		if len(filesToProcess) > 1 {
			rep.FileProgress(reporter.FileProgressContext{
				CurrentFile: fileIdx + 1,
				TotalFiles:  len(filesToProcess),
			})
		}

		inputFilename := util.GetFilename(inputPath)

		// Determine output path
		override := ""
		if len(filesToProcess) == 1 && targetFilenameOverride != "" {
			override = targetFilenameOverride
		}
		outputPath := util.ResolveOutputPath(inputPath, cfg.OutputDir, override)

		// Refuse to clobber the source
		if filepath.Clean(outputPath) == filepath.Clean(inputPath) {
			rep.Error(reporter.ReporterError{
				Title:      "Configuration Error",
				Message:    fmt.Sprintf("Output path would overwrite the input: %s", inputPath),
				Suggestion: "Choose an output directory different from the input's",
			})
			failedCount++
			continue
		}

		// Skip if output exists
		if util.FileExists(outputPath) {
			rep.Warning(fmt.Sprintf("Output file already exists: %s. Skipping.", outputPath))
			continue
		}

		// Warn before loading the source when the output filesystem has
		// less space than the file.
		if size, sizeErr := util.GetFileSize(inputPath); sizeErr == nil {
			if avail := util.GetAvailableSpace(cfg.OutputDir); avail > 0 && avail < size {
				rep.Warning(fmt.Sprintf("Low disk space in %s: %s available, source is %s",
					cfg.OutputDir, util.FormatBytes(avail), util.FormatBytes(size)))
			}
		}

		source, err := os.ReadFile(inputPath)
		if err != nil {
			rep.Error(reporter.ReporterError{
				Title:      "Read Error",
				Message:    fmt.Sprintf("Could not read %s: %v", inputFilename, err),
				Context:    fmt.Sprintf("File: %s", inputPath),
				Suggestion: "Check the file exists and is readable",
			})
			failedCount++
			continue
		}
		inputSize := uint64(len(source))

		prober, err := probe.New(enc, scorer, source)
		if err != nil {
			rep.Error(reporter.ReporterError{
				Title:      "Analysis Error",
				Message:    fmt.Sprintf("Could not decode %s: %v", inputFilename, err),
				Context:    fmt.Sprintf("File: %s", inputPath),
				Suggestion: "Check if the file is a valid JPEG image",
			})
			failedCount++
			continue
		}
		ref := prober.Reference()

		// Emit initialization event
		rep.Initialization(reporter.InitializationSummary{
			InputFile:  inputFilename,
			OutputFile: util.GetFilename(outputPath),
			Resolution: fmt.Sprintf("%dx%d", ref.Width, ref.Height),
			InputSize:  util.FormatBytes(inputSize),
		})

		// Emit search config
		rep.SearchConfig(reporter.SearchConfigSummary{
			Encoder:        enc.Name(),
			Scorer:         scorer.Name(),
			Band:           fmt.Sprintf("[%.6f, %.6f)", cfg.BandLower, cfg.BandUpper),
			InitialQuality: cfg.InitialQuality,
			InitialStep:    cfg.InitialStep,
			MaxIterations:  cfg.MaxIterations,
		})

		rep.SearchStarted(cfg.MaxIterations)

		// Run the quality search
		result, err := search.Run(ctx, prober, searchCfg, func(round int, p search.Probe) {
			rep.ProbeResult(reporter.ProbeSnapshot{
				Iteration:     round,
				MaxIterations: cfg.MaxIterations,
				Quality:       p.Quality,
				Score:         p.Score,
				InBand:        search.InBand(p.Score, searchCfg.LowerBound, searchCfg.UpperBound),
			})
		})
		if err != nil {
			if errors.IsCancelled(err) {
				rep.Warning(fmt.Sprintf("Processing cancelled: %v", err))
				failedCount++
				break
			}
			rep.Error(reporter.ReporterError{
				Title:      "Search Error",
				Message:    fmt.Sprintf("Quality search failed for %s: %v", inputFilename, err),
				Context:    fmt.Sprintf("File: %s", inputPath),
				Suggestion: "Run with --verbose and check the log file for tool output",
			})
			failedCount++
			continue
		}

		rep.SearchComplete(reporter.SearchSummary{
			Quality:    result.Quality,
			Score:      result.Score,
			Outcome:    result.Outcome.String(),
			Iterations: len(result.Probes),
		})

		// Encode once at the chosen quality
		finalBytes, err := enc.Encode(ctx, source, result.Quality)
		if err != nil {
			rep.Error(reporter.ReporterError{
				Title:      "Encoding Error",
				Message:    fmt.Sprintf("%s failed to encode %s at quality %d: %v", enc.Name(), inputFilename, result.Quality, err),
				Context:    fmt.Sprintf("File: %s", inputPath),
				Suggestion: "Run with --verbose and check the log file for tool output",
			})
			failedCount++
			continue
		}

		if err := writeOutput(outputPath, finalBytes); err != nil {
			rep.Error(reporter.ReporterError{
				Title:      "Write Error",
				Message:    fmt.Sprintf("Could not write %s: %v", outputPath, err),
				Suggestion: "Check permissions and free space in the output directory",
			})
			failedCount++
			continue
		}
		outputSize := uint64(len(finalBytes))

		// Re-measure the written bytes against the reference
		finalScore := remeasure(ctx, scorer, ref, finalBytes, rep)

		validationResult := validation.ValidateOutput(finalBytes, validation.Options{
			InputSize:          inputSize,
			ExpectedDimensions: [2]int{ref.Width, ref.Height},
			FinalScore:         finalScore,
			BandLower:          cfg.BandLower,
			BandUpper:          cfg.BandUpper,
			SearchExhausted:    result.Outcome == search.Exhausted,
		})
		validationPassed := validationResult.IsValid()
		validationSteps := validationResult.GetValidationSteps()

		fileElapsedTime := time.Since(fileStartTime)

		results = append(results, EncodeResult{
			Filename:         inputFilename,
			Duration:         fileElapsedTime,
			InputSize:        inputSize,
			OutputSize:       outputSize,
			Quality:          result.Quality,
			Score:            result.Score,
			Outcome:          result.Outcome,
			Iterations:       len(result.Probes),
			ValidationPassed: validationPassed,
			ValidationSteps:  validationSteps,
		})

		// Emit validation complete
		var repSteps []reporter.ValidationStep
		for _, s := range validationSteps {
			repSteps = append(repSteps, reporter.ValidationStep{
				Name:    s.Name,
				Passed:  s.Passed,
				Warning: s.Warning,
				Details: s.Details,
			})
		}
		rep.ValidationComplete(reporter.ValidationSummary{
			Passed: validationPassed,
			Steps:  repSteps,
		})

		// Emit encoding complete
		rep.EncodingComplete(reporter.EncodingOutcome{
			InputFile:    inputFilename,
			OutputFile:   util.GetFilename(outputPath),
			OriginalSize: inputSize,
			EncodedSize:  outputSize,
			Quality:      result.Quality,
			Score:        result.Score,
			Outcome:      result.Outcome.String(),
			TotalTime:    fileElapsedTime,
			OutputPath:   outputPath,
		})
	}

	// Generate summary
	switch len(results) {
	case 0:
		rep.Warning("No files were successfully processed")
	case 1:
		rep.OperationComplete(fmt.Sprintf("Successfully re-encoded %s", results[0].Filename))
	default:
		var totalDuration time.Duration
		var totalOriginalSize, totalEncodedSize uint64
		var fileResults []reporter.FileResult
		validationPassedCount := 0

		for _, r := range results {
			totalDuration += r.Duration
			totalOriginalSize += r.InputSize
			totalEncodedSize += r.OutputSize
			fileResults = append(fileResults, reporter.FileResult{
				Filename:  r.Filename,
				Quality:   r.Quality,
				Outcome:   r.Outcome.String(),
				Reduction: util.CalculateSizeReduction(r.InputSize, r.OutputSize),
			})
			if r.ValidationPassed {
				validationPassedCount++
			}
		}

		rep.BatchComplete(reporter.BatchSummary{
			SuccessfulCount:       len(results),
			TotalFiles:            len(filesToProcess),
			TotalOriginalSize:     totalOriginalSize,
			TotalEncodedSize:      totalEncodedSize,
			TotalDuration:         totalDuration,
			FileResults:           fileResults,
			ValidationPassedCount: validationPassedCount,
			ValidationFailedCount: len(results) - validationPassedCount,
		})
	}

	if failedCount > 0 {
		return results, errors.NewOperationFailedError(
			fmt.Sprintf("%d of %d files failed", failedCount, len(filesToProcess)), nil)
	}
	return results, nil
}

// selectEncoder maps the configured encoder kind to its runner.
func selectEncoder(kind config.EncoderKind) (probe.Encoder, error) {
	switch kind {
	case config.EncoderCjpeg:
		return cjpeg.NewEncoder(), nil
	case config.EncoderJpegoptim:
		return jpegoptim.NewEncoder(), nil
	default:
		return nil, errors.NewConfigError(
			fmt.Sprintf("unknown encoder '%s', valid options: cjpeg, jpegoptim", kind))
	}
}

// searchConfig maps the application configuration to search parameters.
func searchConfig(cfg *config.Config) search.Config {
	return search.Config{
		InitialQuality: cfg.InitialQuality,
		InitialStep:    cfg.InitialStep,
		LowerBound:     cfg.BandLower,
		UpperBound:     cfg.BandUpper,
		MaxIterations:  cfg.MaxIterations,
		MinQuality:     config.MinQualityLevel,
		MaxQuality:     config.MaxQualityLevel,
	}
}

// writeOutput writes data to a temporary file in the target directory and
// renames it into place, so a partially written output never lands at the
// final path.
func writeOutput(path string, data []byte) error {
	tmpPath, err := util.CreateTempFilePath(filepath.Dir(path), "jpegfit_out", "jpg")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// remeasure scores the final output against the reference. A nil return
// means the score could not be measured; validation then skips the band
// check.
func remeasure(ctx context.Context, scorer probe.Scorer, ref raster.Raster, output []byte, rep reporter.Reporter) *float64 {
	candidate, err := raster.Normalize(output)
	if err != nil {
		rep.Warning(fmt.Sprintf("Could not decode final output for re-measurement: %v", err))
		return nil
	}
	score, err := scorer.Score(ctx, ref, candidate)
	if err != nil {
		rep.Warning(fmt.Sprintf("Could not re-measure final output: %v", err))
		return nil
	}
	return &score
}
