// Package main provides the CLI entry point for jpegfit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pixelband/jpegfit/internal/config"
	"github.com/pixelband/jpegfit/internal/discovery"
	"github.com/pixelband/jpegfit/internal/logging"
	"github.com/pixelband/jpegfit/internal/processing"
	"github.com/pixelband/jpegfit/internal/reporter"
	"github.com/pixelband/jpegfit/internal/search"
	"github.com/pixelband/jpegfit/internal/util"
)

const (
	appName    = "jpegfit"
	appVersion = "0.1.0"
)

// rootFlags holds the parsed flags of the root command.
type rootFlags struct {
	output        string
	encoder       string
	band          string
	quality       int
	step          int
	maxIterations int
	jsonEvents    bool
	verbose       bool
	logDir        string
	noLog         bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rf rootFlags

	cmd := &cobra.Command{
		Use:   appName + " [flags] INPUT...",
		Short: "Re-encode JPEG images into a perceptual dissimilarity band",
		Long: `jpegfit re-encodes JPEG images, searching for the quality level whose
perceptual dissimilarity score (dssim) against the source lands inside a
tolerance band. Each INPUT may be a file or a directory of JPEG files;
directories are processed in alphabetical order.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd.Context(), rf, args)
		},
	}

	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output directory (or output filename for a single input file)")
	cmd.Flags().StringVar(&rf.encoder, "encoder", config.DefaultEncoder.String(), "re-encoder variant (cjpeg or jpegoptim)")
	cmd.Flags().StringVar(&rf.band, "band", "", fmt.Sprintf("tolerance band as LOWER-UPPER, plain decimals only (default %g-%g)", config.DefaultBandLower, config.DefaultBandUpper))
	cmd.Flags().IntVar(&rf.quality, "quality", config.DefaultInitialQuality, "initial quality level")
	cmd.Flags().IntVar(&rf.step, "step", config.DefaultInitialStep, "initial step size")
	cmd.Flags().IntVar(&rf.maxIterations, "max-iterations", config.DefaultMaxIterations, "probe budget per search")
	cmd.Flags().BoolVar(&rf.jsonEvents, "json", false, "emit NDJSON events on stdout instead of terminal output")
	cmd.Flags().BoolVarP(&rf.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&rf.logDir, "log-dir", "", "run-log directory (defaults to OUTPUT/logs)")
	cmd.Flags().BoolVar(&rf.noLog, "no-log", false, "disable the run-log file")
	_ = cmd.MarkFlagRequired("output")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
}

func runFit(ctx context.Context, rf rootFlags, inputs []string) error {
	for i, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", in, err)
		}
		inputs[i] = abs
	}

	outputDir, targetFilename, err := resolveOutput(inputs, rf.output)
	if err != nil {
		return err
	}

	if err := util.EnsureDirectory(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logDir := rf.logDir
	if logDir == "" {
		logDir = filepath.Join(outputDir, "logs")
	}

	logger, err := logging.Setup(logDir, rf.verbose, rf.noLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	filesToProcess, err := collectFiles(inputs, logger)
	if err != nil {
		return err
	}

	cfg := config.NewConfig(outputDir, logDir)
	cfg.Verbose = rf.verbose
	cfg.NoLog = rf.noLog
	cfg.InitialQuality = rf.quality
	cfg.InitialStep = rf.step
	cfg.MaxIterations = rf.maxIterations

	cfg.Encoder, err = config.ParseEncoderKind(rf.encoder)
	if err != nil {
		return err
	}

	if rf.band != "" {
		cfg.BandLower, cfg.BandUpper, err = search.ParseBand(rf.band)
		if err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("configuration resolved",
		"output_dir", outputDir,
		"encoder", cfg.Encoder.String(),
		"band_lower", cfg.BandLower,
		"band_upper", cfg.BandUpper,
		"initial_quality", cfg.InitialQuality,
		"initial_step", cfg.InitialStep,
		"max_iterations", cfg.MaxIterations,
		"files", len(filesToProcess))

	var rep reporter.Reporter
	if rf.jsonEvents {
		rep = reporter.NewJSONReporter()
	} else {
		rep = reporter.NewTerminalReporter()
	}

	results, err := processing.ProcessImages(ctx, cfg, filesToProcess, targetFilename, rep)
	logger.Info("run finished", "succeeded", len(results), "total", len(filesToProcess))
	return err
}

// resolveOutput interprets the --output flag. With a single file input and
// an image extension on the output, the output names the target file;
// otherwise it names a directory.
func resolveOutput(inputs []string, output string) (outputDir, targetFilename string, err error) {
	output, err = filepath.Abs(output)
	if err != nil {
		return "", "", fmt.Errorf("invalid output path: %w", err)
	}

	if len(inputs) == 1 {
		if _, statErr := os.Stat(inputs[0]); statErr != nil {
			return "", "", fmt.Errorf("input path does not exist: %s", inputs[0])
		}
		info, resolveErr := util.ResolveOutputArg(inputs[0], output)
		if resolveErr != nil {
			return "", "", fmt.Errorf("output filename must have a .jpg or .jpeg extension: %s", output)
		}
		return info.OutputDir, info.FilenameOverride, nil
	}

	return output, "", nil
}

// collectFiles expands each input into the list of files to process.
// Directory inputs expand to their sorted JPEG contents.
func collectFiles(inputs []string, logger *logging.Logger) ([]string, error) {
	var files []string

	for _, in := range inputs {
		if util.DirectoryExists(in) {
			result, err := discovery.FindImageFilesWithLogging(in, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to discover image files: %w", err)
			}
			files = append(files, result.Files...)
			continue
		}

		if !util.FileExists(in) {
			return nil, fmt.Errorf("input path does not exist: %s", in)
		}
		if !util.IsImageFile(in) {
			return nil, fmt.Errorf("not a supported image file: %s", in)
		}
		files = append(files, in)
	}

	return files, nil
}
