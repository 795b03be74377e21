// Package discovery provides file discovery for image processing.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pixelband/jpegfit/internal/errors"
	"github.com/pixelband/jpegfit/internal/util"
)

// DiscoveryLogger defines the interface for discovery logging.
type DiscoveryLogger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// DiscoveryResult contains the results of file discovery with metadata.
type DiscoveryResult struct {
	Files        []string
	SkippedCount int
}

// FindImageFiles finds image files in the given directory.
// Returns files sorted alphabetically by filename.
func FindImageFiles(inputDir string) ([]string, error) {
	files, _, err := scanImageFiles(inputDir)
	return files, err
}

// FindImageFilesWithLogging finds image files and logs discovery progress.
// Logs the first 5 files found plus a count summary.
func FindImageFilesWithLogging(inputDir string, logger DiscoveryLogger) (*DiscoveryResult, error) {
	files, skipped, err := scanImageFiles(inputDir)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logDiscoveredFiles(files, logger)
	}

	return &DiscoveryResult{Files: files, SkippedCount: skipped}, nil
}

func scanImageFiles(inputDir string) ([]string, int, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, 0, errors.NewPathError(fmt.Sprintf("directory does not exist: %s", inputDir))
	}
	if !info.IsDir() {
		return nil, 0, errors.NewPathError(fmt.Sprintf("%s is not a directory", inputDir))
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, 0, errors.NewIOError(fmt.Sprintf("cannot read directory %s", inputDir), err)
	}

	var files []string
	skipped := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if util.IsImageFile(fullPath) {
			files = append(files, fullPath)
		} else {
			skipped++
		}
	}

	if len(files) == 0 {
		return nil, 0, errors.NewNoFilesFoundError(inputDir)
	}

	// Sort alphabetically
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files, skipped, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(files []string, logger DiscoveryLogger) {
	logger.Info("image files found", "count", len(files))

	maxToLog := min(5, len(files))
	for i := 0; i < maxToLog; i++ {
		logger.Debug("discovered", "file", filepath.Base(files[i]))
	}

	if len(files) > 5 {
		logger.Debug("discovery truncated", "more", len(files)-5)
	}
}
