package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// TempDir is a temporary directory removed by Cleanup.
type TempDir struct {
	path string
}

// CreateTempDir creates a uniquely named directory under baseDir.
func CreateTempDir(baseDir, prefix string) (*TempDir, error) {
	suffix, err := generateRandomString(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate temp dir name: %w", err)
	}

	path := filepath.Join(baseDir, fmt.Sprintf("%s_%s", prefix, suffix))
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	return &TempDir{path: path}, nil
}

// Path returns the directory path.
func (d *TempDir) Path() string {
	return d.path
}

// Cleanup removes the directory and its contents.
func (d *TempDir) Cleanup() error {
	return os.RemoveAll(d.path)
}

// TempFile is a temporary file removed by Cleanup.
type TempFile struct {
	path string
}

// CreateTempFile creates a uniquely named empty file under baseDir.
func CreateTempFile(baseDir, prefix, ext string) (*TempFile, error) {
	path, err := CreateTempFilePath(baseDir, prefix, ext)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return &TempFile{path: path}, nil
}

// Path returns the file path.
func (f *TempFile) Path() string {
	return f.path
}

// Cleanup removes the file. A file already gone is not an error.
func (f *TempFile) Cleanup() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CreateTempFilePath returns a unique path under baseDir without creating
// the file, for handing to external tools that create it themselves.
func CreateTempFilePath(baseDir, prefix, ext string) (string, error) {
	suffix, err := generateRandomString(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate temp file name: %w", err)
	}
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.%s", prefix, suffix, ext)), nil
}

// CleanupStaleTempFiles removes files in dir whose names carry the given
// temp prefix and whose modification time is at least maxAge old. Returns
// the number of files removed. A missing directory is not an error.
func CleanupStaleTempFiles(dir, prefix string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix+"_") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < maxAge {
			continue
		}

		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed++
		}
	}

	return removed, nil
}

// EnsureDirectoryWritable verifies dir exists, is a directory, and accepts
// new files.
func EnsureDirectoryWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe := filepath.Join(dir, ".jpegfit_write_check")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	_ = f.Close()
	return os.Remove(probe)
}

// minAvailableBytes is the free space below which CheckDiskSpace warns.
const minAvailableBytes uint64 = 512 * MiB

// GetAvailableSpace returns the available bytes on the filesystem holding
// path, or 0 if it cannot be determined.
func GetAvailableSpace(path string) uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}

// CheckDiskSpace reports whether the filesystem holding path has room for
// encode output. When it does not, the warning is passed to logf. An
// indeterminate result counts as enough.
func CheckDiskSpace(path string, logf func(format string, args ...any)) bool {
	available := GetAvailableSpace(path)
	if available == 0 {
		return true
	}
	if available < minAvailableBytes {
		if logf != nil {
			logf("low disk space at %s: %s available", path, FormatBytes(available))
		}
		return false
	}
	return true
}

// generateRandomString returns n hex characters of randomness.
func generateRandomString(n int) (string, error) {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:n], nil
}
