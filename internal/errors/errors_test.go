package errors

import (
	"errors"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindIO, "I/O error"},
		{KindPath, "Path error"},
		{KindCommand, "Command error"},
		{KindEncoding, "Encoding error"},
		{KindScoring, "Scoring error"},
		{KindConfig, "Configuration error"},
		{KindValidation, "Validation error"},
		{KindNoFilesFound, "No files found"},
		{KindOperationFailed, "Operation failed"},
		{KindCancelled, "Operation cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	// Test error with underlying error
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test message",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "I/O error: test message: underlying error"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	// Test error without underlying error
	err2 := &CoreError{
		Kind:    KindConfig,
		Message: "config issue",
	}

	got2 := err2.Error()
	expected2 := "Configuration error: config issue"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test",
		Underlying: underlying,
	}

	if err.Unwrap() != underlying {
		t.Error("Unwrap() should return underlying error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := &CoreError{Kind: KindIO, Message: "test1"}
	err2 := &CoreError{Kind: KindIO, Message: "test2"}
	err3 := &CoreError{Kind: KindConfig, Message: "test3"}

	if !err1.Is(err2) {
		t.Error("Same kind errors should match")
	}

	if err1.Is(err3) {
		t.Error("Different kind errors should not match")
	}
}

func TestCommandError(t *testing.T) {
	// Test CommandStart error
	startErr := &CommandError{
		Command:    "cjpeg",
		Kind:       CommandStart,
		Underlying: errors.New("not found"),
	}
	if got := startErr.Error(); got != "failed to execute cjpeg: not found" {
		t.Errorf("CommandStart error = %v", got)
	}

	// Test CommandWait error
	waitErr := &CommandError{
		Command:    "jpegoptim",
		Kind:       CommandWait,
		Underlying: errors.New("signal"),
	}
	if got := waitErr.Error(); got != "failed to wait for jpegoptim: signal" {
		t.Errorf("CommandWait error = %v", got)
	}

	// Test CommandFailed error
	failedErr := &CommandError{
		Command:  "dssim",
		Kind:     CommandFailed,
		ExitCode: 1,
		Stderr:   "file not found",
	}
	expected := "command dssim failed with exit code 1: file not found"
	if got := failedErr.Error(); got != expected {
		t.Errorf("CommandFailed error = %v, want %v", got, expected)
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Run("NewIOError", func(t *testing.T) {
		err := NewIOError("disk full", errors.New("no space"))
		if err.Kind != KindIO {
			t.Errorf("Expected KindIO, got %v", err.Kind)
		}
	})

	t.Run("NewPathError", func(t *testing.T) {
		err := NewPathError("invalid path")
		if err.Kind != KindPath {
			t.Errorf("Expected KindPath, got %v", err.Kind)
		}
	})

	t.Run("NewCommandStartError", func(t *testing.T) {
		err := NewCommandStartError("cjpeg", errors.New("not found"))
		if err.Kind != KindCommand {
			t.Errorf("Expected KindCommand, got %v", err.Kind)
		}

		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatal("Expected a wrapped CommandError")
		}
		if cmdErr.Command != "cjpeg" {
			t.Errorf("Expected command cjpeg, got %v", cmdErr.Command)
		}
		if cmdErr.Kind != CommandStart {
			t.Errorf("Expected CommandStart, got %v", cmdErr.Kind)
		}
	})

	t.Run("NewEncodingError", func(t *testing.T) {
		err := NewEncodingError("encode failed", errors.New("exit 2"))
		if err.Kind != KindEncoding {
			t.Errorf("Expected KindEncoding, got %v", err.Kind)
		}
	})

	t.Run("NewScoringError", func(t *testing.T) {
		err := NewScoringError("bad raster", nil)
		if err.Kind != KindScoring {
			t.Errorf("Expected KindScoring, got %v", err.Kind)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		err := NewConfigError("invalid encoder")
		if err.Kind != KindConfig {
			t.Errorf("Expected KindConfig, got %v", err.Kind)
		}
	})

	t.Run("NewValidationError", func(t *testing.T) {
		err := NewValidationError("output unreadable", nil)
		if err.Kind != KindValidation {
			t.Errorf("Expected KindValidation, got %v", err.Kind)
		}
	})

	t.Run("NewNoFilesFoundError", func(t *testing.T) {
		err := NewNoFilesFoundError("/test/dir")
		if err.Kind != KindNoFilesFound {
			t.Errorf("Expected KindNoFilesFound, got %v", err.Kind)
		}
	})

	t.Run("NewCancelledError", func(t *testing.T) {
		err := NewCancelledError()
		if err.Kind != KindCancelled {
			t.Errorf("Expected KindCancelled, got %v", err.Kind)
		}
	})
}

func TestIsKind(t *testing.T) {
	err := NewConfigError("test")

	if !IsKind(err, KindConfig) {
		t.Error("IsKind should return true for matching kind")
	}

	if IsKind(err, KindIO) {
		t.Error("IsKind should return false for non-matching kind")
	}

	if IsKind(errors.New("plain error"), KindConfig) {
		t.Error("IsKind should return false for non-CoreError")
	}
}

func TestIsCancelled(t *testing.T) {
	cancelledErr := NewCancelledError()
	if !IsCancelled(cancelledErr) {
		t.Error("IsCancelled should return true for cancelled error")
	}

	otherErr := NewConfigError("test")
	if IsCancelled(otherErr) {
		t.Error("IsCancelled should return false for non-cancelled error")
	}
}

func TestIsNoFilesFound(t *testing.T) {
	noFilesErr := NewNoFilesFoundError("/test")
	if !IsNoFilesFound(noFilesErr) {
		t.Error("IsNoFilesFound should return true for no-files-found error")
	}

	otherErr := NewConfigError("test")
	if IsNoFilesFound(otherErr) {
		t.Error("IsNoFilesFound should return false for other errors")
	}
}

func TestWrapExecError(t *testing.T) {
	// Non-ExitError becomes a command start error
	underlying := errors.New("executable file not found")
	cmdErr := WrapExecError("dssim", underlying, "")

	if cmdErr.Command != "dssim" {
		t.Errorf("WrapExecError() Command = %q, want %q", cmdErr.Command, "dssim")
	}
	if cmdErr.Kind != CommandStart {
		t.Errorf("WrapExecError() Kind = %v, want CommandStart", cmdErr.Kind)
	}
	if !errors.Is(cmdErr, underlying) {
		t.Error("WrapExecError() should wrap the underlying error")
	}

	// A CoreError built on top carries its own kind and still exposes
	// the CommandError for callers that need exit details.
	wrapped := NewScoringError("dssim failed", cmdErr)
	if !IsKind(wrapped, KindScoring) {
		t.Errorf("IsKind(wrapped, KindScoring) = false, want true")
	}

	var extracted *CommandError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("wrapped error should expose the CommandError")
	}
	if extracted.Command != "dssim" {
		t.Errorf("extracted Command = %q, want %q", extracted.Command, "dssim")
	}
}
