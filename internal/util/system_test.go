package util

import (
	"runtime"
	"testing"
)

func TestGetSystemInfo(t *testing.T) {
	info := GetSystemInfo()

	if info.NumCPU <= 0 {
		t.Errorf("GetSystemInfo().NumCPU = %d, want > 0", info.NumCPU)
	}
	if info.OS != runtime.GOOS {
		t.Errorf("GetSystemInfo().OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("GetSystemInfo().Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
}
