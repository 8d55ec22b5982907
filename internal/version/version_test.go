package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build info should be initialized")
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, "wikimigrate "+Version) {
		t.Fatalf("unexpected version string %q", s)
	}
	if !strings.Contains(s, GitCommit) {
		t.Fatalf("version string should carry commit: %q", s)
	}
}
