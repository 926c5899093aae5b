package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"dev build", "dev", "none", "dev"},
		{"empty commit", "v1.2.3", "", "v1.2.3"},
		{"short commit kept whole", "v1.2.3", "4f9c1", "v1.2.3 (4f9c1)"},
		{"long commit truncated", "v1.2.3", "4f9c1aa0deadbeef", "v1.2.3 (4f9c1aa)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString_ContainsAllFields(t *testing.T) {
	s := String()
	for _, want := range []string{"version:", "commit:", "built:"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
