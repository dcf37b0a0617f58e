package utils

import (
	"testing"

	"github.com/jwalton/gchalk"
)

func TestPrettyVersion(t *testing.T) {
	gchalk.SetLevel(gchalk.LevelNone)

	tests := []struct {
		in   string
		want string
	}{
		{"", "none"},
		{"1.12.2", "1.12.2"},
		{"1.12.2-forge1.12.2-14.23.5.2847", "1.12.2-forge1.12.2-14.23.5.2847"},
		{"1.16.5-forge-36.2.39-with-a-very-long-suffix", "1.16.5-forge-36.2.39-with-a-very-lon …"},
	}
	for _, tt := range tests {
		if got := PrettyVersion(tt.in); got != tt.want {
			t.Errorf("PrettyVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
