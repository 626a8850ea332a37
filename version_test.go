package stklos

import "testing"

// TestVersionAtLeast tests numeric, component-wise comparison.
func TestVersionAtLeast(t *testing.T) {
	cases := map[string]struct {
		v, min string
		want   bool
	}{
		"Equal":        {"1.30", "1.30", true},
		"Newer":        {"2.10", "1.30", true},
		"Older":        {"1.20", "1.30", false},
		"NumericMinor": {"1.9", "1.30", false},
		"LongerWins":   {"1.30.1", "1.30", true},
		"ShorterLoses": {"1.30", "1.30.1", false},
		"MajorWins":    {"2.0", "1.99", true},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := VersionAtLeast(c.v, c.min); got != c.want {
				t.Errorf("VersionAtLeast(%q, %q) = %v, want %v", c.v, c.min, got, c.want)
			}
		})
	}
}
