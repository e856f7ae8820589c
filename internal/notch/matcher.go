// Package notch maps screen aspect ratios to the height of the camera
// cut-out on known notched displays. Detection is empirical: there is no
// portable OS query for notch geometry, so the matcher compares a screen's
// width/height ratio against a configured table of known notched panels.
package notch

import (
	"math"
)

// DefaultTolerance is the ratio comparison tolerance used when none is
// configured. Effectively exact-match.
const DefaultTolerance = 1e-6

// Entry associates a display aspect ratio with the fraction of the display
// height occupied by its notch.
type Entry struct {
	Ratio        float64 `yaml:"ratio"`        // width / height
	NotchPercent float64 `yaml:"notchPercent"` // 0-100, share of the display height
}

// Matcher answers whether a screen matches a known notched display.
// It is immutable after construction and safe to share.
type Matcher struct {
	entries   []Entry
	tolerance float64
}

// NewMatcher creates a Matcher over the given table. Entries are scanned in
// order; the first one within tolerance of a screen's ratio wins. A negative
// tolerance is treated as DefaultTolerance.
func NewMatcher(entries []Entry, tolerance float64) *Matcher {
	if tolerance < 0 {
		tolerance = DefaultTolerance
	}
	return &Matcher{
		entries:   entries,
		tolerance: tolerance,
	}
}

// NotchHeightPixels returns the notch height in pixels for a screen of the
// given size, or 0 if the screen's aspect ratio matches no table entry.
// height must be nonzero; callers guarantee this.
func (m *Matcher) NotchHeightPixels(width, height int) int {
	ratio := float64(width) / float64(height)

	for _, e := range m.entries {
		if math.Abs(e.Ratio-ratio) <= m.tolerance {
			return int(math.Round(float64(height) * e.NotchPercent / 100))
		}
	}

	return 0
}

// Tolerance returns the configured ratio comparison tolerance.
func (m *Matcher) Tolerance() float64 {
	return m.tolerance
}

// Entries returns a copy of the ratio table.
func (m *Matcher) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
