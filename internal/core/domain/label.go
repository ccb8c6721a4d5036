package domain

import "strings"

// DefaultLabels is the label set a fresh workspace starts with.
// Users extend it at runtime; ResetLabels restores it.
var DefaultLabels = []string{
	"Diagnosis",
	"Symptom",
	"Medication",
	"Procedure",
	"Test",
	"Other",
}

// labelPalette maps the default labels to their highlight colours.
var labelPalette = map[string]string{
	"Diagnosis":  "#cfe8ff",
	"Symptom":    "#d7f9e9",
	"Medication": "#fde7c8",
	"Procedure":  "#ffe0e6",
	"Test":       "#eadcff",
	"Other":      "#f0f0f0",
}

// fallbackColour is used for labels outside the default palette.
const fallbackColour = "#f0f0f0"

// ColourFor returns the highlight colour for a label.
func ColourFor(label string) string {
	if c, ok := labelPalette[label]; ok {
		return c
	}
	return fallbackColour
}

// NormaliseLabels trims entries and removes duplicates and blanks while
// preserving first-seen order.
func NormaliseLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
