package normalize

import (
	"regexp"
	"strings"
)

var (
	multiSpace = regexp.MustCompile(`\s+`)
	// A leading "dr" token: "dr. smith", "dr.smith", "dr smith". "drake" is left alone.
	doctorTitle = regexp.MustCompile(`^dr(\.\s*|\s+)`)
)

// NormalizeName lowercases, collapses whitespace, and trims the input.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	return multiSpace.ReplaceAllString(s, " ")
}

// NormalizeDoctorName applies NormalizeName and strips a leading "dr" title.
func NormalizeDoctorName(s string) string {
	s = NormalizeName(s)
	s = doctorTitle.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// FirstToken returns the first space-separated token of an already
// normalized name.
func FirstToken(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
