package schema

import "strings"

// keySanitizer guards report filenames against filesystem-unsafe
// characters in learner IDs and date strings.
var keySanitizer = strings.NewReplacer(" ", "_", ":", "-")

// SanitizeKeyComponent makes one group key component safe for use in a
// filename: spaces become underscores, colons become hyphens.
func SanitizeKeyComponent(s string) string {
	return keySanitizer.Replace(s)
}

// ReportFileName derives the deterministic output filename for a group.
func ReportFileName(key GroupKey) string {
	return "learner_" + SanitizeKeyComponent(key.LearnerID) + "_" + SanitizeKeyComponent(key.Date) + ReportFileExt
}
