package utils

import "time"

// FormatReportTimestamp renders the report generation time in UTC using RFC 3339.
// A zero time produces an empty string.
func FormatReportTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
