package utils

import "fmt"

const bytesPerMebibyte = 1024.0 * 1024.0

// FormatMebibytes renders a byte count in mebibytes with two decimal places,
// the unit used by skip messages in the packed report.
func FormatMebibytes(byteCount int64) string {
	return fmt.Sprintf("%.2f MB", float64(byteCount)/bytesPerMebibyte)
}
