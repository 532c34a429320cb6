package sequence

import "strings"

const leadingNoise = " 0123456789"

// NormalizeKey reduces a raw scanner label to its reference table key.
//
// Everything from the first underscore on is dropped, leading digits and
// spaces are stripped, and double spaces are collapsed in two passes. Runs of
// five or more spaces therefore survive as two spaces; existing table keys
// depend on that.
func NormalizeKey(raw string) string {
	key, _, _ := strings.Cut(raw, "_")
	key = strings.TrimLeft(key, leadingNoise)
	key = strings.ReplaceAll(key, "  ", " ")
	key = strings.ReplaceAll(key, "  ", " ")
	return key
}
