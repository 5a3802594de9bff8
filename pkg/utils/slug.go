package utils

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile("[^a-z0-9]+")

func Slugify(s string) string {
	// Convert to lowercase
	s = strings.ToLower(s)
	// Replace non-alphanumeric characters with hyphens
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	// Trim hyphens from start and end
	return strings.Trim(s, "-")
}

// FieldKey turns a label into a submission-data key such as "years_at_address".
// Keys always start with a letter.
func FieldKey(label string) string {
	key := strings.ReplaceAll(Slugify(label), "-", "_")
	if key == "" {
		return ""
	}
	if key[0] >= '0' && key[0] <= '9' {
		key = "f_" + key
	}
	return key
}
