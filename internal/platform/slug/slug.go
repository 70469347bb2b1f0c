package slug

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowers input and joins its alphanumeric runs with dashes for use in
// file names. Input with no usable characters yields "untitled".
func Make(input string) string {
	s := separators.ReplaceAllString(strings.ToLower(input), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}
