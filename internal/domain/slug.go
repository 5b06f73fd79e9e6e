package domain

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordChars  = regexp.MustCompile(`[^\w-]+`)
)

// Slugify lowercases name, turns whitespace runs into hyphens and strips
// everything that is not a word character or hyphen.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonWordChars.ReplaceAllString(s, "")
}
