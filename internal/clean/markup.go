package clean

import (
	"regexp"
	"strings"
)

var (
	residualImgRe = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	emphasisRe    = regexp.MustCompile(`\*{1,2}([^*\n]+)\*{1,2}`)
	backtickRe    = regexp.MustCompile("`([^`]*)`")
)

// StripMarkup is the final lightweight pass over cleaned chunks: leftover
// image and link syntax, emphasis markers, and inline code ticks collapse
// to their visible text. Heading lines are kept — they carry structure
// that the heading-promotion rule added deliberately.
func StripMarkup(text string) string {
	text = residualImgRe.ReplaceAllString(text, "${1}")
	text = linkRe.ReplaceAllString(text, "${1}")
	text = emphasisRe.ReplaceAllString(text, "${1}")
	text = backtickRe.ReplaceAllString(text, "${1}")
	return strings.TrimSpace(text)
}
