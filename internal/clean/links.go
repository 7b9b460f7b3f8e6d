package clean

import "regexp"

var linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// stripLinks reduces remaining hyperlink markup to its visible text,
// dropping the URL. Runs after the promo rules so their link-shaped
// patterns still see intact markup.
func stripLinks(text string) string {
	return linkRe.ReplaceAllString(text, "${1}")
}

var (
	emptyBoldRe      = regexp.MustCompile(`\*\*\s+\*\*`)
	boldAfterParenRe = regexp.MustCompile(`\*\*\)\s+\*\*`)
	boldCommaGapRe   = regexp.MustCompile(`\*\*\s*,\s*\*\*`)
	boldLeadSpaceRe  = regexp.MustCompile(`\*\*\s+(\w+)\*\*`)
	// A closing ** is followed by whitespace, punctuation or the end of
	// input; an opening ** is followed by a word character and must keep
	// the space before it.
	boldTrailGapRe = regexp.MustCompile(`(\w+)\s+\*\*([\s.,;:!?)]|$)`)
	boldPunctRe      = regexp.MustCompile(`\*\*\s*([,.;:!?])`)
	doubleBoldRe     = regexp.MustCompile(`\*\*\*\*`)
)

// fixBold repairs emphasis-marker artifacts left behind by the removal
// rules: stray whitespace inside markers, markers split around commas,
// and doubled markers.
func fixBold(text string) string {
	text = emptyBoldRe.ReplaceAllString(text, " ")
	text = boldAfterParenRe.ReplaceAllString(text, "**) ")
	text = boldCommaGapRe.ReplaceAllString(text, ", ")
	text = boldLeadSpaceRe.ReplaceAllString(text, "**${1}**")
	text = boldTrailGapRe.ReplaceAllString(text, "${1}**${2}")
	text = boldPunctRe.ReplaceAllString(text, "${1}")
	text = doubleBoldRe.ReplaceAllString(text, "**")
	return text
}
