package clean

import (
	"regexp"
	"strings"
)

// Heuristic fixes for sports coverage converted from messy article HTML:
// emphasis markers torn apart around commas and colons, stray spaces
// before punctuation, and a handful of team and stadium canonicalizations.

var (
	boldCommaRe   = regexp.MustCompile(`(\w+)\s*\*\*\s*,\s*\*\*\s*(\w+)`)
	boldColonRe   = regexp.MustCompile(`(\d+)\s*\*\*\s*:\s*\*\*\s*(\d+)`)
	spacedPunctRe = regexp.MustCompile(`\s+([.,;:!?])`)
	boldCityRe    = regexp.MustCompile(`in\s+\*\*\s*(\w+)\s*\*\*\s*,\s*\*\*\s*(\w+)\s*\*\*`)
	lsgRe         = regexp.MustCompile(`(\w+)\s+Super\s+Giants\s+\(\s*LSG\s*\)`)
	rcbRe         = regexp.MustCompile(`Royal\s+Challengers\s+Bengaluru\s+\(\s*RCB\s*\)`)
	matchNoRe     = regexp.MustCompile(`(?i)match\s+no\.\s+(\d+)`)
	stadiumBoldRe = regexp.MustCompile(`at\s+the\s+\*\*\s*(\w+(?:\s+\w+)*)\s+Stadium\s*\*\*`)
)

func fixSportsFormatting(text string) string {
	text = boldCommaRe.ReplaceAllString(text, "${1}, ${2}")
	text = boldColonRe.ReplaceAllString(text, "${1}:${2}")
	text = spacedPunctRe.ReplaceAllString(text, "${1}")
	text = boldCityRe.ReplaceAllString(text, "in **${1}, ${2}**")
	text = lsgRe.ReplaceAllString(text, "Lucknow Super Giants (LSG)")
	text = rcbRe.ReplaceAllString(text, "Royal Challengers Bengaluru (RCB)")
	text = matchNoRe.ReplaceAllString(text, "match no. ${1}")
	text = stadiumBoldRe.ReplaceAllString(text, "at the **${1} Stadium**")
	return text
}

var (
	teamMatchRe = regexp.MustCompile(`(\w+(?:\s+\w+)*)\s+\((\w+)\)\s+(?:vs|versus|v/s|will\s+(?:face|play|meet))\s+(\w+(?:\s+\w+)*)\s+\((\w+)\)`)
	// The bold-fix rule runs before heading promotion and may have glued
	// emphasis markers to the surrounding words, so spacing around ** is
	// optional here.
	venueRe     = regexp.MustCompile(`at\s+the\s*\*\*\s*([\w\s]+Stadium[\w\s]*?)\s*\*\*\s*in\s*\*\*\s*([\w\s,]+?)\s*\*\*`)
	matchInfoRe = regexp.MustCompile(`(?is)(match\s+no\.\s+\d+.*?IPL.*?\d{4})`)
)

const matchInfoHeading = "### Match Information"

// promoteHeadings turns recognizable match phrases into section headings:
// "Team A (ABR) vs Team B (ABR)" becomes a level-2 heading, "at the X
// Stadium in Y" a level-3 venue heading, and the first "match no. N ...
// IPL ... YYYY" span gets a match-information heading. Each promotion is
// guarded against text it already produced, so the rule is idempotent.
func promoteHeadings(text string) string {
	text = promoteTeamMatchups(text)
	text = venueRe.ReplaceAllString(text, "### Venue: ${1} in ${2}")

	if strings.Contains(strings.ToLower(text), "match no.") && !strings.Contains(text, matchInfoHeading) {
		if loc := matchInfoRe.FindStringIndex(text); loc != nil {
			span := text[loc[0]:loc[1]]
			text = strings.Replace(text, span, matchInfoHeading+"\n"+span, 1)
		}
	}
	return text
}

func promoteTeamMatchups(text string) string {
	locs := teamMatchRe.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start >= 3 && text[start-3:start] == "## " {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString("## ")
		b.WriteString(text[loc[2]:loc[3]])
		b.WriteString(" (" + text[loc[4]:loc[5]] + ") vs ")
		b.WriteString(text[loc[6]:loc[7]])
		b.WriteString(" (" + text[loc[8]:loc[9]] + ")")
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}
