package clean

import (
	"regexp"
	"strings"
)

// publishedMarker doubles as the canonical phrase prefix and the guard
// that makes relocateDate a one-shot move: once the marker is present the
// rule never fires again, so repeated application is stable.
const publishedMarker = "Published on "

// dateRe matches publication stamps like "08 May, 2025 • 7:52 pm UTC".
// Day, month name and year are required; the bullet, time and timezone
// are optional.
var dateRe = regexp.MustCompile(
	`(\d{1,2})\s+(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?),?\s+(\d{4})` +
		`(?:\s*[•·]?\s*(\d{1,2}):(\d{2})\s*([ap]m)?\s*([A-Z]{2,4})?)?`)

// relocateDate finds the first publication-date stamp, rewrites it into a
// canonical "Published on ..." phrase, and moves that phrase to just after
// the first block of the document (typically the title or lead image).
func relocateDate(text string) string {
	if strings.Contains(text, publishedMarker) {
		return text
	}
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	day, month, year := m[1], m[2], m[3]
	hour, minute, ampm, tz := m[4], m[5], m[6], m[7]

	var b strings.Builder
	b.WriteString(publishedMarker)
	b.WriteString(day + " " + month + " " + year)
	if hour != "" && minute != "" {
		b.WriteString(" at " + hour + ":" + minute)
		if ampm != "" {
			b.WriteString(" " + ampm)
		}
	}
	if tz != "" {
		b.WriteString(" " + tz)
	}
	phrase := b.String()

	// Drop the stamp from its original position, then insert the phrase
	// after the first paragraph or image block.
	text = strings.Replace(text, m[0], "", 1)
	parts := strings.SplitN(text, "\n\n", 3)
	if len(parts) >= 2 {
		return parts[0] + "\n\n" + phrase + "\n\n" + strings.Join(parts[1:], "\n\n")
	}
	return phrase + "\n\n" + text
}
