package clean

import (
	"regexp"
	"strings"
)

// Promotional content removal is two-phase: targeted pattern removal
// first, then dropping any whole line that still contains a known
// promotional keyword.

var bettingRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\*\*\s*BET\s+NOW\s*:\s*\*\*\s*\[.*?\]\(https?://(?:bit\.ly|tinyurl\.com|goo\.gl)/[^\s)]+\)`),
	regexp.MustCompile(`(?i)\[(?:Bet|Claim|Get|Grab|Win).*?(?:bonus|offer|promotion|bet|sign[\s-]?up).*?\]\(https?://(?:bit\.ly|tinyurl\.com|goo\.gl)/[^\s)]+\)`),
	regexp.MustCompile(`(?i)\*\*.*?WIN\s+WELCOME\s+BONUS.*?\*\*`),
	regexp.MustCompile(`(?i)\[.*?(?:bet|claim|win|bonus|offer).*?\]\(https?://.*?\)`),
}

var bettingKeywords = []string{
	"bet now", "welcome bonus", "sign up", "click", "sign-up", "bonus code",
	"free bet", "promo code", "deposit", "betting", "wagering", "sportsbook",
}

var socialRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[Follow\s+(?:The\s+)?(?:\w+\s+)+on\s+(?:Twitter|Facebook|Instagram|WhatsApp|Telegram)\]\(https?://.*?\)`),
	regexp.MustCompile(`(?i)\[Subscribe\s+to\s+our\s+(?:YouTube|Facebook|Telegram)\s+channel\]\(https?://.*?\)`),
	regexp.MustCompile(`(?i)Follow\s+(?:us|The\s+\w+)\s+on\s+(?:Twitter|Facebook|Instagram|WhatsApp|Telegram)`),
	regexp.MustCompile(`(?i)https?://(?:sn-now\.com|bit\.ly)/\w+(?:WhatsApp|Facebook|Twitter|Instagram)\w*`),
}

var socialKeywords = []string{
	"follow us", "join us", "subscribe", "like our", "share this",
	"connect with us", "stay updated", "don't miss", "for more updates",
}

var articlePromoRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\*\*\s*READ\s+MORE\s*:\s*\*\*\s*\[.*?\]\(https?://.*?\)`),
	regexp.MustCompile(`(?i)\[ALSO\s+READ:.*?\]\(https?://.*?\)`),
	regexp.MustCompile(`(?i)\*\*\s*RELATED:?\s*\*\*\s*\[.*?\]\(https?://.*?\)`),
	regexp.MustCompile(`(?i)\*\*\s*CHECK\s+OUT:?\s*\*\*\s*\[.*?\]\(https?://.*?\)`),
}

var footerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)For\s+more\s+(?:updates|news|information)\s+on.*?visit\s+our\s+website`),
	regexp.MustCompile(`(?i)Don't\s+forget\s+to\s+(?:follow|subscribe|check)\s+us\s+on`),
	regexp.MustCompile(`(?i)Copyright\s+©\s+\d{4}.*?All\s+rights\s+reserved`),
	regexp.MustCompile(`(?i)© \d{4}(?:–\d{4})?\s+(?:\w+\s+)+\.\s+All\s+rights\s+reserved\.`),
}

func stripBettingPromos(text string) string {
	for _, re := range bettingRes {
		text = re.ReplaceAllString(text, "")
	}
	return dropLinesContaining(text, bettingKeywords)
}

func stripSocialPromos(text string) string {
	for _, re := range socialRes {
		text = re.ReplaceAllString(text, "")
	}
	return dropLinesContaining(text, socialKeywords)
}

func stripArticlePromos(text string) string {
	for _, re := range articlePromoRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func stripFooter(text string) string {
	for _, re := range footerRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// dropLinesContaining removes every line whose lowercase form contains any
// of the given keywords.
func dropLinesContaining(text string, keywords []string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		lower := strings.ToLower(line)
		drop := false
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
