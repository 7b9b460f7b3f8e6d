// Package clean normalizes article text that has been converted to a
// lightweight Markdown form. It is an ordered pipeline of pure string
// rewrite rules tuned for news and sports articles: promotional blocks,
// logos, tracking links and formatting artifacts are removed so the text
// can be fed to a language model.
package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	multiSpaceRe    = regexp.MustCompile(` {2,}`)
)

// Rule is a single pure rewrite step. Rules are order-sensitive: later
// rules may rely on artifacts left by earlier ones.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Options gates the destructive rules. KeepLinks preserves hyperlink
// markup instead of reducing links to their visible text; KeepImages
// preserves logo and icon images.
type Options struct {
	KeepLinks  bool
	KeepImages bool
}

// Cleaner applies the full rule pipeline in a fixed order.
type Cleaner struct {
	rules []Rule
}

// New builds a Cleaner with the standard rule order.
func New(opts Options) *Cleaner {
	rules := []Rule{
		{Name: "normalize_line_breaks", Apply: normalizeLineBreaks},
		{Name: "relocate_date", Apply: relocateDate},
		{Name: "clean_image_refs", Apply: cleanImageRefs},
		{Name: "sports_formatting", Apply: fixSportsFormatting},
		{Name: "strip_betting_promos", Apply: stripBettingPromos},
		{Name: "strip_social_promos", Apply: stripSocialPromos},
		{Name: "strip_article_promos", Apply: stripArticlePromos},
		{Name: "strip_footer", Apply: stripFooter},
	}
	if !opts.KeepImages {
		rules = append(rules, Rule{Name: "strip_logos", Apply: stripLogos})
	}
	if !opts.KeepLinks {
		rules = append(rules, Rule{Name: "strip_links", Apply: stripLinks})
	}
	rules = append(rules,
		Rule{Name: "fix_bold", Apply: fixBold},
		Rule{Name: "promote_headings", Apply: promoteHeadings},
		Rule{Name: "tidy_whitespace", Apply: tidyWhitespace},
	)
	return &Cleaner{rules: rules}
}

// Clean runs every rule in order over text.
func (c *Cleaner) Clean(text string) string {
	for _, r := range c.rules {
		text = r.Apply(text)
	}
	return text
}

// Rules exposes the ordered rule names, mainly for tests and debugging.
func (c *Cleaner) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name)
	}
	return names
}

// normalizeLineBreaks folds CRLF and bare CR to LF and applies NFC so
// later pattern rules see one canonical byte form.
func normalizeLineBreaks(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

// tidyWhitespace collapses blank-line runs, strips trailing line
// whitespace, collapses repeated interior spaces, and guarantees a blank
// line after every heading.
func tidyWhitespace(text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = trailingSpaceRe.ReplaceAllString(text, "\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, line)
		if !isHeadingLine(line) {
			continue
		}
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" && !isHeadingLine(lines[i+1]) {
			out = append(out, "")
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func isHeadingLine(line string) bool {
	trimmed := strings.TrimLeft(line, "#")
	n := len(line) - len(trimmed)
	return n >= 1 && n <= 3 && strings.HasPrefix(trimmed, " ")
}
