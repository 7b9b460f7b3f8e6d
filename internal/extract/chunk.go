package extract

import "strings"

const defaultChunkSize = 1200

// splitChunks breaks cleaned markup text into chunks of at most maxChars
// characters. Splitting is structure-aware: headings always start a new
// chunk and blocks are never cut mid-paragraph unless a single block
// alone exceeds the budget.
func splitChunks(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = defaultChunkSize
	}
	blocks := strings.Split(text, "\n\n")

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			chunks = append(chunks, s)
		}
		cur.Reset()
	}

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		startsHeading := strings.HasPrefix(block, "#")
		if cur.Len() > 0 && (startsHeading || cur.Len()+2+len(block) > maxChars) {
			flush()
		}
		if len(block) > maxChars {
			for _, piece := range hardSplit(block, maxChars) {
				flush()
				cur.WriteString(piece)
			}
			continue
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(block)
	}
	flush()
	return chunks
}

// hardSplit cuts an oversized block at the last space or newline before
// the budget, falling back to a raw cut when none exists.
func hardSplit(block string, maxChars int) []string {
	var parts []string
	for len(block) > maxChars {
		cut := strings.LastIndexAny(block[:maxChars], " \n")
		if cut <= 0 {
			cut = maxChars
		}
		parts = append(parts, strings.TrimSpace(block[:cut]))
		block = strings.TrimSpace(block[cut:])
	}
	if block != "" {
		parts = append(parts, block)
	}
	return parts
}
