// Package extract converts raw article HTML into cleaned, chunked text
// ready for retrieval. Only heading, paragraph and anchor elements are
// considered content; everything else (navigation, scripts, styles,
// layout) is dropped before the text ever reaches the cleaning pipeline.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"webanswer/internal/clean"
)

// Chunk is a bounded-size slice of a cleaned document, the unit of
// retrieval and fact extraction. Source is the originating URL.
type Chunk struct {
	Text   string
	Source string
}

// Document is the extractor's output: the concatenated cleaned text plus
// the ordered chunk list it was assembled from.
type Document struct {
	Text   string
	Chunks []Chunk
}

const contentSelector = "h1,h2,h3,h4,h5,h6,p,a"

// Extractor runs the full HTML-to-text pipeline: element selection,
// markup conversion, cleaning, chunking, and a final markup-collapse pass
// per chunk.
type Extractor struct {
	cleaner   *clean.Cleaner
	chunkSize int
}

// New returns an Extractor using the given cleaner. chunkSize bounds each
// chunk in characters; zero or negative selects the default.
func New(cleaner *clean.Cleaner, chunkSize int) *Extractor {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Extractor{cleaner: cleaner, chunkSize: chunkSize}
}

// Extract parses rawHTML and returns the cleaned document, or nil when no
// usable text could be extracted. It never fails with an error: any
// internal problem degrades to a nil document, which the fetch layer
// reports as a parse failure.
func (e *Extractor) Extract(rawHTML string, source string) (doc *Document) {
	defer func() {
		if recover() != nil {
			doc = nil
		}
	}()

	root, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var fragments []string
	root.Find(contentSelector).Each(func(_ int, s *goquery.Selection) {
		// Anchors nested inside a selected block would be rendered twice.
		if goquery.NodeName(s) == "a" && s.ParentsFiltered(contentSelector).Length() > 0 {
			return
		}
		if md := renderMarkup(s); md != "" {
			fragments = append(fragments, md)
		}
	})
	if len(fragments) == 0 {
		return nil
	}

	cleaned := e.cleaner.Clean(strings.Join(fragments, "\n\n"))
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	parts := splitChunks(cleaned, e.chunkSize)
	chunks := make([]Chunk, 0, len(parts))
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		final := clean.StripMarkup(p)
		if final == "" {
			continue
		}
		chunks = append(chunks, Chunk{Text: final, Source: source})
		texts = append(texts, final)
	}
	if len(chunks) == 0 {
		return nil
	}
	return &Document{Text: strings.Join(texts, "\n\n"), Chunks: chunks}
}
