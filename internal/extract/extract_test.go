package extract

import (
	"strings"
	"testing"

	"webanswer/internal/clean"
)

func newTestExtractor() *Extractor {
	return New(clean.New(clean.Options{}), 0)
}

func TestExtract_HeadingsAndParagraphs(t *testing.T) {
	html := `<html><head><title>t</title><script>var x=1;</script></head><body>
	<nav><a href="/home">Home</a></nav>
	<h1>Season Opener</h1>
	<p>The first innings set a <strong>huge</strong> total.</p>
	<p>Read the <a href="https://example.com/full">full report</a> online.</p>
	</body></html>`

	doc := newTestExtractor().Extract(html, "https://example.com/a")
	if doc == nil {
		t.Fatal("expected a document")
	}
	if !strings.Contains(doc.Text, "Season Opener") {
		t.Fatalf("heading text missing: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "The first innings set a huge total.") {
		t.Fatalf("paragraph missing or emphasis not collapsed: %q", doc.Text)
	}
	// Link labels survive, URLs do not.
	if !strings.Contains(doc.Text, "full report") || strings.Contains(doc.Text, "example.com/full") {
		t.Fatalf("link handling wrong: %q", doc.Text)
	}
	for _, c := range doc.Chunks {
		if c.Source != "https://example.com/a" {
			t.Fatalf("chunk lost its source attribution: %+v", c)
		}
	}
}

func TestExtract_NoContentReturnsNil(t *testing.T) {
	cases := []string{
		"",
		"<html><body></body></html>",
		"<html><body><script>alert(1)</script><div>bare div text</div></body></html>",
	}
	e := newTestExtractor()
	for _, html := range cases {
		if doc := e.Extract(html, "https://example.com"); doc != nil {
			t.Fatalf("expected nil document for %q, got %+v", html, doc)
		}
	}
}

func TestExtract_AnchorInsideParagraphNotDuplicated(t *testing.T) {
	html := `<html><body><p>See the <a href="https://e.com/x">schedule</a> today.</p></body></html>`
	doc := newTestExtractor().Extract(html, "https://e.com")
	if doc == nil {
		t.Fatal("expected a document")
	}
	if n := strings.Count(doc.Text, "schedule"); n != 1 {
		t.Fatalf("anchor rendered %d times: %q", n, doc.Text)
	}
}

func TestSplitChunks_HeadingStartsNewChunk(t *testing.T) {
	text := "intro paragraph\n\n## Section One\n\nbody one\n\n## Section Two\n\nbody two"
	parts := splitChunks(text, 200)
	if len(parts) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %#v", len(parts), parts)
	}
	if !strings.HasPrefix(parts[1], "## Section One") || !strings.HasPrefix(parts[2], "## Section Two") {
		t.Fatalf("headings do not start chunks: %#v", parts)
	}
}

func TestSplitChunks_BoundedSize(t *testing.T) {
	long := strings.Repeat("word ", 400) // ~2000 chars
	parts := splitChunks(long, 300)
	if len(parts) < 2 {
		t.Fatalf("oversized block not split: %d parts", len(parts))
	}
	for _, p := range parts {
		if len(p) > 300 {
			t.Fatalf("chunk exceeds budget: %d chars", len(p))
		}
	}
}

func TestSplitChunks_PacksSmallBlocks(t *testing.T) {
	text := "one\n\ntwo\n\nthree"
	parts := splitChunks(text, 100)
	if len(parts) != 1 {
		t.Fatalf("small blocks should pack into one chunk, got %d: %#v", len(parts), parts)
	}
}
