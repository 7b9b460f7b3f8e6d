package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// renderMarkup converts one selected element to the lightweight markup
// form the cleaner understands: headings as #-prefixed lines, emphasis as
// bold markers, links as [text](url), images as ![alt](url).
func renderMarkup(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	n := s.Nodes[0]
	name := strings.ToLower(n.Data)

	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(name[1] - '0')
		text := strings.TrimSpace(renderInline(n))
		if text == "" {
			return ""
		}
		return strings.Repeat("#", level) + " " + text
	case "a":
		return strings.TrimSpace(renderAnchor(n))
	default: // p
		return strings.TrimSpace(renderInline(n))
	}
}

// renderInline flattens an element's subtree to one line of markup.
func renderInline(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInline(&b, c)
	}
	return collapseInlineSpace(b.String())
}

func writeInline(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript":
		return
	case "br":
		b.WriteString("\n")
		return
	case "img":
		b.WriteString(renderImage(n))
		return
	case "a":
		b.WriteString(renderAnchor(n))
		return
	case "b", "strong", "em", "i":
		b.WriteString("**")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeInline(b, c)
		}
		b.WriteString("**")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInline(b, c)
	}
}

func renderAnchor(n *html.Node) string {
	var inner strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInline(&inner, c)
	}
	label := collapseInlineSpace(inner.String())
	href := attrValue(n, "href")
	if label == "" {
		return ""
	}
	if href == "" {
		return label
	}
	return "[" + label + "](" + href + ")"
}

func renderImage(n *html.Node) string {
	src := attrValue(n, "src")
	if src == "" {
		return ""
	}
	return "![" + attrValue(n, "alt") + "](" + src + ")"
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// collapseInlineSpace folds whitespace runs inside inline content to a
// single space, preserving explicit newlines from <br>.
func collapseInlineSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
