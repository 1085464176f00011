// Package snapshot produces cleaned HTML captures of a checked page for
// report artifacts: scripts, styles, and embed noise stripped, semantic
// structure and targeting attributes kept, output bounded in size.
package snapshot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DefaultMaxLength bounds a snapshot attached to a report artifact.
const DefaultMaxLength = 20000

// Snapshot is the cleaned capture of one page.
type Snapshot struct {
	Title     string
	Headings  []string
	HTML      string
	Truncated bool
}

// Clean parses raw HTML and rebuilds it with noise removed, preserving the
// structure a reader needs to understand what the checker saw.
func Clean(raw string, maxLength int) (*Snapshot, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	snap := &Snapshot{}
	collectMetadata(doc, snap)

	var builder strings.Builder
	var length int
	snap.Truncated = writeNode(doc, &builder, &length, maxLength, 0)
	snap.HTML = builder.String()

	return snap, nil
}

// collectMetadata walks the tree once for the title and heading texts.
func collectMetadata(n *html.Node, snap *Snapshot) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if snap.Title == "" {
				snap.Title = nodeText(n)
			}
		case "h1", "h2", "h3":
			if text := nodeText(n); text != "" {
				snap.Headings = append(snap.Headings, text)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectMetadata(c, snap)
	}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// writeNode recursively rebuilds the cleaned markup. Returns true once the
// length budget is exhausted.
func writeNode(n *html.Node, builder *strings.Builder, length *int, maxLength, depth int) bool {
	if *length >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false
	case html.TextNode:
		return writeText(n, builder, length, maxLength)
	case html.ElementNode:
		if skippedElement(n.Data) {
			return false
		}
		return writeElement(n, builder, length, maxLength, depth)
	}

	return writeChildren(n, builder, length, maxLength, depth)
}

func writeText(n *html.Node, builder *strings.Builder, length *int, maxLength int) bool {
	text := strings.TrimSpace(n.Data)
	if text == "" {
		return false
	}

	if *length+len(text) > maxLength {
		builder.WriteString(cutAtRune(text, maxLength-*length))
		builder.WriteString("...")
		*length = maxLength
		return true
	}

	builder.WriteString(text)
	*length += len(text)
	return false
}

func writeElement(n *html.Node, builder *strings.Builder, length *int, maxLength, depth int) bool {
	tag := strings.ToLower(n.Data)

	if depth > 0 && blockElement(tag) {
		builder.WriteString("\n")
		builder.WriteString(strings.Repeat("  ", depth))
	}

	builder.WriteString("<")
	builder.WriteString(tag)
	*length += len(tag) + 2
	for _, attr := range n.Attr {
		if keepAttribute(tag, strings.ToLower(attr.Key)) {
			rendered := fmt.Sprintf(` %s="%s"`, attr.Key, html.EscapeString(attr.Val))
			builder.WriteString(rendered)
			*length += len(rendered)
		}
	}
	builder.WriteString(">")

	truncated := writeChildren(n, builder, length, maxLength, depth+1)

	if !voidElement(tag) {
		if blockElement(tag) {
			builder.WriteString("\n")
			builder.WriteString(strings.Repeat("  ", depth))
		}
		builder.WriteString("</")
		builder.WriteString(tag)
		builder.WriteString(">")
		*length += len(tag) + 3
	}

	return truncated
}

// cutAtRune shortens s to at most max bytes, backing off so the cut never
// lands inside a multibyte rune.
func cutAtRune(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func writeChildren(n *html.Node, builder *strings.Builder, length *int, maxLength, depth int) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if writeNode(c, builder, length, maxLength, depth) {
			return true
		}
	}
	return false
}

func skippedElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "iframe", "embed", "object", "svg", "link", "meta":
		return true
	}
	return false
}

func blockElement(tag string) bool {
	switch tag {
	case "div", "p", "section", "article", "header", "footer", "nav", "main",
		"aside", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
		"table", "tr", "td", "th", "form", "fieldset":
		return true
	}
	return false
}

func voidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// keepAttribute keeps the attributes that matter when reading a snapshot:
// ids, classes, roles, aria labels, data-* targeting hooks, and a few
// tag-specific ones.
func keepAttribute(tag, attr string) bool {
	switch attr {
	case "id", "class", "role", "aria-label", "aria-describedby":
		return true
	}
	if strings.HasPrefix(attr, "data-") {
		return true
	}

	switch tag {
	case "a":
		return attr == "href"
	case "img":
		return attr == "src" || attr == "alt"
	case "input", "textarea", "select":
		return attr == "name" || attr == "type" || attr == "placeholder" || attr == "value"
	case "button":
		return attr == "type" || attr == "name"
	case "form":
		return attr == "action" || attr == "method"
	}
	return false
}
