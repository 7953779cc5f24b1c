package browser

import (
	"strings"

	"golang.org/x/net/html"
)

// visibleText extracts the human-visible text from an HTML document,
// approximating what a user sees on screen. Script, style, and other
// non-rendered elements are dropped, and whitespace is collapsed so
// the model is not fed markup noise.
func visibleText(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// Parse failures are rare with real pages; fall back to the raw
		// text rather than losing the observation entirely
		return strings.TrimSpace(rawHTML)
	}

	var builder strings.Builder
	collectText(doc, &builder)
	return collapseWhitespace(builder.String())
}

// collectText walks the node tree appending rendered text
func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}

	if n.Type == html.ElementNode && isHiddenElement(strings.ToLower(n.Data)) {
		return
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			builder.WriteString(text)
			builder.WriteString(" ")
		}
		return
	}

	if n.Type == html.ElementNode && isBlockElement(strings.ToLower(n.Data)) {
		builder.WriteString("\n")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}
}

// collapseWhitespace squeezes runs of blank lines and trailing spaces
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// isHiddenElement returns true for elements whose content is never rendered
func isHiddenElement(tagName string) bool {
	hidden := map[string]bool{
		"script":   true,
		"style":    true,
		"noscript": true,
		"iframe":   true,
		"embed":    true,
		"object":   true,
		"svg":      true,
		"head":     true,
		"template": true,
	}
	return hidden[tagName]
}

// isBlockElement returns true for block-level elements that introduce
// line breaks in rendered text
func isBlockElement(tagName string) bool {
	blocks := map[string]bool{
		"div":        true,
		"p":          true,
		"section":    true,
		"article":    true,
		"header":     true,
		"footer":     true,
		"nav":        true,
		"main":       true,
		"aside":      true,
		"h1":         true,
		"h2":         true,
		"h3":         true,
		"h4":         true,
		"h5":         true,
		"h6":         true,
		"ul":         true,
		"ol":         true,
		"li":         true,
		"table":      true,
		"tr":         true,
		"td":         true,
		"th":         true,
		"form":       true,
		"fieldset":   true,
		"blockquote": true,
		"pre":        true,
		"br":         true,
	}
	return blocks[tagName]
}
