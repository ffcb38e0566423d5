package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// neutralMarker renders like the page-style marker but does not match it.
var neutralMarker = strings.Replace(PageStyleMarker, "@", "\u200b@", 1)

// droppedElements never survive in user fragments: their content is
// rendered verbatim and could forge an anchor.
var droppedElements = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"xmp":       true,
}

// appendFragment parses fragment as the inner HTML of parent and appends
// the sanitized nodes to it.
func appendFragment(parent *html.Node, fragment string) {
	if fragment == "" {
		return
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		parent.AppendChild(&html.Node{Type: html.TextNode, Data: neutralize(fragment)})
		return
	}

	holder := &html.Node{Type: html.ElementNode, Data: parent.Data, DataAtom: parent.DataAtom}
	for _, n := range nodes {
		holder.AppendChild(n)
	}
	sanitize(holder)

	for c := holder.FirstChild; c != nil; c = holder.FirstChild {
		holder.RemoveChild(c)
		parent.AppendChild(c)
	}
}

// sanitize removes anything under n that could render as an anchor.
func sanitize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode || c.Type == html.DoctypeNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && droppedElements[c.Data]:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && c.Data == "title":
			text := &html.Node{Type: html.TextNode, Data: textContent(c)}
			n.InsertBefore(text, c)
			n.RemoveChild(c)
		case c.Type == html.ElementNode:
			c.Attr = sanitizeAttrs(c.Attr)
			sanitize(c)
		}
		c = next
	}

	mergeText(n)
}

// mergeText joins adjacent text children, then neutralizes the marker in
// the joined text.
func mergeText(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		for next := c.NextSibling; next != nil && next.Type == html.TextNode; next = c.NextSibling {
			c.Data += next.Data
			n.RemoveChild(next)
		}
		c.Data = neutralize(c.Data)
	}
}

func sanitizeAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if strings.EqualFold(a.Key, "id") && a.Val == ContentID {
			continue
		}
		a.Val = neutralize(a.Val)
		out = append(out, a)
	}
	return out
}

func textContent(n *html.Node) string {
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
	return b.String()
}

func neutralize(s string) string {
	if !strings.Contains(s, PageStyleMarker) {
		return s
	}
	return strings.ReplaceAll(s, PageStyleMarker, neutralMarker)
}
