package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BulletDepth returns the nesting depth of a bullet line: its count of
// leading dashes.
func BulletDepth(line string) int {
	return len(line) - len(strings.TrimLeft(line, "-"))
}

// InsertBulletList appends a nested list built from bullet lines. Each
// line's depth is its count of leading dashes; a deeper line opens nested
// lists and a shallower one closes them. Item text is the line without its
// dashes, trimmed, and is parsed as an HTML fragment.
func (d *Document) InsertBulletList(lines []string) {
	if len(lines) == 0 {
		return
	}

	outer := element(atom.Ul)
	d.content.AppendChild(outer)
	scopes := []*html.Node{outer}
	for level := 1; level < max(BulletDepth(lines[0]), 1); level++ {
		scopes = append(scopes, openList(scopes[len(scopes)-1]))
	}

	for _, line := range lines {
		depth := max(BulletDepth(line), 1)
		for len(scopes) < depth {
			scopes = append(scopes, openList(scopes[len(scopes)-1]))
		}
		if len(scopes) > depth {
			scopes = scopes[:depth]
		}

		li := element(atom.Li)
		appendFragment(li, strings.TrimSpace(strings.TrimLeft(line, "-")))
		scopes[len(scopes)-1].AppendChild(li)
	}
}

// openList nests a new list under the last item of parent, or directly
// under parent when it has no item yet.
func openList(parent *html.Node) *html.Node {
	ul := element(atom.Ul)
	if last := parent.LastChild; last != nil && last.DataAtom == atom.Li {
		last.AppendChild(ul)
	} else {
		parent.AppendChild(ul)
	}
	return ul
}
