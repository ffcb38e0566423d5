// Package htmldoc builds the output HTML document as a node tree with
// three fixed insertion points: the title, the page-style block, and the
// content container.
//
// The rendered document always contains each anchor exactly once:
//
//	</title>
//	/*EndOf@pageManualStyling*/
//	<div id="content">
//
// User-supplied fragments are parsed in the context of their parent element
// and sanitized before insertion, so text can never close, duplicate, or
// remove an anchor.
package htmldoc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Anchors of the rendered document.
const (
	TitleAnchor     = "</title>"
	PageStyleMarker = "/*EndOf@pageManualStyling*/"
	ContentAnchor   = `<div id="content">`
)

// ContentID is the id of the content container.
const ContentID = "content"

// Generator is written to the author meta tag.
const Generator = "RNote Compiler"

// PageFrame is the page layout written to the page-style block.
// Lengths are in centimeters.
type PageFrame struct {
	Size        string
	Orientation string
	Top         float64
	Left        float64
	Width       float64
	Height      float64
}

// CSS renders the @page rule for the frame.
func (f PageFrame) CSS() string {
	return fmt.Sprintf("@page {size: %s %s; @frame {top: %scm; left: %scm; height: %scm; width: %scm;}%s}",
		f.Size, f.Orientation,
		formatLength(f.Top), formatLength(f.Left),
		formatLength(f.Height), formatLength(f.Width),
		PageStyleMarker)
}

// formatLength prints the shortest decimal of v rounded to micrometers.
func formatLength(v float64) string {
	return strconv.FormatFloat(roundMicro(v), 'f', -1, 64)
}

func roundMicro(v float64) float64 {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return r
}

// Document is an HTML document under construction. It is not safe for
// concurrent use; each compilation owns its own Document.
type Document struct {
	root      *html.Node
	title     *html.Node
	pageStyle *html.Node
	content   *html.Node
}

// New returns an empty document with an empty title, the given page frame,
// and an empty content container.
func New(frame PageFrame) *Document {
	d := &Document{
		root:      &html.Node{Type: html.DocumentNode},
		title:     element(atom.Title),
		pageStyle: element(atom.Style),
		content:   element(atom.Div, html.Attribute{Key: "id", Val: ContentID}),
	}

	htmlEl := element(atom.Html)
	head := element(atom.Head)
	body := element(atom.Body)

	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(d.title)
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "description"},
		html.Attribute{Key: "content", Val: "Document generated from RNote markup"}))
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "author"},
		html.Attribute{Key: "content", Val: Generator}))

	body.AppendChild(d.pageStyle)
	body.AppendChild(d.content)

	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)

	d.root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	d.root.AppendChild(htmlEl)

	d.SetPageFrame(frame)
	return d
}

// SetTitle appends text to the document title.
func (d *Document) SetTitle(text string) {
	if text == "" {
		return
	}
	d.title.AppendChild(&html.Node{Type: html.TextNode, Data: neutralize(text)})
}

// Title returns the document title.
func (d *Document) Title() string {
	var b strings.Builder
	for c := d.title.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(c.Data)
	}
	return b.String()
}

// SetPageFrame replaces the @page rule with one built from frame.
func (d *Document) SetPageFrame(frame PageFrame) {
	for c := d.pageStyle.FirstChild; c != nil; c = d.pageStyle.FirstChild {
		d.pageStyle.RemoveChild(c)
	}
	d.pageStyle.AppendChild(&html.Node{Type: html.TextNode, Data: frame.CSS()})
}

// InsertBlockElement appends <tag>innerHTML</tag> to the content container.
func (d *Document) InsertBlockElement(tag, innerHTML string) {
	el := elementByName(tag)
	appendFragment(el, innerHTML)
	d.content.AppendChild(el)
}

// InsertRaw appends a void or empty element such as <br> or <hr>.
func (d *Document) InsertRaw(tag string) {
	d.content.AppendChild(elementByName(tag))
}

// InsertImage appends an image referencing src.
func (d *Document) InsertImage(src string) {
	d.content.AppendChild(element(atom.Img, html.Attribute{Key: "src", Val: neutralize(src)}))
}

// String renders the document.
func (d *Document) String() string {
	var b strings.Builder
	// Writes to a strings.Builder cannot fail and the tree never holds
	// children under void elements.
	_ = html.Render(&b, d.root)
	return b.String()
}

// CountAnchors reports how many times each anchor occurs in rendered HTML.
func CountAnchors(rendered string) (title, pageStyle, content int) {
	return strings.Count(rendered, TitleAnchor),
		strings.Count(rendered, PageStyleMarker),
		strings.Count(rendered, ContentAnchor)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func elementByName(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag}
}
