package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedImageSchemes are the only img[src] schemes kept by
// RestrictImageSources.
var allowedImageSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"data":  true,
}

// RestrictImageSources removes the src attribute of every image whose URL is
// not http, https or data, so a renderer cannot read local files on behalf of
// untrusted input. Relative paths are removed too: they would resolve against
// the renderer's temp directory. Returns the rewritten HTML and the removed
// sources in document order.
func RestrictImageSources(htmlContent string) (string, []string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", nil, err
	}

	removed := filterImages(doc, nil)
	if len(removed) == 0 {
		return htmlContent, nil, nil
	}

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", nil, err
	}
	return buf.String(), removed, nil
}

func filterImages(n *html.Node, removed []string) []string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		kept := n.Attr[:0]
		for _, attr := range n.Attr {
			if attr.Key == "src" && !isAllowedImageURL(attr.Val) {
				removed = append(removed, attr.Val)
				continue
			}
			kept = append(kept, attr)
		}
		n.Attr = kept
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		removed = filterImages(c, removed)
	}
	return removed
}

func isAllowedImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return allowedImageSchemes[strings.ToLower(u.Scheme)]
}
