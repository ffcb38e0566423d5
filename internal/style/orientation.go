package style

import "strings"

// Orientation is the page orientation.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

var orientationSynonyms = map[string]Orientation{
	"port":       Portrait,
	"portrait":   Portrait,
	"vert":       Portrait,
	"vertical":   Portrait,
	"land":       Landscape,
	"landscape":  Landscape,
	"horz":       Landscape,
	"horizontal": Landscape,
}

// ParseOrientation maps a case-insensitive orientation token or synonym
// to its canonical value.
func ParseOrientation(token string) (Orientation, bool) {
	o, ok := orientationSynonyms[strings.ToLower(strings.TrimSpace(token))]
	return o, ok
}
