// Package style holds the page-style state of a document: theme, margins,
// page size, orientation, title, and the content area derived from them.
package style

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ThemeLoader resolves a theme name to raw CSS.
type ThemeLoader interface {
	LoadTheme(name string) (string, error)
}

// Geometry is the usable content area of a page in centimeters.
type Geometry struct {
	ContentWidth  float64
	ContentHeight float64
}

// Derive computes the content area for a page size, orientation and margins.
// In landscape the page is rotated, so the width is taken from the page height.
func Derive(page Dimensions, o Orientation, m Margins) Geometry {
	if o == Landscape {
		return Geometry{
			ContentWidth:  page.Height - 2*m.TopBottom,
			ContentHeight: page.Width - 2*m.LeftRight,
		}
	}
	return Geometry{
		ContentWidth:  page.Width - 2*m.LeftRight,
		ContentHeight: page.Height - 2*m.TopBottom,
	}
}

// Patch is a partial update of the page layout. Empty fields are left unchanged.
type Patch struct {
	PageSize    string
	Orientation string
	Margin      string
}

// State is the mutable page-style state of one compilation.
type State struct {
	Theme       string // raw CSS of the active theme
	ThemeName   string
	Margin      string
	TopBottom   float64
	LeftRight   float64
	PageSize    string
	Orientation Orientation
	Title       string
	Template    string // last template expanded

	ContentWidth  float64
	ContentHeight float64
}

// New returns the default state (letter, portrait, normal margins)
// carrying the given theme.
func New(themeName, themeCSS string) *State {
	m := marginPresets[MarginNormal]
	s := &State{
		Theme:       themeCSS,
		ThemeName:   themeName,
		Margin:      MarginNormal,
		TopBottom:   m.TopBottom,
		LeftRight:   m.LeftRight,
		PageSize:    SizeLetter,
		Orientation: Portrait,
	}
	s.derive()
	return s
}

// Apply updates the layout fields named in p and recomputes the content area.
// Unknown values fall back to their defaults; the returned error combines one
// error per fallback and may be split with multierr.Errors.
func (s *State) Apply(p Patch) (Geometry, error) {
	var err error
	if p.Margin != "" {
		err = multierr.Append(err, s.SetMargin(p.Margin))
	}
	if p.PageSize != "" {
		err = multierr.Append(err, s.SetPageSize(p.PageSize))
	}
	if p.Orientation != "" {
		err = multierr.Append(err, s.SetOrientation(p.Orientation))
	}
	return s.Geometry(), err
}

// Geometry returns the current content area.
func (s *State) Geometry() Geometry {
	return Geometry{ContentWidth: s.ContentWidth, ContentHeight: s.ContentHeight}
}

// SetMargin selects a margin preset. Unknown presets fall back to normal.
func (s *State) SetMargin(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	m, ok := marginPresets[key]
	var err error
	if !ok {
		err = fmt.Errorf("%w: %q, using %s", ErrUnknownMargin, name, MarginNormal)
		key, m = MarginNormal, marginPresets[MarginNormal]
	}
	s.Margin = key
	s.TopBottom = m.TopBottom
	s.LeftRight = m.LeftRight
	s.derive()
	return err
}

// SetPageSize selects a page size. Unknown sizes fall back to letter.
func (s *State) SetPageSize(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	var err error
	if _, ok := pageSizes[key]; !ok {
		err = fmt.Errorf("%w: %q, using %s", ErrUnknownPageSize, name, SizeLetter)
		key = SizeLetter
	}
	s.PageSize = key
	s.derive()
	return err
}

// SetOrientation selects the orientation from a token or synonym.
// Unknown tokens fall back to portrait.
func (s *State) SetOrientation(token string) error {
	o, ok := ParseOrientation(token)
	var err error
	if !ok {
		err = fmt.Errorf("%w: %q, using %s", ErrUnknownOrientation, token, Portrait)
		o = Portrait
	}
	s.Orientation = o
	s.derive()
	return err
}

// SetTheme replaces the theme with the CSS the loader returns for name.
// When the theme cannot be loaded the current theme is kept.
func (s *State) SetTheme(loader ThemeLoader, name string) error {
	css, err := loader.LoadTheme(name)
	if err != nil {
		return fmt.Errorf("%w: %q, keeping %q: %v", ErrThemeNotFound, name, s.ThemeName, err)
	}
	s.Theme = css
	s.ThemeName = name
	return nil
}

// SetTitle records the document title.
func (s *State) SetTitle(text string) {
	s.Title = text
}

func (s *State) derive() {
	page := pageSizes[s.PageSize]
	g := Derive(page, s.Orientation, Margins{TopBottom: s.TopBottom, LeftRight: s.LeftRight})
	s.ContentWidth = g.ContentWidth
	s.ContentHeight = g.ContentHeight
}
