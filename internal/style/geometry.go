package style

import "strings"

// Dimensions is a physical page size in centimeters.
type Dimensions struct {
	Width  float64
	Height float64
}

// Margins holds symmetric page margins in centimeters.
type Margins struct {
	TopBottom float64
	LeftRight float64
}

// SizeLetter is the default page size and the fallback for unknown names.
const SizeLetter = "letter"

// Margin preset names.
const (
	MarginNormal   = "normal"
	MarginNarrow   = "narrow"
	MarginModerate = "moderate"
	MarginWide     = "wide"
)

// pageSizes is the process-wide page table. It is never mutated.
var pageSizes = map[string]Dimensions{
	"a0":              {84.1, 118.9},
	"a1":              {59.4, 84.1},
	"a2":              {42.0, 59.4},
	"a3":              {29.7, 42.0},
	"a4":              {21.0, 29.7},
	"a5":              {14.8, 21.0},
	"a6":              {10.5, 14.8},
	"b0":              {100.0, 141.4},
	"b1":              {59.4, 84.1},
	"b2":              {42.0, 59.4},
	"b3":              {29.7, 42.0},
	"b4":              {21.0, 29.7},
	"b5":              {14.8, 21.0},
	"b6":              {10.5, 14.8},
	"elevenseventeen": {21.59, 27.94},
	"legal":           {21.59, 35.56},
	"letter":          {27.94, 43.1},
}

var pageSizeOrder = []string{
	"a0", "a1", "a2", "a3", "a4", "a5", "a6",
	"b0", "b1", "b2", "b3", "b4", "b5", "b6",
	"elevenseventeen", "legal", "letter",
}

var marginPresets = map[string]Margins{
	MarginNormal:   {TopBottom: 2, LeftRight: 2},
	MarginNarrow:   {TopBottom: 1, LeftRight: 1},
	MarginModerate: {TopBottom: 1, LeftRight: 0.75},
	MarginWide:     {TopBottom: 1, LeftRight: 2},
}

var marginOrder = []string{MarginNormal, MarginNarrow, MarginModerate, MarginWide}

// LookupPageSize returns the dimensions of a named page size (case-insensitive).
func LookupPageSize(name string) (Dimensions, bool) {
	d, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// PageSizes returns the recognized page size names.
func PageSizes() []string {
	out := make([]string, len(pageSizeOrder))
	copy(out, pageSizeOrder)
	return out
}

// LookupMargin returns the margins of a named preset (case-insensitive).
func LookupMargin(name string) (Margins, bool) {
	m, ok := marginPresets[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// MarginPresets returns the recognized margin preset names.
func MarginPresets() []string {
	out := make([]string, len(marginOrder))
	copy(out, marginOrder)
	return out
}
