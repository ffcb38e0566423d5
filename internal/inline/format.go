// Package inline applies the inline markup of a source line: the $date
// variable, backslash escapes, and emphasis markers.
package inline

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-rnote/internal/dateutil"
)

// DateVariable is replaced by the current date.
const DateVariable = "$date"

var escapes = strings.NewReplacer(
	`\*`, "&ast;",
	`\_`, "&lowbar;",
	`\~`, "&tilde;",
)

// markers are applied in order; longer markers must come first so that
// "***" is not consumed as "**" followed by "*".
var markers = []struct {
	marker string
	open   string
	close  string
}{
	{"***", "<b><i>", "</i></b>"},
	{"**", "<b>", "</b>"},
	{"*", "<i>", "</i>"},
	{"__", "<u>", "</u>"},
	{"~~", "<del>", "</del>"},
}

// Formatter converts inline markup to HTML fragments.
// It holds no mutable state and is safe for concurrent use.
type Formatter struct {
	now    func() time.Time
	layout string
}

// NewFormatter creates a Formatter whose $date uses the given clock and
// date format (token format or preset, see dateutil). A nil clock means
// time.Now.
func NewFormatter(now func() time.Time, dateFormat string) (*Formatter, error) {
	layout, err := dateutil.Layout(dateFormat)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Formatter{now: now, layout: layout}, nil
}

// Date returns today's date in the configured format.
func (f *Formatter) Date() string {
	return f.now().Format(f.layout)
}

// Format converts the inline markup in text. An odd number of a marker is
// closed at the end of the line and reported in warnings.
func (f *Formatter) Format(text string) (string, []string) {
	if strings.Contains(text, DateVariable) {
		text = strings.ReplaceAll(text, DateVariable, f.Date())
	}
	text = escapes.Replace(text)

	var warnings []string
	for _, m := range markers {
		n := strings.Count(text, m.marker)
		if n == 0 {
			continue
		}
		if n%2 != 0 {
			text += m.marker
			warnings = append(warnings, fmt.Sprintf("unclosed %q marker, closed at end of line", m.marker))
		}
		for strings.Contains(text, m.marker) {
			text = strings.Replace(text, m.marker, m.open, 1)
			text = strings.Replace(text, m.marker, m.close, 1)
		}
	}
	return text, warnings
}
