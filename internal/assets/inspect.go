package assets

import (
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ThemeReport summarizes the structure of a theme stylesheet.
// It is a grammar-level view: property values are not validated.
type ThemeReport struct {
	Rulesets     int
	AtRules      int
	Declarations int
	Errors       int
	FirstErr     error
}

// OK reports whether the stylesheet parsed without grammar errors.
func (r ThemeReport) OK() bool {
	return r.Errors == 0 && r.FirstErr == nil
}

// InspectTheme walks a stylesheet with the CSS grammar parser and counts
// what it finds. Parsing continues past recoverable errors.
func InspectTheme(stylesheet string) ThemeReport {
	var report ThemeReport

	parser := css.NewParser(parse.NewInput(strings.NewReader(stylesheet)), false)
	for {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if parser.HasParseError() {
				report.Errors++
				if report.FirstErr == nil {
					report.FirstErr = parser.Err()
				}
				continue
			}
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				report.Errors++
				if report.FirstErr == nil {
					report.FirstErr = err
				}
			}
			return report
		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			report.Rulesets++
		case css.AtRuleGrammar, css.BeginAtRuleGrammar:
			report.AtRules++
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			report.Declarations++
		}
	}
}
