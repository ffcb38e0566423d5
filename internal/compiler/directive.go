package compiler

import (
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// directive runs one preprocessor command. args is the text after ".pp";
// line and text locate the command for diagnostics.
func (r *run) directive(args string, line int, text string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		r.add(line, Error, "missing preprocessor command", text)
		return
	}

	cmd := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "theme":
		if r.requireArg(cmd, arg, line, text) {
			if err := r.style.SetTheme(r.c.themes, arg); err != nil {
				r.addf(line, Warning, text, "%v", err)
			}
		}
	case "margin", "margins":
		if r.requireArg(cmd, arg, line, text) {
			r.layout(line, text, r.style.SetMargin(arg))
		}
	case "size":
		if r.requireArg(cmd, arg, line, text) {
			r.layout(line, text, r.style.SetPageSize(arg))
		}
	case "align", "orientation":
		if r.requireArg(cmd, arg, line, text) {
			r.layout(line, text, r.style.SetOrientation(arg))
		}
	case "title":
		title := strings.TrimSpace(strings.TrimSpace(args)[len(fields[0]):])
		if r.requireArg(cmd, title, line, text) {
			if r.doc.Title() != "" {
				title = " " + title
			}
			r.doc.SetTitle(title)
			r.style.SetTitle(r.doc.Title())
		}
	case "template", "temp", "templ8":
		if r.requireArg(cmd, arg, line, text) {
			r.expandTemplate(arg, line, text)
		}
	case "pgnum":
		r.c.log.Debug("Ignoring pgnum directive", zap.Int("line", line))
	default:
		r.addf(line, Error, text, "unknown preprocessor command %q", fields[0])
	}
}

func (r *run) requireArg(cmd, arg string, line int, text string) bool {
	if arg == "" {
		r.addf(line, Error, text, "preprocessor command %q requires an argument", cmd)
		return false
	}
	return true
}

// layout records fallback warnings of a layout change and regenerates the
// page frame from the updated style.
func (r *run) layout(line int, text string, err error) {
	r.fallbackWarnings(line, text, err)
	r.doc.SetPageFrame(r.frame())
}

func (r *run) fallbackWarnings(line int, text string, err error) {
	for _, e := range multierr.Errors(err) {
		r.addf(line, Warning, text, "%v", e)
	}
}

// expandTemplate runs every directive of a template in place. Nested
// templates are expanded recursively; a template already being expanded,
// or nesting deeper than the configured bound, is reported and skipped.
func (r *run) expandTemplate(name string, line int, text string) {
	if slices.Contains(r.templates, name) {
		chain := strings.Join(append(slices.Clone(r.templates), name), " -> ")
		r.addf(line, Error, text, "template cycle detected: %s", chain)
		return
	}
	if len(r.templates) >= r.c.maxDepth {
		r.addf(line, Error, text, "template %q exceeds maximum nesting depth %d", name, r.c.maxDepth)
		return
	}

	content, err := r.c.templates.LoadTemplate(name)
	if err != nil {
		r.addf(line, Warning, text, "template %q not found, nothing applied: %v", name, err)
		return
	}

	r.c.log.Debug("Expanding template", zap.String("template", name), zap.Int("depth", len(r.templates)+1))
	r.style.Template = name
	r.templates = append(r.templates, name)
	defer func() { r.templates = r.templates[:len(r.templates)-1] }()

	for _, tl := range SplitLines(content) {
		tl = strings.TrimSpace(tl)
		if isSkippable(tl) {
			continue
		}
		r.directive(strings.TrimPrefix(tl, directivePrefix), line, tl)
	}
}
