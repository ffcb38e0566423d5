package compiler

import "strings"

// Line prefixes.
const (
	commentPrefix   = "//"
	directivePrefix = ".pp"
	tablePrefix     = "$table"
	tableEnd        = "$endtable"
	insertPrefix    = "$"
	bulletPrefix    = "-"
	paragraphPrefix = "= "
)

var headingPrefixes = map[string]string{
	"# ": "h1",
	"@ ": "h2",
	"! ": "h3",
}

// rule pairs a line classifier with its handler. A handler returns the
// number of lines it consumed; anything below one counts as one.
type rule struct {
	name   string
	match  func(line string) bool
	handle func(r *run, line string) int
}

// rules are tried in order; the first match wins. The order matters:
// "$table" must be tested before the generic "$" insert prefix.
var rules = []rule{
	{"skip", isSkippable, (*run).skip},
	{"directive", hasPrefix(directivePrefix), (*run).directiveLine},
	{"table", hasPrefix(tablePrefix), (*run).table},
	{"insert", hasPrefix(insertPrefix), (*run).insert},
	{"heading", isHeading, (*run).heading},
	{"bullet", hasPrefix(bulletPrefix), (*run).bulletList},
	{"paragraph", hasPrefix(paragraphPrefix), (*run).paragraph},
	{"invalid", func(string) bool { return true }, (*run).invalid},
}

func hasPrefix(prefix string) func(string) bool {
	return func(line string) bool {
		return strings.HasPrefix(line, prefix)
	}
}

func isSkippable(line string) bool {
	return line == "" || strings.HasPrefix(line, commentPrefix)
}

func isHeading(line string) bool {
	_, ok := headingTag(line)
	return ok
}

func headingTag(line string) (string, bool) {
	if len(line) < 2 {
		return "", false
	}
	tag, ok := headingPrefixes[line[:2]]
	return tag, ok
}

func (r *run) skip(string) int {
	return 1
}

func (r *run) directiveLine(line string) int {
	r.directive(strings.TrimPrefix(line, directivePrefix), r.lineNo(), line)
	return 1
}

func (r *run) heading(line string) int {
	tag, _ := headingTag(line)
	text := strings.TrimSpace(line[2:])
	r.doc.InsertBlockElement(tag, r.format(r.lineNo(), text))
	return 1
}

func (r *run) paragraph(line string) int {
	text := strings.TrimSpace(strings.TrimPrefix(line, paragraphPrefix))
	r.doc.InsertBlockElement("p", r.format(r.lineNo(), text))
	return 1
}

// bulletList consumes this line and every following line that starts with
// a dash. The first other line, blank included, ends the list and is left
// for the next dispatch.
func (r *run) bulletList(string) int {
	var items []string
	end := r.pos
	for ; end < len(r.lines); end++ {
		line := strings.TrimSpace(r.lines[end])
		if !strings.HasPrefix(line, bulletPrefix) {
			break
		}
		items = append(items, r.format(end+1, line))
	}
	r.doc.InsertBulletList(items)
	return end - r.pos
}

func (r *run) invalid(line string) int {
	r.addf(r.lineNo(), Error, line, "invalid line on line %d: unrecognized prefix", r.lineNo())
	return 1
}
