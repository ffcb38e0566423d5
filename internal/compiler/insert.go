package compiler

import "strings"

// insert handles "$<command> [args]".
func (r *run) insert(line string) int {
	args := strings.TrimPrefix(line, insertPrefix)
	fields := strings.Fields(args)
	if len(fields) == 0 {
		r.add(r.lineNo(), Error, "missing insert command", line)
		return 1
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "br", "hr":
		r.doc.InsertRaw(cmd)
	case "date":
		r.doc.InsertBlockElement("p", r.c.formatter.Date())
	case "wi", "li":
		path := strings.TrimSpace(strings.TrimSpace(args)[len(fields[0]):])
		if path == "" {
			r.addf(r.lineNo(), Error, line, "insert command %q requires an image path", cmd)
			return 1
		}
		r.doc.InsertImage(path)
	default:
		r.addf(r.lineNo(), Error, line, "unknown insert command %q", fields[0])
	}
	return 1
}

// table handles "$table header;cells" followed by "- row;cells" lines and a
// closing "$endtable". Lines that are neither rows nor the end marker are
// reported and skipped. A table left open at the end of input is reported
// and emitted with the rows collected so far.
func (r *run) table(line string) int {
	start := r.lineNo()
	header := strings.Split(strings.TrimPrefix(line, tablePrefix), ";")
	for i, h := range header {
		header[i] = strings.TrimSpace(r.format(start, strings.TrimSpace(h)))
	}

	var rows []string
	end := r.pos + 1
	closed := false
	for ; end < len(r.lines); end++ {
		row := strings.TrimSpace(r.lines[end])
		if row == tableEnd {
			closed = true
			end++
			break
		}
		if !strings.HasPrefix(row, bulletPrefix) {
			r.addf(end+1, Error, row, "table syntax: expected a \"-\" row or %s", tableEnd)
			continue
		}
		rows = append(rows, r.format(end+1, row))
	}

	if !closed {
		r.addf(start, Error, line, "table syntax: missing %s before end of input", tableEnd)
	}
	r.doc.InsertTable(header, rows)
	return end - r.pos
}
