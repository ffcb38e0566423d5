package htmldoc

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// RowCells splits a table body row: the bullet marker and the character
// after it are dropped, then the rest is split on ';' and each cell trimmed.
func RowCells(row string) []string {
	r := []rune(row)
	if len(r) <= 2 {
		return []string{""}
	}
	cells := strings.Split(string(r[2:]), ";")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// InsertTable appends a table with one header row and one row per body
// entry. Rows shorter than the header are padded with empty cells.
func (d *Document) InsertTable(header []string, rows []string) {
	table := element(atom.Table)

	head := element(atom.Tr)
	for _, h := range header {
		th := element(atom.Th)
		appendFragment(th, strings.TrimSpace(h))
		head.AppendChild(th)
	}
	table.AppendChild(head)

	for _, row := range rows {
		cells := RowCells(row)
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		tr := element(atom.Tr)
		for _, c := range cells {
			td := element(atom.Td)
			appendFragment(td, c)
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}

	d.content.AppendChild(table)
}
