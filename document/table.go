package document

import (
	"strings"

	"github.com/dshills/richdoc/text"
)

// TableStyle selects a rendering style for a table.
type TableStyle int

const (
	// TableStyleDefault is the default bordered style.
	TableStyleDefault TableStyle = iota
	// TableStyleBorderless draws no cell borders.
	TableStyleBorderless
	// TableStyleStriped alternates row backgrounds.
	TableStyleStriped
)

// String returns the style's serialized name.
func (s TableStyle) String() string {
	switch s {
	case TableStyleBorderless:
		return "borderless"
	case TableStyleStriped:
		return "striped"
	default:
		return "default"
	}
}

// ParseTableStyle maps a serialized name back to a TableStyle.
func ParseTableStyle(s string) TableStyle {
	switch s {
	case "borderless":
		return TableStyleBorderless
	case "striped":
		return TableStyleStriped
	default:
		return TableStyleDefault
	}
}

// Cell is a single table cell.
type Cell struct {
	Text       text.Text
	Background string // CSS hex color; empty means unset
	Alignment  Alignment
}

// Table is a rectangular grid of cells. Every row has the same column count;
// the grid always has at least one row and one column.
type Table struct {
	id        string
	cells     [][]Cell
	HasHeader bool
	Style     TableStyle
}

// NewTable creates a table with the given dimensions, all cells empty.
// Dimensions below 1 are clamped to 1.
func NewTable(rows, cols int) *Table {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Table{id: newNodeID(), cells: cells}
}

// ID returns the node id.
func (t *Table) ID() string { return t.id }

// Kind returns KindTable.
func (t *Table) Kind() Kind { return KindTable }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.cells) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// Cell returns a pointer to the cell at (row, col), or nil if out of range.
func (t *Table) Cell(row, col int) *Cell {
	if row < 0 || row >= t.RowCount() || col < 0 || col >= t.ColumnCount() {
		return nil
	}
	return &t.cells[row][col]
}

// SetCellText replaces the text of the cell at (row, col).
// Out-of-range coordinates are ignored.
func (t *Table) SetCellText(row, col int, tx text.Text) {
	if c := t.Cell(row, col); c != nil {
		c.Text = tx
	}
}

// InsertRow inserts an empty row at the given index, clamped to [0, rows].
func (t *Table) InsertRow(index int) {
	if index < 0 {
		index = 0
	}
	if index > t.RowCount() {
		index = t.RowCount()
	}
	row := make([]Cell, t.ColumnCount())
	t.cells = append(t.cells, nil)
	copy(t.cells[index+1:], t.cells[index:])
	t.cells[index] = row
}

// InsertColumn inserts an empty column at the given index, clamped to
// [0, cols], in every row.
func (t *Table) InsertColumn(index int) {
	if index < 0 {
		index = 0
	}
	if index > t.ColumnCount() {
		index = t.ColumnCount()
	}
	for r := range t.cells {
		t.cells[r] = append(t.cells[r], Cell{})
		copy(t.cells[r][index+1:], t.cells[r][index:])
		t.cells[r][index] = Cell{}
	}
}

// RemoveRow removes the row at the given index. Removing the last remaining
// row, or an out-of-range index, is a silent no-op.
func (t *Table) RemoveRow(index int) {
	if t.RowCount() <= 1 || index < 0 || index >= t.RowCount() {
		return
	}
	t.cells = append(t.cells[:index], t.cells[index+1:]...)
}

// RemoveColumn removes the column at the given index from every row.
// Removing the last remaining column, or an out-of-range index, is a silent
// no-op.
func (t *Table) RemoveColumn(index int) {
	if t.ColumnCount() <= 1 || index < 0 || index >= t.ColumnCount() {
		return
	}
	for r := range t.cells {
		t.cells[r] = append(t.cells[r][:index], t.cells[r][index+1:]...)
	}
}

// Row returns the removed-row payload for undo: a deep copy of the row.
func (t *Table) Row(index int) []Cell {
	if index < 0 || index >= t.RowCount() {
		return nil
	}
	out := make([]Cell, len(t.cells[index]))
	copy(out, t.cells[index])
	return out
}

// Column returns a deep copy of the column at the given index.
func (t *Table) Column(index int) []Cell {
	if index < 0 || index >= t.ColumnCount() {
		return nil
	}
	out := make([]Cell, t.RowCount())
	for r := range t.cells {
		out[r] = t.cells[r][index]
	}
	return out
}

// RestoreRow reinserts a previously removed row at the given index.
// The row is padded or truncated to the current column count.
func (t *Table) RestoreRow(index int, row []Cell) {
	cols := t.ColumnCount()
	fitted := make([]Cell, cols)
	copy(fitted, row)
	if index < 0 {
		index = 0
	}
	if index > t.RowCount() {
		index = t.RowCount()
	}
	t.cells = append(t.cells, nil)
	copy(t.cells[index+1:], t.cells[index:])
	t.cells[index] = fitted
}

// RestoreColumn reinserts a previously removed column at the given index.
func (t *Table) RestoreColumn(index int, col []Cell) {
	if index < 0 {
		index = 0
	}
	if index > t.ColumnCount() {
		index = t.ColumnCount()
	}
	for r := range t.cells {
		var cell Cell
		if r < len(col) {
			cell = col[r]
		}
		t.cells[r] = append(t.cells[r], Cell{})
		copy(t.cells[r][index+1:], t.cells[r][index:])
		t.cells[r][index] = cell
	}
}

// IsEmpty reports whether every cell is empty.
func (t *Table) IsEmpty() bool {
	for _, row := range t.cells {
		for _, c := range row {
			if !c.Text.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// PlainText returns rows joined by newlines with cells joined by tabs.
func (t *Table) PlainText() string {
	var b strings.Builder
	for r, row := range t.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(cell.Text.String())
		}
	}
	return b.String()
}

// Clone returns a deep copy with the same id.
func (t *Table) Clone() Node {
	cells := make([][]Cell, len(t.cells))
	for r, row := range t.cells {
		cells[r] = make([]Cell, len(row))
		copy(cells[r], row)
	}
	return &Table{id: t.id, cells: cells, HasHeader: t.HasHeader, Style: t.Style}
}
