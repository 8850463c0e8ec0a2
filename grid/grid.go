// Package grid maps a fixed rows×columns layout grid onto a physical page.
//
// Sections are positioned in grid units (1-based row and column indices);
// the Grid converts those to physical coordinates in the unit of the
// underlying document (millimeters by default) right before drawing.
package grid

// Grid overlays a rows×columns grid on a physical rectangle.
//
// Rows and columns must be greater than zero. The zero Grid is not usable
// and the methods do not guard against it.
type Grid struct {
	width   float64
	height  float64
	rows    int
	columns int
	x, y    float64
}

// New creates a grid covering width×height physical units split into rows
// and columns cells.
func New(width, height float64, rows, columns int) Grid {
	return Grid{width: width, height: height, rows: rows, columns: columns}
}

// WithOffset returns a copy of g whose origin is moved to (x, y).
func (g Grid) WithOffset(x, y float64) Grid {
	g.x, g.y = x, y
	return g
}

// Width returns the physical width covered by the grid.
func (g Grid) Width() float64 { return g.width }

// Height returns the physical height covered by the grid.
func (g Grid) Height() float64 { return g.height }

// Rows returns the number of grid rows.
func (g Grid) Rows() int { return g.rows }

// Columns returns the number of grid columns.
func (g Grid) Columns() int { return g.columns }

// ColumnWidth returns the physical width of one column.
func (g Grid) ColumnWidth() float64 { return g.width / float64(g.columns) }

// RowHeight returns the physical height of one row.
func (g Grid) RowHeight() float64 { return g.height / float64(g.rows) }

// Left returns the physical x coordinate of the left edge of column col.
func (g Grid) Left(col int) float64 { return g.x + float64(col-1)*g.ColumnWidth() }

// Right returns the physical x coordinate of the right edge of column col.
func (g Grid) Right(col int) float64 { return g.x + float64(col)*g.ColumnWidth() }

// Top returns the physical y coordinate of the top edge of row.
func (g Grid) Top(row int) float64 { return g.y + float64(row-1)*g.RowHeight() }

// Bottom returns the physical y coordinate of the bottom edge of row.
func (g Grid) Bottom(row int) float64 { return g.y + float64(row)*g.RowHeight() }

// ColumnsWidth returns the accumulated physical width of n columns.
func (g Grid) ColumnsWidth(n int) float64 { return float64(n) * g.ColumnWidth() }

// RowsHeight returns the accumulated physical height of n rows.
func (g Grid) RowsHeight(n int) float64 { return float64(n) * g.RowHeight() }

// Extent returns bounds covering the whole grid.
func (g Grid) Extent() Bounds {
	return Bounds{LeftColumn: 1, TopRow: 1, Columns: g.columns, Rows: g.rows}
}

// Rect converts b into a physical rectangle.
func (g Grid) Rect(b Bounds) (x, y, w, h float64) {
	return g.Left(b.LeftColumn), g.Top(b.TopRow), g.ColumnsWidth(b.Columns), g.RowsHeight(b.Rows)
}

// RowsFor returns the number of whole rows needed to hold a physical height.
func (g Grid) RowsFor(height float64) int {
	return ceilCells(height, g.RowHeight())
}

// ColumnsFor returns the number of whole columns needed to hold a physical width.
func (g Grid) ColumnsFor(width float64) int {
	return ceilCells(width, g.ColumnWidth())
}

// ceilCells rounds size/cell up, tolerating floating point noise just above
// a whole number of cells.
func ceilCells(size, cell float64) int {
	if size <= 0 {
		return 0
	}
	n := size / cell
	i := int(n)
	if n-float64(i) > 1e-9 {
		i++
	}
	return i
}
