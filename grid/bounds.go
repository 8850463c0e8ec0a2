package grid

import "fmt"

// Spacing is an inset on each side of a rectangle, in grid units.
// It is used for margins, padding and cell padding.
type Spacing struct {
	Left, Top, Right, Bottom int
}

// Uniform returns a Spacing with the same inset on all sides.
func Uniform(n int) Spacing {
	return Spacing{Left: n, Top: n, Right: n, Bottom: n}
}

// Symmetric returns a Spacing with h on the left/right and v on the top/bottom.
func Symmetric(h, v int) Spacing {
	return Spacing{Left: h, Top: v, Right: h, Bottom: v}
}

// Horizontal returns the sum of the left and right insets.
func (s Spacing) Horizontal() int { return s.Left + s.Right }

// Vertical returns the sum of the top and bottom insets.
func (s Spacing) Vertical() int { return s.Top + s.Bottom }

// IsZero reports whether all insets are zero.
func (s Spacing) IsZero() bool { return s == Spacing{} }

// Bounds is a rectangle in grid units. LeftColumn and TopRow are 1-based.
type Bounds struct {
	LeftColumn int
	TopRow     int
	Columns    int
	Rows       int
}

// RightColumn returns the last column covered by b.
func (b Bounds) RightColumn() int { return b.LeftColumn + b.Columns - 1 }

// BottomRow returns the last row covered by b.
func (b Bounds) BottomRow() int { return b.TopRow + b.Rows - 1 }

// IsZero reports whether b is the zero value, i.e. was never assigned.
func (b Bounds) IsZero() bool { return b == Bounds{} }

// Contains reports whether the grid cell (row, col) lies inside b.
func (b Bounds) Contains(row, col int) bool {
	return col >= b.LeftColumn && col <= b.RightColumn() &&
		row >= b.TopRow && row <= b.BottomRow()
}

// Normalize clamps b so that Columns and Rows are at least 1 and
// LeftColumn and TopRow are not negative. Normalize is idempotent.
func (b Bounds) Normalize() Bounds {
	if b.LeftColumn < 0 {
		b.LeftColumn = 0
	}
	if b.TopRow < 0 {
		b.TopRow = 0
	}
	if b.Columns < 1 {
		b.Columns = 1
	}
	if b.Rows < 1 {
		b.Rows = 1
	}
	return b
}

// IsNormal reports whether b needs no clamping.
func (b Bounds) IsNormal() bool { return b == b.Normalize() }

// Subtract removes the insets of s from b and normalizes the result.
func (b Bounds) Subtract(s Spacing) Bounds {
	r, _ := b.SubtractChecked(s)
	return r
}

// SubtractChecked is like Subtract but also reports whether the result had
// to be clamped because s did not fit inside b.
func (b Bounds) SubtractChecked(s Spacing) (Bounds, bool) {
	if s.IsZero() {
		return b, false
	}
	raw := Bounds{
		LeftColumn: b.LeftColumn + s.Left,
		TopRow:     b.TopRow + s.Top,
		Columns:    b.Columns - s.Horizontal(),
		Rows:       b.Rows - s.Vertical(),
	}
	n := raw.Normalize()
	return n, n != raw
}

// Expand grows b by the insets of s. It is the inverse of Subtract for
// bounds that did not need clamping.
func (b Bounds) Expand(s Spacing) Bounds {
	return Bounds{
		LeftColumn: b.LeftColumn - s.Left,
		TopRow:     b.TopRow - s.Top,
		Columns:    b.Columns + s.Horizontal(),
		Rows:       b.Rows + s.Vertical(),
	}.Normalize()
}

// String implements fmt.Stringer.
func (b Bounds) String() string {
	return fmt.Sprintf("[col %d row %d, %dx%d]", b.LeftColumn, b.TopRow, b.Columns, b.Rows)
}
