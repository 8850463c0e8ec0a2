package grid_test

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/lvillar/gridpdf/grid"
)

func TestBoundsEdges(t *testing.T) {
	b := grid.Bounds{LeftColumn: 3, TopRow: 5, Columns: 10, Rows: 4}
	if b.RightColumn() != 12 {
		t.Errorf("right column = %d, want 12", b.RightColumn())
	}
	if b.BottomRow() != 8 {
		t.Errorf("bottom row = %d, want 8", b.BottomRow())
	}
	if !b.Contains(5, 3) || !b.Contains(8, 12) || b.Contains(9, 12) || b.Contains(5, 2) {
		t.Error("Contains does not match the rectangle edges")
	}
}

func TestBoundsSubtract(t *testing.T) {
	tests := []struct {
		name    string
		in      grid.Bounds
		spacing grid.Spacing
		want    grid.Bounds
		clamped bool
	}{
		{
			name: "zero spacing",
			in:   grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 10, Rows: 10},
			want: grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 10, Rows: 10},
		},
		{
			name:    "uniform",
			in:      grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 10, Rows: 10},
			spacing: grid.Uniform(2),
			want:    grid.Bounds{LeftColumn: 3, TopRow: 3, Columns: 6, Rows: 6},
		},
		{
			name:    "asymmetric",
			in:      grid.Bounds{LeftColumn: 5, TopRow: 2, Columns: 20, Rows: 8},
			spacing: grid.Spacing{Left: 1, Top: 2, Right: 3, Bottom: 1},
			want:    grid.Bounds{LeftColumn: 6, TopRow: 4, Columns: 16, Rows: 5},
		},
		{
			name:    "too small clamps",
			in:      grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 3, Rows: 2},
			spacing: grid.Uniform(2),
			want:    grid.Bounds{LeftColumn: 3, TopRow: 3, Columns: 1, Rows: 1},
			clamped: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := tt.in.SubtractChecked(tt.spacing)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if clamped != tt.clamped {
				t.Errorf("clamped = %v, want %v", clamped, tt.clamped)
			}
			if got != tt.in.Subtract(tt.spacing) {
				t.Error("Subtract and SubtractChecked disagree")
			}
		})
	}
}

func TestBoundsExpandInvertsSubtract(t *testing.T) {
	b := grid.Bounds{LeftColumn: 4, TopRow: 4, Columns: 12, Rows: 9}
	s := grid.Spacing{Left: 1, Top: 2, Right: 3, Bottom: 0}
	if got := b.Subtract(s).Expand(s); got != b {
		t.Errorf("expand(subtract(b)) = %v, want %v", got, b)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	f := func(l, tp, c, r int16) bool {
		b := grid.Bounds{LeftColumn: int(l), TopRow: int(tp), Columns: int(c), Rows: int(r)}
		n := b.Normalize()
		return n.Normalize() == n && n.IsNormal() &&
			n.Columns >= 1 && n.Rows >= 1 && n.LeftColumn >= 0 && n.TopRow >= 0
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 2000, Rand: rand.New(rand.NewSource(1))}); err != nil {
		t.Error(err)
	}
}

func TestSpacingHelpers(t *testing.T) {
	s := grid.Symmetric(2, 3)
	if s.Horizontal() != 4 || s.Vertical() != 6 {
		t.Errorf("symmetric spacing sums = %d, %d", s.Horizontal(), s.Vertical())
	}
	if !(grid.Spacing{}).IsZero() || s.IsZero() {
		t.Error("IsZero mismatch")
	}
}
