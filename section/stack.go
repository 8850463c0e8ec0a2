package section

import (
	"math"

	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// Direction is the main axis of a Stack.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Stack lays its visible children out one after the other along its
// direction, filling the whole content bounds.
//
// A child whose style sets a relative height (vertical) or relative width
// (horizontal) gets that fraction of the stack, rounded to whole grid
// cells. The other children share what is left evenly; the last of them
// absorbs the rounding remainder. Children are positioned in child order.
type Stack struct {
	Base
	Direction Direction
}

// NewVStack returns a vertical Stack.
func NewVStack(key string, children ...Section) *Stack {
	s := &Stack{Direction: Vertical}
	s.Init(s, key, children...)
	return s
}

// NewHStack returns a horizontal Stack.
func NewHStack(key string, children ...Section) *Stack {
	s := &Stack{Direction: Horizontal}
	s.Init(s, key, children...)
	return s
}

// OnLayout implements Section.
func (s *Stack) OnLayout(ctx *render.Context, model any, content grid.Bounds) error {
	st := s.style(ctx, model, 0)
	inner, err := ctx.Clamp(s.key, content, st.Padding)
	if err != nil {
		return err
	}
	children := s.visibleChildren(ctx, model)
	if len(children) == 0 {
		return nil
	}

	weights := make([]float64, len(children))
	for i, c := range children {
		cs := c.base().style(ctx, model, 0)
		if s.Direction == Vertical {
			weights[i] = cs.RelativeHeight
		} else {
			weights[i] = cs.RelativeWidth
		}
	}

	total := inner.Rows
	if s.Direction == Horizontal {
		total = inner.Columns
	}
	sizes := distribute(total, weights)

	pos := inner.TopRow
	if s.Direction == Horizontal {
		pos = inner.LeftColumn
	}
	for i, c := range children {
		b := inner
		if s.Direction == Vertical {
			b.TopRow, b.Rows = pos, sizes[i]
		} else {
			b.LeftColumn, b.Columns = pos, sizes[i]
		}
		ctx.SetBounds(c, b)
		pos += sizes[i]
	}
	return nil
}

// distribute splits total cells between len(weights) slots. Slots with a
// positive weight get round(weight*total) cells, weights above 1 counting
// as 1, trimmed so the running sum never exceeds total. Slots without
// weight share the rest evenly and the last of them takes the integer
// remainder; when every slot has a weight,
// the last weighted slot takes the remainder instead. The result always
// sums to total when there is at least one slot.
func distribute(total int, weights []float64) []int {
	sizes := make([]int, len(weights))
	if len(weights) == 0 {
		return sizes
	}
	if total < 0 {
		total = 0
	}

	assigned := 0
	lastRelative := -1
	var flex []int
	for i, w := range weights {
		if w <= 0 || math.IsNaN(w) {
			flex = append(flex, i)
			continue
		}
		// a slot never takes more than the whole
		w = min(w, 1)
		n := int(math.Round(w * float64(total)))
		if n > total-assigned {
			n = total - assigned
		}
		sizes[i] = n
		assigned += n
		lastRelative = i
	}

	rest := total - assigned
	if len(flex) == 0 {
		sizes[lastRelative] += rest
		return sizes
	}
	each := rest / len(flex)
	for _, i := range flex {
		sizes[i] = each
	}
	sizes[flex[len(flex)-1]] += rest - each*len(flex)
	return sizes
}

// Layer stacks its visible children on top of each other: every child gets
// the full content bounds of the layer, and later children draw over
// earlier ones.
type Layer struct {
	Base
}

// NewLayer returns a Layer.
func NewLayer(key string, children ...Section) *Layer {
	l := &Layer{}
	l.Init(l, key, children...)
	return l
}
