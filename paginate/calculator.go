// Package paginate splits a flat list of items across pages whose capacity
// depends on the page position.
//
// The first and last page of a document usually carry headers, totals or
// signatures and hold fewer item rows than the pages in between; a document
// that fits on one page has both and holds fewer still. The Calculator
// simulates the fill page by page rather than using a formula, so every
// budget combination is honored exactly.
package paginate

// Budget is the number of item rows each kind of page can hold.
//
// Zero values get defaults: Last defaults to Middle, Middle to First, and
// Single to the smaller of First and Last. Budgets below one are raised to
// one so that every page makes progress.
type Budget struct {
	First  int
	Middle int
	Last   int
	Single int
}

func (b Budget) normalize() Budget {
	if b.First < 1 {
		b.First = 1
	}
	if b.Middle < 1 {
		b.Middle = b.First
	}
	if b.Last < 1 {
		b.Last = b.Middle
	}
	if b.Single < 1 {
		b.Single = min(b.First, b.Last)
	}
	return b
}

// Option configures a Calculator.
type Option[T any] func(*Calculator[T])

// WithRowCost sets the number of rows an item occupies. The default cost is
// one row per item. Costs below one count as one.
func WithRowCost[T any](cost func(T) int) Option[T] {
	return func(c *Calculator[T]) {
		c.cost = cost
	}
}

// Calculator partitions items into pages. It is immutable after New and
// safe for concurrent use.
type Calculator[T any] struct {
	items  []T
	budget Budget
	cost   func(T) int
	pages  [][]T
}

// New partitions items under budget.
func New[T any](items []T, budget Budget, opts ...Option[T]) *Calculator[T] {
	c := &Calculator[T]{items: items, budget: budget.normalize()}
	for _, opt := range opts {
		opt(c)
	}
	c.pages = c.partition()
	return c
}

func (c *Calculator[T]) rows(item T) int {
	if c.cost == nil {
		return 1
	}
	if n := c.cost(item); n > 1 {
		return n
	}
	return 1
}

func (c *Calculator[T]) total(from int) int {
	n := 0
	for _, it := range c.items[from:] {
		n += c.rows(it)
	}
	return n
}

// fill returns the end index of a page starting at from with the given
// budget. A page always takes at least one item; when keep is true it leaves
// at least one item for a following page.
func (c *Calculator[T]) fill(from, budget int, keep bool) int {
	end, used := from, 0
	limit := len(c.items)
	if keep && limit-from > 1 {
		limit--
	}
	for end < limit {
		r := c.rows(c.items[end])
		if end > from && used+r > budget {
			break
		}
		used += r
		end++
	}
	return end
}

func (c *Calculator[T]) partition() [][]T {
	n := len(c.items)
	if n == 0 {
		return [][]T{{}}
	}
	if c.total(0) <= c.budget.Single {
		return [][]T{c.items}
	}

	var pages [][]T
	start := 0
	end := c.fill(start, c.budget.First, true)
	pages = append(pages, c.items[start:end])
	start = end

	for start < n {
		if c.total(start) <= c.budget.Last {
			pages = append(pages, c.items[start:])
			break
		}
		end = c.fill(start, c.budget.Middle, true)
		pages = append(pages, c.items[start:end])
		start = end
	}
	return pages
}

// Pages returns the items of every page, in order. The returned slices
// share memory with the input and must not be modified.
func (c *Calculator[T]) Pages() [][]T { return c.pages }

// PageCount returns the number of pages. It is at least one.
func (c *Calculator[T]) PageCount() int { return len(c.pages) }

// Page returns the items of page i (zero-based), or nil when i is out of
// range.
func (c *Calculator[T]) Page(i int) []T {
	if i < 0 || i >= len(c.pages) {
		return nil
	}
	return c.pages[i]
}

// Offset returns the number of items on the pages before page i.
func (c *Calculator[T]) Offset(i int) int {
	n := 0
	for p := 0; p < i && p < len(c.pages); p++ {
		n += len(c.pages[p])
	}
	return n
}

// Items returns the source items.
func (c *Calculator[T]) Items() []T { return c.items }

// Budget returns the effective budget after defaults.
func (c *Calculator[T]) Budget() Budget { return c.budget }
