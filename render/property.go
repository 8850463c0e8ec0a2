package render

// Property is a value computed from the render context and the document
// model at the moment it is needed. Evaluating a Property must not modify
// either argument; sections evaluate the same property during layout and
// again during render and rely on identical results.
//
// The zero Property evaluates to the zero value of T.
type Property[T any] struct {
	fn       func(*Context, any) T
	constant bool
}

// Const returns a Property that always evaluates to v.
func Const[T any](v T) Property[T] {
	return Property[T]{fn: func(*Context, any) T { return v }, constant: true}
}

// Func returns a Property evaluated by fn.
func Func[T any](fn func(ctx *Context, model any) T) Property[T] {
	if fn == nil {
		return Property[T]{}
	}
	return Property[T]{fn: fn}
}

// Model returns a Property evaluated by fn with the model asserted to M.
// When the model is not an M, fn receives the zero M.
func Model[M, T any](fn func(ctx *Context, model M) T) Property[T] {
	return Func(func(ctx *Context, model any) T {
		m, _ := model.(M)
		return fn(ctx, m)
	})
}

// Eval evaluates the property.
func (p Property[T]) Eval(ctx *Context, model any) T {
	if p.fn == nil {
		var zero T
		return zero
	}
	return p.fn(ctx, model)
}

// IsSet reports whether the property is bound to a value or function.
func (p Property[T]) IsSet() bool { return p.fn != nil }

// IsConst reports whether the property was created with Const.
func (p Property[T]) IsConst() bool { return p.constant }

// Or returns p if it is set and def otherwise.
func (p Property[T]) Or(def Property[T]) Property[T] {
	if p.IsSet() {
		return p
	}
	return def
}

// Text is the common Property[string].
type Text = Property[string]

// Flag is the common Property[bool].
type Flag = Property[bool]

// Always is a Flag that is always true.
var Always = Const(true)

// Never is a Flag that is always false.
var Never = Const(false)

// OnFirstPage is a Flag true on the first page only.
var OnFirstPage = Func(func(ctx *Context, _ any) bool { return ctx.IsFirstPage() })

// OnLastPage is a Flag true on the last page only.
var OnLastPage = Func(func(ctx *Context, _ any) bool { return ctx.IsLastPage() })

// NotOnLastPage is a Flag true on every page but the last.
var NotOnLastPage = Func(func(ctx *Context, _ any) bool { return !ctx.IsLastPage() })
