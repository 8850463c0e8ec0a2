package render

import "sort"

// DefaultStyleName is the name of the fallback style every Styles holds.
const DefaultStyleName = "Default"

// Styles maps style names to styles. It always holds a style named
// DefaultStyleName, returned for names that are not registered. A Styles is
// not modified after construction; With returns an extended copy.
type Styles struct {
	m map[string]Style
}

// NewStyles creates a Styles whose default is def (renamed to
// DefaultStyleName) plus styles. A later style replaces an earlier one with
// the same name; a style named DefaultStyleName replaces def.
func NewStyles(def Style, styles ...Style) *Styles {
	s := &Styles{m: make(map[string]Style, len(styles)+1)}
	s.m[DefaultStyleName] = def.Copy(DefaultStyleName)
	for _, st := range styles {
		s.m[st.Name()] = st
	}
	return s
}

// With returns a copy of s with styles added.
func (s *Styles) With(styles ...Style) *Styles {
	n := &Styles{m: make(map[string]Style, len(s.m)+len(styles))}
	for k, v := range s.m {
		n.m[k] = v
	}
	for _, st := range styles {
		n.m[st.Name()] = st
	}
	return n
}

// Get returns the style registered under name, or the default style.
func (s *Styles) Get(name string) Style {
	if st, ok := s.m[name]; ok {
		return st
	}
	return s.m[DefaultStyleName]
}

// Has reports whether name is registered.
func (s *Styles) Has(name string) bool {
	_, ok := s.m[name]
	return ok
}

// Default returns the default style.
func (s *Styles) Default() Style { return s.m[DefaultStyleName] }

// Len returns the number of registered styles, including the default.
func (s *Styles) Len() int { return len(s.m) }

// Names returns the registered style names in sorted order.
func (s *Styles) Names() []string {
	names := make([]string, 0, len(s.m))
	for k := range s.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
