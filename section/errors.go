package section

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the layout and render passes.
var (
	ErrChildCount       = errors.New("section: wrong number of children")
	ErrNotLaidOut       = errors.New("section: rendered before layout")
	ErrDegenerateBounds = errors.New("section: bounds too small for margin or padding")
	ErrOverflow         = errors.New("section: content does not fit its bounds")
)

// ConfigError reports a section tree that was put together incorrectly.
// It indicates a programming mistake, not a problem with the model.
type ConfigError struct {
	Key  string // key of the misconfigured section
	Kind string // section kind, e.g. "HeaderContent"
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("section: %s %q: %v", e.Kind, e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LayoutError wraps an error raised while laying out or rendering a section.
type LayoutError struct {
	Op  string // "layout" or "render"
	Key string
	Err error
}

func (e *LayoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("section.%s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("section.%s %q: unknown error", e.Op, e.Key)
}

func (e *LayoutError) Unwrap() error { return e.Err }

// wrap attaches op and key to err unless it already carries them.
func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var le *LayoutError
	if errors.As(err, &le) {
		return err
	}
	return &LayoutError{Op: op, Key: key, Err: err}
}
