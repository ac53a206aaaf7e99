package options

import (
	"errors"
	"fmt"
)

// ErrRuntime is matched by every RuntimeError.
var ErrRuntime = errors.New("options: runtime error")

// RuntimeError reports a lookup or state problem while consuming options.
type RuntimeError struct {
	Handler string
	Reason  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("options: handler %q: %s", e.Handler, e.Reason)
}

// Unwrap exposes ErrRuntime for errors.Is.
func (e *RuntimeError) Unwrap() error {
	return ErrRuntime
}
