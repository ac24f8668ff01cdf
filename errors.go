package glbgif

import "fmt"

// ConfigError reports an invalid setting. It is always returned before
// any frame is rendered.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RenderError reports a renderer failure on one frame.
type RenderError struct {
	Frame int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render frame %d: %v", e.Frame, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// RestorationError reports that a mesh did not return to its original
// pose after a frame. It indicates a bug and is never retried.
type RestorationError struct {
	Frame     int
	Deviation float64
	Tolerance float64
}

func (e *RestorationError) Error() string {
	return fmt.Sprintf("frame %d: mesh deviates from original pose by %g (tolerance %g)", e.Frame, e.Deviation, e.Tolerance)
}
