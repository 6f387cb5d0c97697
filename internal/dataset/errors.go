package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a loader.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrColumnNotFound is returned when a query names a missing column.
	ErrColumnNotFound = errors.New("column not found")
	// ErrEmpty is returned when a source or a query yields no rows.
	ErrEmpty = errors.New("no rows")
)

// LoadError wraps a failure to read one dataset.
type LoadError struct {
	Path   string
	Format string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
