package logging

import (
	"strconv"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Path adds a dataset or output path.
func Path(p string) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Str("path", p) }
}

// Format adds a file format.
func Format(f string) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Str("format", f) }
}

// Rows adds a row count.
func Rows(n int) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Int("rows", n) }
}

// Entries adds a series length.
func Entries(n int) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Int("entries", n) }
}

// MaxValue adds the chart scale ceiling.
func MaxValue(v float64) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Str("max_value", strconv.FormatFloat(v, 'f', -1, 64)) }
}

// Duration adds a duration in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Int64("duration_ms", d.Milliseconds()) }
}

// Err adds an error.
func Err(err error) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Err(err) }
}

// Filter adds the filter column and its selected value.
func Filter(column, value string) Field {
	return func(e *bolt.Event) *bolt.Event { return e.Str("filter", column+"="+value) }
}
