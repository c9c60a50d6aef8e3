// Package test provides small assertion helpers in the style used throughout
// this module's own test files, for the cases where a plain comparison
// reads better than a testify assertion (trace-buffer and table-driven
// cycle tests in particular).
package test

import (
	"fmt"
	"reflect"
	"testing"
)

// ExpectFailure fails t unless v is a falsy value: false or a non-nil
// error.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if ok, isErr := truthy(v); ok && !isErr {
		t.Errorf("expected failure, got success: %v", v)
	}
}

// ExpectSuccess fails t unless v is a truthy value: true or a nil error.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if ok, _ := truthy(v); !ok {
		t.Errorf("expected success, got failure: %v", v)
	}
}

func truthy(v interface{}) (ok bool, isErr bool) {
	switch x := v.(type) {
	case nil:
		return true, false
	case bool:
		return x, false
	case error:
		return x == nil, true
	default:
		return true, false
	}
}

// ExpectEquality fails t unless got equals want.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// ExpectInequality fails t if got equals want.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		t.Errorf("got %v, did not want equality with %v", got, want)
	}
}

// ExpectApproximate fails t unless got and want are within tolerance of
// each other.
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	d := got - want
	if d < 0 {
		d = -d
	}
	if d > tolerance {
		t.Errorf("got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}

// Equate is a terser alias for ExpectEquality used by tests ported
// line-for-line from a reference trace.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	ExpectEquality(t, got, want)
}

// CappedWriter is an io.Writer that accumulates at most limit bytes and
// silently discards anything past the cap. Used to capture the head of a
// long cycle-by-cycle trace without unbounded memory use.
type CappedWriter struct {
	limit int
	buf   []byte
}

// NewCappedWriter creates a CappedWriter that retains at most limit bytes.
func NewCappedWriter(limit int) (*CappedWriter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("capped writer limit must be positive")
	}
	return &CappedWriter{limit: limit}, nil
}

func (c *CappedWriter) Write(p []byte) (int, error) {
	room := c.limit - len(c.buf)
	if room <= 0 {
		return len(p), nil
	}
	if room > len(p) {
		room = len(p)
	}
	c.buf = append(c.buf, p[:room]...)
	return len(p), nil
}

// String returns the bytes retained so far.
func (c *CappedWriter) String() string {
	return string(c.buf)
}

// Compare reports whether the retained bytes equal s.
func (c *CappedWriter) Compare(s string) bool {
	return c.String() == s
}

// Reset discards all retained bytes.
func (c *CappedWriter) Reset() {
	c.buf = c.buf[:0]
}
