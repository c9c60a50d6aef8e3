// Package errors provides curated errors: plain Go errors with normalised
// formatting so that wrapping the same error at several call sites does not
// repeat the leading message part.
package errors

import (
	"fmt"
	"strings"
)

// Values holds the arguments passed to Errorf, kept around so that nested
// curated errors can be inspected by Has.
type Values []interface{}

type curated struct {
	message string
	values  Values
}

// Errorf creates a new curated error from a message template and its
// arguments, in the manner of fmt.Errorf.
func Errorf(message string, values ...interface{}) error {
	return curated{message: message, values: values}
}

// Error implements the error interface, de-duplicating adjacent repeated
// message parts produced by repeated wrapping.
func (e curated) Error() string {
	s := fmt.Errorf(e.message, e.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}
	return strings.Join(p, ": ")
}

// Is lets the standard library's errors.Is match a curated error against
// another curated error with the same leading message part.
func (e curated) Is(target error) bool {
	t, ok := target.(curated)
	return ok && t.message == e.message
}

// Head returns the leading message part of a curated error, or the plain
// Error() string for any other error.
func Head(err error) string {
	if e, ok := err.(curated); ok {
		return e.message
	}
	return err.Error()
}

// IsAny reports whether err was produced by Errorf.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is reports whether err is a curated error with the given leading message.
func Is(err error, head string) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(curated); ok {
		return e.message == head
	}
	return false
}

// Has reports whether msg appears anywhere in err's causal chain.
func Has(err error, msg string) bool {
	if err == nil || !IsAny(err) {
		return false
	}
	if Is(err, msg) {
		return true
	}
	for _, v := range err.(curated).values {
		if e, ok := v.(curated); ok {
			if Has(e, msg) {
				return true
			}
		}
	}
	return false
}
