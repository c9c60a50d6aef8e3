package errors_test

import (
	"fmt"
	"testing"

	"github.com/patsoffice/arcadecore/errors"
	"github.com/patsoffice/arcadecore/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	test.Equate(t, e.Error(), "test error: foo")

	// wrapping a curated error with the same leading message drops the
	// duplicate rather than repeating it.
	f := errors.Errorf(testError, e)
	test.Equate(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	test.ExpectSuccess(t, errors.Is(e, testError))

	// Has() should fail because testErrorB never appears in e's chain
	test.ExpectFailure(t, errors.Has(e, testErrorB))

	f := errors.Errorf(testErrorB, e)
	test.ExpectFailure(t, errors.Is(f, testError))
	test.ExpectSuccess(t, errors.Is(f, testErrorB))
	test.ExpectSuccess(t, errors.Has(f, testError))
	test.ExpectSuccess(t, errors.Has(f, testErrorB))

	test.ExpectSuccess(t, errors.IsAny(e))
	test.ExpectSuccess(t, errors.IsAny(f))
}

func TestPlainErrors(t *testing.T) {
	e := fmt.Errorf("plain test error")
	test.ExpectFailure(t, errors.IsAny(e))
	test.ExpectFailure(t, errors.Has(e, testError))
}

func TestHead(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	test.Equate(t, errors.Head(e), testError)

	plain := fmt.Errorf("plain test error")
	test.Equate(t, errors.Head(plain), "plain test error")
}

func TestIsAnyNilError(t *testing.T) {
	test.ExpectFailure(t, errors.IsAny(nil))
	test.ExpectFailure(t, errors.Is(nil, testError))
	test.ExpectFailure(t, errors.Has(nil, testError))
}
