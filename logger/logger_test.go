package logger_test

import (
	"testing"

	"github.com/patsoffice/arcadecore/logger"
	"github.com/patsoffice/arcadecore/test"
)

func TestLogger(t *testing.T) {
	l := logger.NewLogger(256)
	w, err := test.NewCappedWriter(1024)
	test.ExpectSuccess(t, err)

	l.Write(w)
	test.Equate(t, w.Compare(""), true)

	l.Log(logger.Allow, "test", "this is a test")
	l.Write(w)
	test.Equate(t, w.Compare("test: this is a test\n"), true)

	w.Reset()

	l.Log(logger.Allow, "test2", "this is another test")
	l.Write(w)
	test.Equate(t, w.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	l.Tail(w, 100)
	test.Equate(t, w.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for exactly the correct number of entries is okay
	w.Reset()
	l.Tail(w, 2)
	test.Equate(t, w.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for fewer entries is okay too
	w.Reset()
	l.Tail(w, 1)
	test.Equate(t, w.Compare("test2: this is another test\n"), true)

	// and no entries
	w.Reset()
	l.Tail(w, 0)
	test.Equate(t, w.Compare(""), true)
}

type denyPermission struct{}

func (denyPermission) AllowLogging() bool { return false }

func TestLoggerDeniedPermissionIsNotRecorded(t *testing.T) {
	l := logger.NewLogger(256)
	l.Log(denyPermission{}, "test", "should not appear")

	w, err := test.NewCappedWriter(1024)
	test.ExpectSuccess(t, err)
	l.Write(w)
	test.Equate(t, w.Compare(""), true)
}

func TestLoggerDiscardsOldestPastCapacity(t *testing.T) {
	l := logger.NewLogger(2)
	l.Log(logger.Allow, "a", "1")
	l.Log(logger.Allow, "b", "2")
	l.Log(logger.Allow, "c", "3")

	w, err := test.NewCappedWriter(1024)
	test.ExpectSuccess(t, err)
	l.Write(w)
	test.Equate(t, w.Compare("b: 2\nc: 3\n"), true)
}
