package store

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrorKind classifies storage failures. "Not found" is not a failure and is
// reported through return values, never through errors.
type ErrorKind int

const (
	// KindIO covers connection and statement-level failures.
	KindIO ErrorKind = iota + 1
	// KindConstraint covers schema constraint violations (e.g. NOT NULL).
	KindConstraint
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindConstraint:
		return "constraint"
	default:
		return "unknown"
	}
}

// Error is the error type returned by all Store operations.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapErr classifies err and wraps it with the failing operation name.
func wrapErr(op string, err error) error {
	kind := KindIO
	var serr *sqlite.Error
	if errors.As(err, &serr) && serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		kind = KindConstraint
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
