// Package fault classifies tracker failures and maps them to exit codes.
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the failure category
type Kind int

const (
	IO Kind = iota + 1
	Serialization
	Connection
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case Serialization:
		return "serialization"
	case Connection:
		return "connection"
	default:
		return "unknown"
	}
}

// Error tags an underlying error with its Kind
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors.Cause walk through the tag
func (e *Error) Cause() error {
	return e.Err
}

// Wrap annotates err with msg and tags it with kind. A nil err stays nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrap(err, msg)}
}

// Wrapf is Wrap with a format string
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}

// KindOf returns the Kind of the outermost tagged error in the chain, or 0
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case IO:
		return 2
	case Serialization:
		return 3
	case Connection:
		return 4
	default:
		return 1
	}
}
