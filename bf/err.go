package bf

import (
	"errors"

	"github.com/ezrec/bfi/translate"
)

var f = translate.From

var (
	// Classifier errors
	ErrNotInstruction = errors.New(f("not an instruction"))

	// Strict parser errors
	ErrUnmatchedClose = errors.New(f("']' without '['"))
	ErrUnclosedLoop   = errors.New(f("'[' without ']'"))
)

// ErrUnrecognized is the character that failed classification.
type ErrUnrecognized rune

func (err ErrUnrecognized) Error() string {
	return f("unrecognized character %q", rune(err))
}

func (err ErrUnrecognized) Is(target error) bool {
	return target == ErrNotInstruction
}

// ErrSyntax locates a strict parse failure by character offset.
type ErrSyntax struct {
	Offset int
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("offset %d %v", err.Offset, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
