package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrInvalidBoolean matches any InvalidBooleanError.
	ErrInvalidBoolean = stderrors.New("illegal boolean value")

	// ErrInvalidPoint matches any InvalidPointError.
	ErrInvalidPoint = stderrors.New("illegal point value")
)

// InvalidBooleanError reports a strict boolean that is not "true" or "false".
type InvalidBooleanError struct {
	Raw string
}

func (e *InvalidBooleanError) Error() string {
	return fmt.Sprintf("illegal boolean value: %s", e.Raw)
}

// Is lets errors.Is match ErrInvalidBoolean.
func (e *InvalidBooleanError) Is(target error) bool {
	return target == ErrInvalidBoolean
}

// InvalidPointError reports a point that is not exactly two integers.
type InvalidPointError struct {
	Raw string
}

func (e *InvalidPointError) Error() string {
	return fmt.Sprintf("illegal point value: %s", e.Raw)
}

// Is lets errors.Is match ErrInvalidPoint.
func (e *InvalidPointError) Is(target error) bool {
	return target == ErrInvalidPoint
}

// CodeOf returns the diagnostic code matching a coercion error, or "" when
// err is not a coercion error.
func CodeOf(err error) Code {
	switch {
	case stderrors.Is(err, ErrInvalidBoolean):
		return CodeInvalidBoolean
	case stderrors.Is(err, ErrInvalidPoint):
		return CodeInvalidPoint
	default:
		return ""
	}
}
