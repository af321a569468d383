package readout

import (
	"errors"
	"fmt"
)

// Error is returned by every operation that can fail during bootstrap or
// shader compilation. Diagnostic carries driver output such as a shader
// info log.
type Error struct {
	Code       Code
	Category   Category
	Diagnostic string
	Err        error
}

func Fail(code Code, diagnostic string, err error) *Error {
	return &Error{
		Code:       code,
		Category:   CategoryOf(code),
		Diagnostic: diagnostic,
		Err:        err,
	}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failed during %s", e.Code, e.Category)
	if e.Diagnostic != "" {
		msg += ": " + e.Diagnostic
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the failure code from err, or Success when err is nil.
// Errors that do not carry a code yield false.
func CodeOf(err error) (Code, bool) {
	if err == nil {
		return Success, true
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return Success, false
}
