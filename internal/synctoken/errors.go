package synctoken

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("sync token could not be decoded")
	// ErrMissingField matches every *MissingFieldError.
	ErrMissingField = errors.New("sync token is missing a required field")
	// ErrEmptyToken is the cause of a DecodeError for blank tokens.
	ErrEmptyToken = errors.New("empty token")
)

// DecodeError reports a token that is not valid base64, UTF-8, or a JSON object
// of the expected shape.
type DecodeError struct {
	Err   error
	Stage string
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrDecode, e.Stage)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDecode, e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecode) true for any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// MissingFieldError reports a well-formed token lacking transactions or user.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingField, e.Field)
}

// Is makes errors.Is(err, ErrMissingField) true for any MissingFieldError.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
