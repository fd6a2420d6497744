// Package errs defines the error kinds a rendering run can fail with.
// Every error returned from the pipeline wraps exactly one of the sentinels
// below, so callers match on kind with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrFileNotFound    = errors.New("file not found")
	ErrMalformedInput  = errors.New("malformed input")
	ErrDegenerateTrack = errors.New("degenerate track")
	ErrEncoding        = errors.New("encoding error")
)

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

func FileNotFound(format string, args ...any) error {
	return wrap(ErrFileNotFound, format, args...)
}

func Malformed(format string, args ...any) error {
	return wrap(ErrMalformedInput, format, args...)
}

func Degenerate(format string, args ...any) error {
	return wrap(ErrDegenerateTrack, format, args...)
}

// Encoding wraps an image codec failure, keeping the cause reachable via errors.Unwrap.
func Encoding(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrEncoding, fmt.Sprintf(format, args...), err)
}
