package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSkipped signals that an ingest was a no-op because the payload
// carried a skip marker. It is a flow-control signal, not a failure.
var ErrSkipped = errors.New("analysis skipped: already processed")

// NotFoundError reports a lookup that resolved to nothing, such as a
// video ID out of range.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NotFound builds a NotFoundError with a formatted message.
func NotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// UnrecognizedAspectError reports a focused-insight request for an
// aspect outside the recognized set.
type UnrecognizedAspectError struct {
	Aspect string
	Valid  []string
}

func (e *UnrecognizedAspectError) Error() string {
	return fmt.Sprintf("unrecognized aspect: %s (valid: %s)",
		e.Aspect, strings.Join(e.Valid, ", "))
}
