package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled completes futures whose native binding went away
	ErrCanceled = errors.New("canceled")

	// ErrNothingToDescribe is returned when no widget under the cursor could be named
	ErrNothingToDescribe = errors.New("could not generate query for widget")

	// ErrUnknownNativeObject is returned for calls to an object that is not bound
	ErrUnknownNativeObject = errors.New("unknown native object")

	// ErrUnknownNativeMethod is returned for calls to a method the object does not expose
	ErrUnknownNativeMethod = errors.New("unknown native method")

	// ErrNativeCallRefused is returned for calls from a page that was not let in by the allow-list
	ErrNativeCallRefused = errors.New("native call refused")

	// ErrPageNotConnected is returned when no page session is attached
	ErrPageNotConnected = errors.New("page not connected")
)

// NativeCallError wraps a failure raised by a bound native method
type NativeCallError struct {
	Object string
	Method string
	Err    error
}

// Error implements the error interface
func (e *NativeCallError) Error() string {
	return fmt.Sprintf("native call %s.%s failed: %v", e.Object, e.Method, e.Err)
}

// Unwrap returns the underlying error
func (e *NativeCallError) Unwrap() error {
	return e.Err
}
