// Package colerrors provides structured error handling for colprof with
// error categorization, key-value details and stack traces.
//
// # Overview
//
// Every error produced by the profiling packages is a *Error carrying an
// ErrorType. Callers branch on the type rather than on message text:
//
//	if err := col.Reclassify("date"); err != nil {
//	    if colerrors.IsType(err, colerrors.ErrorTypeUnknownType) {
//	        // let the user pick another type
//	    }
//	    return err
//	}
//
// # Fatal errors
//
// Apart from ErrorTypeUnknownType, every error type describes either a broken
// deployment (model artifacts, configuration) or a violated input contract
// (malformed posteriors, feature width mismatch). IsFatal reports those so
// hosts can stop instead of producing partial profiles.
//
// # Thread Safety
//
// Error instances are not thread-safe for modification. Add details before
// sharing an error across goroutines.
package colerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error.
type ErrorType string

const (
	// ErrorTypeUnknownType is returned when a type is not among the types a
	// column has row posteriors for.
	ErrorTypeUnknownType ErrorType = "unknown_type"
	// ErrorTypeModelLoad represents missing or corrupt classifier artifacts
	ErrorTypeModelLoad ErrorType = "model_load"
	// ErrorTypeDimension represents a feature vector whose width does not
	// match the classifier
	ErrorTypeDimension ErrorType = "dimension"
	// ErrorTypeData represents malformed inference outputs or column data
	ErrorTypeData ErrorType = "data"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
	// ErrorTypeStorage represents object store errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeInternal represents internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error with context.
//
// Fields:
//   - Type: Categorizes the error for handling strategies
//   - Message: Human-readable error description
//   - Cause: The underlying error that caused this error
//   - Details: Key-value pairs providing additional context
//   - Stack: Call stack at the point of error creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error. It can be chained.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, capturing the
// call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf is New with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context. If err is already
// an *Error its stack is preserved. Returns nil if err is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// UnknownType builds the error returned when typeName has no row posteriors.
func UnknownType(typeName string) *Error {
	return &Error{
		Type:    ErrorTypeUnknownType,
		Message: fmt.Sprintf("type %q is unknown", typeName),
		Details: map[string]interface{}{"type": typeName},
		Stack:   captureStack(2),
	}
}

// IsType checks if the outermost *Error in the chain has the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// IsFatal reports whether err should stop the host. Only unknown-type errors
// are recoverable; untyped errors are treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !IsType(err, ErrorTypeUnknownType)
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
