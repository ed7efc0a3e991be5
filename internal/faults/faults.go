// Package faults classifies failures surfaced by the lifecycle manager
// and its collaborators. Each failure carries a Kind so callers can
// distinguish caller mistakes from I/O trouble, security violations,
// and cooperative cancellation without string matching.
package faults

import (
	"errors"
	"fmt"
)

// Kind identifies a failure class.
type Kind int

const (
	// KindValidation marks caller errors detected before any I/O:
	// unknown catalog or extension, release not found, name collision.
	KindValidation Kind = iota
	// KindIO marks download, extraction, and persistence failures.
	KindIO
	// KindSecurity marks permission problems and path-traversal detection.
	KindSecurity
	// KindCanceled marks cooperative cancellation.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	case KindSecurity:
		return "security"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Fault is a classified error. It wraps an optional cause.
type Fault struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (f *Fault) Error() string {
	if f.Cause != nil {
		return f.Msg + ": " + f.Cause.Error()
	}
	return f.Msg
}

func (f *Fault) Unwrap() error { return f.Cause }

// Validation builds a validation fault.
func Validation(format string, args ...any) error {
	return &Fault{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// IO wraps err as an I/O fault.
func IO(err error, format string, args ...any) error {
	return &Fault{Kind: KindIO, Msg: fmt.Sprintf(format, args...), Cause: err}
}

// Security builds a security fault.
func Security(format string, args ...any) error {
	return &Fault{Kind: KindSecurity, Msg: fmt.Sprintf(format, args...)}
}

// Canceled wraps err as a cancellation fault.
func Canceled(err error) error {
	return &Fault{Kind: KindCanceled, Msg: "operation canceled", Cause: err}
}

// KindOf reports the Kind of err. Errors outside the taxonomy report
// KindIO, the catch-all for unexpected runtime trouble.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindIO
}

// IsValidation reports whether err is a validation fault.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsIO reports whether err is an I/O fault.
func IsIO(err error) bool { return is(err, KindIO) }

// IsSecurity reports whether err is a security fault.
func IsSecurity(err error) bool { return is(err, KindSecurity) }

// IsCanceled reports whether err is a cancellation fault.
func IsCanceled(err error) bool { return is(err, KindCanceled) }

func is(err error, k Kind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == k
}
