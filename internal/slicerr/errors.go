// Package slicerr defines the cross-cutting error taxonomy used by every
// layer of the slicing pipeline (spec.md §7). Errors carry a Kind so callers
// can branch on category with errors.As, while the wrapped Err preserves the
// underlying cause for logs.
package slicerr

import "fmt"

// Kind enumerates the error categories spec.md §7 names.
type Kind string

const (
	UnsupportedLanguage      Kind = "unsupported_language"
	ParseFailure             Kind = "parse_failure"
	ExtractionWarning        Kind = "extraction_warning"
	ChangeOutOfRange         Kind = "change_out_of_range"
	ResolutionUnresolved     Kind = "resolution_unresolved"
	ResolutionDepthTruncated Kind = "resolution_depth_truncated"
	IOError                  Kind = "io_error"
	InternalInvariant        Kind = "internal_invariant"
)

// Fatal reports whether an error of this kind aborts processing of the
// affected unit (one file, or one seed) rather than merely being recorded.
func (k Kind) Fatal() bool {
	switch k {
	case ParseFailure, ChangeOutOfRange, IOError, UnsupportedLanguage, InternalInvariant:
		return true
	default:
		return false
	}
}

// Error is the concrete error type produced across the pipeline.
type Error struct {
	Kind Kind
	Path string // file path or seed identifier the error pertains to
	Err  error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind for path, wrapping cause.
func New(kind Kind, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Err: cause}
}

// Is allows errors.Is(err, slicerr.UnsupportedLanguage)-style kind checks by
// comparing Kind fields when the target is itself an *Error; the target's
// Path and cause are not compared.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel kind markers usable with errors.Is(err, slicerr.KindError(...)).
func KindError(k Kind) *Error { return &Error{Kind: k} }
