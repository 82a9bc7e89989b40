package edit

import (
	"errors"
	"fmt"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// ErrorKind classifies expected validation failures. These are returned to
// the caller, never panicked; the model is left untouched when one occurs.
type ErrorKind string

const (
	KindOverlap           ErrorKind = "Overlap"
	KindTrackTypeMismatch ErrorKind = "TrackTypeMismatch"
	KindMinDuration       ErrorKind = "MinDuration"
	KindNotFound          ErrorKind = "NotFound"
	KindTrackLocked       ErrorKind = "TrackLocked"
	KindBadSplitPoint     ErrorKind = "BadSplitPoint"
	KindInvalidArgument   ErrorKind = "InvalidArgument"
)

// ValidationError is a recoverable, typed rejection of an edit.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func validationf(kind ErrorKind, format string, args ...interface{}) error {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from an error, or "" for non-validation
// errors.
func KindOf(err error) ErrorKind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}
