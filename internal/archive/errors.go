package archive

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every FormatError.
var ErrFormat = errors.New("not a valid zip archive")

// FormatError reports an archive level whose bytes could not be opened as a zip.
type FormatError struct {
	// Label is the name of the archive as seen by its parent; empty for the root.
	Label string
	Err   error
}

func (e *FormatError) Error() string {
	label := e.Label
	if label == "" {
		label = "<root>"
	}
	return fmt.Sprintf("archive %s: %s: %v", label, ErrFormat, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

// ErrEntryTooLarge is matched by every EntryTooLargeError.
var ErrEntryTooLarge = errors.New("nested archive too large")

// EntryTooLargeError reports a nested archive bigger than the walker's limit.
type EntryTooLargeError struct {
	Name  string
	Limit int64
}

func (e *EntryTooLargeError) Error() string {
	return fmt.Sprintf("%s: %s (limit %d bytes)", e.Name, ErrEntryTooLarge, e.Limit)
}

func (e *EntryTooLargeError) Is(target error) bool {
	return target == ErrEntryTooLarge
}
