package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateRevisionKey is matched by every DuplicateRevisionKeyError.
	ErrDuplicateRevisionKey = errors.New("duplicate revision key")
	// ErrMalformedRevision is matched by every MalformedRevisionError.
	ErrMalformedRevision = errors.New("malformed revision")
)

// DuplicateRevisionKeyError is returned when two builds of one platform
// produce the same revision key.
type DuplicateRevisionKeyError struct {
	Platform string
	Key      string
	Existing string // revision already stored under Key
	Revision string // revision that was rejected
}

func (e *DuplicateRevisionKeyError) Error() string {
	return fmt.Sprintf("%s: platform %s key %s: revision %s collides with %s",
		ErrDuplicateRevisionKey, e.Platform, e.Key, e.Revision, e.Existing)
}

func (e *DuplicateRevisionKeyError) Is(target error) bool {
	return target == ErrDuplicateRevisionKey
}

// MalformedRevisionError is returned for a revision shorter than four characters.
type MalformedRevisionError struct {
	Revision string
}

func (e *MalformedRevisionError) Error() string {
	return fmt.Sprintf("%s %q: want at least 4 characters", ErrMalformedRevision, e.Revision)
}

func (e *MalformedRevisionError) Is(target error) bool {
	return target == ErrMalformedRevision
}
