package models

import (
	"maps"
	"slices"
)

// PlatformIndex maps a platform identifier to its revisions.
// Encoders emit map keys in sorted order, so the serialized form is ordered.
type PlatformIndex map[string]*PlatformData

// PlatformData holds the revisions of one platform keyed by revision key
type PlatformData struct {
	Revisions map[string]*RevisionData `json:"revisions" yaml:"revisions"`
}

// NewPlatformData returns an empty platform entry.
func NewPlatformData() *PlatformData {
	return &PlatformData{Revisions: make(map[string]*RevisionData)}
}

// Platforms returns the platform identifiers in ascending order.
func (idx PlatformIndex) Platforms() []string {
	return slices.Sorted(maps.Keys(idx))
}

// RevisionKeys returns the revision keys in ascending order.
func (p *PlatformData) RevisionKeys() []string {
	return slices.Sorted(maps.Keys(p.Revisions))
}

// RevisionCount returns the total number of revisions across all platforms.
func (idx PlatformIndex) RevisionCount() int {
	n := 0
	for _, p := range idx {
		n += len(p.Revisions)
	}
	return n
}
