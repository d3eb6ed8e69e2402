// Package catalog folds the cameras found in a firmware archive into a sorted
// platform index.
package catalog

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"camlist-cli/internal/archive"
	"camlist-cli/pkg/models"
)

// Option configures a Builder.
type Option func(*Builder)

// WithOverwrite makes a later build replace an earlier one stored under the
// same revision key instead of failing.
func WithOverwrite() Option {
	return func(b *Builder) {
		b.overwrite = true
	}
}

// WithLogger sets the logger used to report collisions and results.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder produces a PlatformIndex from a root archive.
type Builder struct {
	walker    *archive.Walker
	overwrite bool
	logger    *log.Logger
}

// NewBuilder returns a Builder that discovers cameras with walker.
// Collisions fail with a DuplicateRevisionKeyError unless WithOverwrite is given.
func NewBuilder(walker *archive.Walker, opts ...Option) *Builder {
	b := &Builder{
		walker: walker,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetCameraList walks the root archive in r and returns the index of every
// camera found. No partial index is returned on error.
func (b *Builder) GetCameraList(r io.ReaderAt, size int64) (models.PlatformIndex, error) {
	index, _, err := b.GetCameraListStats(r, size)
	return index, err
}

// GetCameraListStats is GetCameraList that also reports what the walk saw.
// Every call owns its index and counters, so a Builder may be used from
// several goroutines at once.
func (b *Builder) GetCameraListStats(r io.ReaderAt, size int64) (models.PlatformIndex, archive.Stats, error) {
	index := make(models.PlatformIndex)
	stats, err := b.walker.Walk(r, size, "", func(cam models.CameraDescriptor) error {
		return b.addCamera(index, cam)
	})
	if err != nil {
		return nil, stats, err
	}

	b.logger.Info("camera list built", "platforms", len(index), "revisions", index.RevisionCount())
	return index, stats, nil
}

// GetCameraListFromReader buffers r and calls GetCameraList.
func (b *Builder) GetCameraListFromReader(r io.Reader) (models.PlatformIndex, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return b.GetCameraList(bytes.NewReader(data), int64(len(data)))
}

func (b *Builder) addCamera(index models.PlatformIndex, cam models.CameraDescriptor) error {
	key, err := RevisionKey(cam.Revision)
	if err != nil {
		return fmt.Errorf("platform %s: %w", cam.Platform, err)
	}

	platform, ok := index[cam.Platform]
	if !ok {
		platform = models.NewPlatformData()
		index[cam.Platform] = platform
	}

	revision := cam.SourceRevision()
	if existing, ok := platform.Revisions[key]; ok {
		if !b.overwrite {
			return &DuplicateRevisionKeyError{
				Platform: cam.Platform,
				Key:      key,
				Existing: existing.Source.Revision,
				Revision: revision,
			}
		}
		b.logger.Warn("overwriting revision", "platform", cam.Platform, "key", key,
			"old", existing.Source.Revision, "new", revision)
	}

	platform.Revisions[key] = &models.RevisionData{
		Source: models.SourceData{
			Platform: cam.Platform,
			Revision: revision,
		},
	}
	return nil
}
