// Package archive walks nested zip archives and resolves the camera each
// package level was built for.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"

	"camlist-cli/internal/meta"
	"camlist-cli/pkg/models"
)

// NestedExtension marks an entry as a nested archive.
const NestedExtension = ".zip"

// WalkFunc is called for every camera resolved during a walk, in depth-first
// order with nested archives visited before their parent's own match.
// Returning an error stops the walk and the error is returned by Walk.
type WalkFunc func(cam models.CameraDescriptor) error

// Stats counts what a single walk encountered.
type Stats struct {
	Archives   int // archive levels opened, the root included
	Entries    int // entries enumerated across all levels
	Matches    int // metadata entries found
	Unresolved int // metadata entries whose package name was not recognised
}

// DefaultMaxEntrySize caps how many bytes of a single nested archive are
// buffered in memory.
const DefaultMaxEntrySize int64 = 512 << 20

// Walker enumerates archive levels and resolves metadata entries. A Walker
// holds no per-walk state and may be shared between goroutines.
type Walker struct {
	cameras      meta.CameraProvider
	bootFile     string
	logger       *log.Logger
	maxEntrySize int64
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithMaxEntrySize limits the size of a nested archive entry. Zero or a
// negative value removes the limit.
func WithMaxEntrySize(n int64) WalkerOption {
	return func(w *Walker) {
		w.maxEntrySize = n
	}
}

// NewWalker returns a Walker resolving cameras with the given providers.
// The boot file name is read once here and used for every walk.
func NewWalker(cameras meta.CameraProvider, boot meta.BootProvider, logger *log.Logger, opts ...WalkerOption) *Walker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := &Walker{
		cameras:      cameras,
		bootFile:     boot.BootFileName(),
		logger:       logger,
		maxEntrySize: DefaultMaxEntrySize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// BootFileName returns the metadata entry name this walker matches.
func (w *Walker) BootFileName() string {
	return w.bootFile
}

// walkState is owned by a single Walk call.
type walkState struct {
	stats Stats
	fn    WalkFunc
}

// Walk opens r as a zip archive named label and calls fn for every camera
// found in it and in any archives nested inside it. The root archive uses an
// empty label. The returned Stats cover whatever was walked before an error.
func (w *Walker) Walk(r io.ReaderAt, size int64, label string, fn WalkFunc) (Stats, error) {
	st := &walkState{fn: fn}
	err := w.walk(st, r, size, label)
	return st.stats, err
}

// WalkReader buffers r in memory and walks it like Walk.
func (w *Walker) WalkReader(r io.Reader, label string, fn WalkFunc) (Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read archive: %w", err)
	}
	return w.Walk(bytes.NewReader(data), int64(len(data)), label, fn)
}

func (w *Walker) walk(st *walkState, r io.ReaderAt, size int64, label string) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return &FormatError{Label: label, Err: err}
	}

	st.stats.Archives++
	w.logger.Debug("entering archive", "label", label, "entries", len(zr.File))
	defer w.logger.Debug("exiting archive", "label", label)

	for _, f := range zr.File {
		st.stats.Entries++

		// Ignore anything that is not a regular file e.g. directories
		if f.FileInfo().IsDir() || !f.Mode().IsRegular() {
			continue
		}

		if strings.EqualFold(path.Ext(f.Name), NestedExtension) {
			if err := w.walkNested(st, f); err != nil {
				return err
			}
		}

		if strings.EqualFold(f.Name, w.bootFile) {
			st.stats.Matches++
			cam, ok := w.cameras.GetCamera(label)
			if !ok {
				st.stats.Unresolved++
				w.logger.Debug("unrecognised package", "label", label)
				continue
			}
			if err := st.fn(cam); err != nil {
				return err
			}
		}
	}

	return nil
}

// walkNested reads one nested archive entry and walks it. The entry stream is
// closed before returning, whatever the outcome of the nested walk.
func (w *Walker) walkNested(st *walkState, f *zip.File) (err error) {
	if w.maxEntrySize > 0 && f.UncompressedSize64 > uint64(w.maxEntrySize) {
		return &EntryTooLargeError{Name: f.Name, Limit: w.maxEntrySize}
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", f.Name, closeErr)
		}
	}()

	var src io.Reader = rc
	if w.maxEntrySize > 0 {
		// header sizes are not trusted
		src = io.LimitReader(rc, w.maxEntrySize+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	if w.maxEntrySize > 0 && int64(len(data)) > w.maxEntrySize {
		return &EntryTooLargeError{Name: f.Name, Limit: w.maxEntrySize}
	}

	return w.walk(st, bytes.NewReader(data), int64(len(data)), path.Base(f.Name))
}
