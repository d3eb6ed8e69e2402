// Package source loads root firmware archives from disk or over HTTP.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"camlist-cli/internal/client"
)

// Loader fetches archive bytes for a location, which is either a file path or
// an http(s) URL.
type Loader struct {
	Fs     afero.Fs
	Client *client.ArchiveClient
}

// New returns a Loader reading local files from the OS filesystem.
func New(api *client.ArchiveClient) *Loader {
	return &Loader{
		Fs:     afero.NewOsFs(),
		Client: api,
	}
}

// IsURL reports whether location should be downloaded rather than read from disk.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load returns the archive bytes at location and verifies them against
// checksum when one is given.
func (l *Loader) Load(location, checksum string) ([]byte, error) {
	if location == "" {
		return nil, errors.New("no archive location given")
	}

	var data []byte
	var err error
	if IsURL(location) {
		if l.Client == nil {
			return nil, fmt.Errorf("cannot download %s: no HTTP client configured", location)
		}
		data, err = l.Client.GetArchive(location)
	} else {
		data, err = afero.ReadFile(l.Fs, location)
	}
	if err != nil {
		return nil, err
	}

	if err := client.VerifyChecksum(data, checksum); err != nil {
		return nil, err
	}
	return data, nil
}
