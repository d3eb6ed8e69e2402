package meta

import (
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"camlist-cli/pkg/models"
)

// packageNameRe matches names like "a540-100b-1.4.0-3345-full.zip".
// Groups: platform, revision, version, optional build number, optional variant.
var packageNameRe = regexp.MustCompile(`^([a-z0-9_]+)-([0-9]{3}[a-z])-([0-9]+(?:\.[0-9]+){1,2})(?:-([0-9]+))?(?:-([a-z]+))?$`)

// PackageNameProvider resolves cameras from CHDK-style package file names.
type PackageNameProvider struct{}

// GetCamera implements CameraProvider.
func (PackageNameProvider) GetCamera(name string) (models.CameraDescriptor, bool) {
	base := strings.ToLower(path.Base(name))
	if ext := path.Ext(base); ext == ".zip" {
		base = strings.TrimSuffix(base, ext)
	}

	m := packageNameRe.FindStringSubmatch(base)
	if m == nil {
		return models.CameraDescriptor{}, false
	}

	v, err := semver.NewVersion(m[3])
	if err != nil {
		return models.CameraDescriptor{}, false
	}
	version := v.String()
	if m[4] != "" {
		// CHDK build numbers map onto semver build metadata
		version += "+" + m[4]
	}

	return models.CameraDescriptor{
		Platform: m[1],
		Revision: m[2],
		Version:  version,
	}, true
}

// MapProvider resolves cameras from a fixed table keyed by package name.
// Lookups are case-insensitive. An exact key wins; otherwise keys are tried
// in sorted order, so keys differing only in case always resolve the same way.
type MapProvider map[string]models.CameraDescriptor

// GetCamera implements CameraProvider.
func (p MapProvider) GetCamera(name string) (models.CameraDescriptor, bool) {
	if cam, ok := p[name]; ok {
		return cam, true
	}
	for _, k := range slices.Sorted(maps.Keys(p)) {
		if strings.EqualFold(k, name) {
			return p[k], true
		}
	}
	return models.CameraDescriptor{}, false
}

// ChainProvider asks each provider in turn and returns the first match.
type ChainProvider []CameraProvider

// GetCamera implements CameraProvider.
func (c ChainProvider) GetCamera(name string) (models.CameraDescriptor, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if cam, ok := p.GetCamera(name); ok {
			return cam, true
		}
	}
	return models.CameraDescriptor{}, false
}
