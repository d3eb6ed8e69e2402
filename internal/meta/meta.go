// Package meta resolves camera identity from firmware package names.
package meta

import "camlist-cli/pkg/models"

// DefaultBootFileName is the metadata entry CHDK packages carry at each archive level.
const DefaultBootFileName = "DISKBOOT.BIN"

// CameraProvider maps a package file name to the camera it was built for.
// The second result is false when the name is not a recognised package.
type CameraProvider interface {
	GetCamera(name string) (models.CameraDescriptor, bool)
}

// BootProvider supplies the canonical metadata entry name.
type BootProvider interface {
	BootFileName() string
}

// StaticBootProvider returns a fixed boot file name.
type StaticBootProvider string

// BootFileName implements BootProvider. An empty provider falls back to DefaultBootFileName.
func (p StaticBootProvider) BootFileName() string {
	if p == "" {
		return DefaultBootFileName
	}
	return string(p)
}
