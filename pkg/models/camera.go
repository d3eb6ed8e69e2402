package models

// CameraDescriptor identifies one firmware build resolved from a package name
type CameraDescriptor struct {
	Platform string `json:"platform" yaml:"platform"`
	Revision string `json:"revision" yaml:"revision"` // Canonical form is 4 characters, e.g. "100a"
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	// Source overrides the revision recorded in the catalog when non-empty
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// SourceRevision returns the revision that should be recorded for the descriptor.
func (c CameraDescriptor) SourceRevision() string {
	if c.Source != "" {
		return c.Source
	}
	return c.Revision
}
