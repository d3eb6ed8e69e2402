package models

// RevisionData is the value stored under a revision key
type RevisionData struct {
	Source SourceData `json:"source" yaml:"source"`
}

// SourceData names the build a revision entry was taken from
type SourceData struct {
	Platform string `json:"platform" yaml:"platform"`
	Revision string `json:"revision" yaml:"revision"`
}
