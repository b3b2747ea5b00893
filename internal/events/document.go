package events

import "time"

// DocumentKind distinguishes base type-system documents from extension
// documents.
type DocumentKind string

const (
	DocumentKindBase      DocumentKind = "base"
	DocumentKindExtension DocumentKind = "extension"
)

// DocumentStart is emitted before a document is processed.
// Context carries the call id.
type DocumentStart struct {
	Name        string
	Kind        DocumentKind
	Definitions int
}

// DocumentFinish is emitted after a document has been processed, successfully
// or not.
type DocumentFinish struct {
	Name        string
	Kind        DocumentKind
	Definitions int
	Err         error
	Duration    time.Duration
}

// ExtensionApplied is emitted when an extension's directives were merged into
// an existing type.
type ExtensionApplied struct {
	TypeName   string
	Directives int
}
