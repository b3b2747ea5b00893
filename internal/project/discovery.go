package project

import (
	"context"
)

// Role tells the loader how a source document is processed.
type Role string

const (
	// RoleBase sources are merged into one type-system document.
	RoleBase Role = "base"
	// RoleExtension sources are processed one at a time after the base
	// document.
	RoleExtension Role = "extension"
)

type SourceID string

type SourceMetadata struct {
	ID       SourceID
	Role     Role
	FilePath string
}

type Discovery interface {
	ListSources(ctx context.Context) ([]*SourceMetadata, error)
	ReadSource(ctx context.Context, id SourceID) (string, error)
}
