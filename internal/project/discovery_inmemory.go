package project

import (
	"context"
	"fmt"
)

type InMemorySource struct {
	Name    string
	Role    Role
	Content string
}

// InMemoryDiscovery is a test implementation of Discovery that stores data in memory
type InMemoryDiscovery struct {
	sources  map[SourceID]*SourceMetadata
	contents map[SourceID]string
}

// NewInMemoryDiscovery creates a new InMemoryDiscovery instance. An empty
// Role means RoleBase.
func NewInMemoryDiscovery(srcs []InMemorySource) *InMemoryDiscovery {
	discovery := &InMemoryDiscovery{
		sources:  make(map[SourceID]*SourceMetadata),
		contents: make(map[SourceID]string),
	}
	for _, src := range srcs {
		role := src.Role
		if role == "" {
			role = RoleBase
		}
		id := SourceID(src.Name)
		discovery.sources[id] = &SourceMetadata{ID: id, Role: role, FilePath: src.Name}
		discovery.contents[id] = src.Content
	}
	return discovery
}

// ListSources implements Discovery interface
func (d *InMemoryDiscovery) ListSources(ctx context.Context) ([]*SourceMetadata, error) {
	return sortedSources(d.sources), nil
}

// ReadSource implements Discovery interface
func (d *InMemoryDiscovery) ReadSource(ctx context.Context, id SourceID) (string, error) {
	content, exists := d.contents[id]
	if !exists {
		return "", fmt.Errorf("source %q not found", id)
	}
	return content, nil
}
