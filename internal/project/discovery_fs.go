package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileSystemDiscovery implements Discovery for .graphql files on disk
type FileSystemDiscovery struct {
	sources map[SourceID]*SourceMetadata
}

// NewFileSystemDiscovery walks every root for .graphql files. A root may also
// name a single file, which is taken regardless of its extension. Extension
// roots are walked first, so a base root enclosing an extension root does not
// pick up its files.
func NewFileSystemDiscovery(ctx context.Context, baseRoots, extensionRoots []string) (*FileSystemDiscovery, error) {
	if len(baseRoots) == 0 {
		return nil, fmt.Errorf("at least one schema root is required")
	}
	discovery := &FileSystemDiscovery{
		sources: make(map[SourceID]*SourceMetadata),
	}
	for _, root := range extensionRoots {
		if err := discovery.walk(root, RoleExtension); err != nil {
			return nil, err
		}
	}
	for _, root := range baseRoots {
		if err := discovery.walk(root, RoleBase); err != nil {
			return nil, err
		}
	}
	return discovery, nil
}

func (d *FileSystemDiscovery) walk(root string, role Role) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat schema root %q: %w", root, err)
	}
	if !info.IsDir() {
		d.add(root, role)
		return nil
	}

	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".graphql" {
			return nil
		}
		d.add(path, role)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk schema root %q: %w", root, err)
	}
	return nil
}

// add keeps the first role a path was found under.
func (d *FileSystemDiscovery) add(path string, role Role) {
	id := SourceID(filepath.Clean(path))
	if _, ok := d.sources[id]; ok {
		return
	}
	d.sources[id] = &SourceMetadata{ID: id, Role: role, FilePath: string(id)}
}

// ListSources returns the discovered sources sorted by path
func (d *FileSystemDiscovery) ListSources(ctx context.Context) ([]*SourceMetadata, error) {
	return sortedSources(d.sources), nil
}

// ReadSource reads the SDL content of a discovered file
func (d *FileSystemDiscovery) ReadSource(ctx context.Context, id SourceID) (string, error) {
	src, ok := d.sources[id]
	if !ok {
		return "", fmt.Errorf("source %q not found", id)
	}
	content, err := os.ReadFile(src.FilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read source %q: %w", id, err)
	}
	return string(content), nil
}

func sortedSources(m map[SourceID]*SourceMetadata) []*SourceMetadata {
	out := make([]*SourceMetadata, 0, len(m))
	for _, src := range m {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return out
}
