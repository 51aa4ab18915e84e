package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirSource walks a directory tree and yields every supported file.
type DirSource struct {
	root string
}

var _ Source = (*DirSource)(nil)

// NewDirSource creates a Source over the given directory.
func NewDirSource(root string) (*DirSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("ingest: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ingest: %s is not a directory", root)
	}
	return &DirSource{root: root}, nil
}

// Walk visits supported files in lexical order.
func (s *DirSource) Walk(ctx context.Context, fn func(File) error) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !supportedExtension(path) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("ingest: read %s: %w", path, err)
		}
		return fn(File{Path: path, Data: data})
	})
}
