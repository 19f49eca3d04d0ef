package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads a price list document from local disk.
type FileSource struct {
	id   string
	name string
	path string
}

func NewFileSource(id, name, path string) *FileSource {
	if name == "" {
		name = filepath.Base(path)
	}
	return &FileSource{id: id, name: name, path: path}
}

func (s *FileSource) ID() string { return s.id }

func (s *FileSource) Describe() Info {
	return Info{Name: s.name, Kind: KindFile, Origin: s.path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading price list: %w", err)
	}
	return data, nil
}

// Path returns the location watched for on-disk changes.
func (s *FileSource) Path() string { return s.path }
