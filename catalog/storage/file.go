package storage

import (
	"context"
	"os"
)

// FileSource loads a dataset from a file shipped with the deployment.
type FileSource struct {
	FilePath string
}

func NewFileSource(filePath string) *FileSource {
	return &FileSource{FilePath: filePath}
}

func (f *FileSource) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(f.FilePath)
}
