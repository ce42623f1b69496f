package storage

import (
	"context"
	"errors"
)

// Source loads a raw dataset (catalog or inventory) from wherever it is
// deployed. Implementations must be safe for concurrent use.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// TestSource is a simple in-memory Source for tests.
type TestSource struct {
	data []byte
	err  error
}

func NewTestSource(data []byte) *TestSource {
	return &TestSource{data: data}
}

func NewTestSourceWithError() *TestSource {
	return &TestSource{err: errors.New("not found")}
}

func (t *TestSource) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}
