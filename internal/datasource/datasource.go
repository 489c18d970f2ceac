// Package datasource abstracts where the pipeline's CSV bytes come from.
package datasource

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Source opens a stream of CSV bytes.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// File is a Source backed by a local file.
type File struct{ path string }

// NewFile returns a Source reading path.
func NewFile(path string) *File { return &File{path: path} }

// Name returns the file path.
func (f *File) Name() string { return f.path }

// Open returns ctx.Err() if ctx is already done, otherwise the opened file.
// Filesystem errors keep their os.ErrNotExist / os.ErrPermission identity.
func (f *File) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	return r, nil
}
