package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileExists = errors.New("file already exists")

// FileStorage keeps generated report files.
type FileStorage interface {
	// Save writes the file under path and returns where it was stored
	Save(ctx context.Context, path string, content io.Reader, overwrite bool) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
