package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage stores selfie images and other binary artifacts.
type FileStorage interface {
	// Upload stores file under path and returns the stored key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Delete(ctx context.Context, path string) error

	// GetURL generates a presigned/public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
