// Package storage provides the object-storage adapter for report artifacts.
package storage

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen --destination=storage.mock.go --package=storage . ObjectStorage

// ObjectStorage abstracts the artifact store so services and tests never touch
// the S3 SDK directly.
type ObjectStorage interface {
	// Upload stores content under the given key and returns the stored key.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// Download retrieves the content stored under key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// GeneratePresignedURL creates a time-limited download URL for key.
	GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
