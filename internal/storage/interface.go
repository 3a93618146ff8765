package storage

import (
	"context"
	"io"
	"time"
)

// TourImagePrefix is the key prefix (and public path) for tour images.
const TourImagePrefix = "img/tours/"

// Storage defines the interface for object storage operations.
type Storage interface {
	// GetPresignedURL generates a pre-signed URL for downloading an object.
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PutObject uploads an object to storage.
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) error
}

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks tour-booking/internal/storage ImageResolver

// ImageResolver turns a stored image file name into a URL clients can load.
type ImageResolver interface {
	TourImageURL(ctx context.Context, file string) (string, error)
}

var (
	_ Storage       = (*S3Client)(nil)
	_ ImageResolver = (*S3Client)(nil)
	_ ImageResolver = StaticResolver{}
)
