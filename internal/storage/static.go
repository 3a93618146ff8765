package storage

import (
	"context"
	"strings"
)

// StaticResolver builds image URLs under a fixed public base URL.
type StaticResolver struct {
	BaseURL string
}

// TourImageURL implements ImageResolver.
func (r StaticResolver) TourImageURL(_ context.Context, file string) (string, error) {
	if file == "" {
		return "", nil
	}
	return strings.TrimRight(r.BaseURL, "/") + "/" + TourImagePrefix + file, nil
}
