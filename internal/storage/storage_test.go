package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticResolver(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		file     string
		expected string
	}{
		{"plain base", "https://www.natours.dev", "tour-1-cover.jpg", "https://www.natours.dev/img/tours/tour-1-cover.jpg"},
		{"trailing slash", "http://localhost:3000/", "tour-2-cover.jpg", "http://localhost:3000/img/tours/tour-2-cover.jpg"},
		{"no file", "http://localhost:3000", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StaticResolver{BaseURL: tt.base}.TourImageURL(context.Background(), tt.file)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestS3Client_TourImageURL(t *testing.T) {
	client, err := NewS3Client(context.Background(), "localhost:9000", "minioadmin", "minioadmin", "natours", false)
	require.NoError(t, err)

	raw, err := client.TourImageURL(context.Background(), "tour-1-cover.jpg")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/natours/img/tours/tour-1-cover.jpg", u.Path)
	assert.True(t, strings.Contains(u.RawQuery, "X-Amz-Signature"))

	empty, err := client.TourImageURL(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
