package safeguard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestFitsSizeLimit(t *testing.T) {
	type TestCase struct {
		Name     string
		Size     int64
		Max      int64
		Expected bool
	}

	testCases := []TestCase{
		{Name: "under limit", Size: 10, Max: 11, Expected: true},
		{Name: "exactly at limit", Size: MaxImageSize, Max: MaxImageSize, Expected: true},
		{Name: "one byte over", Size: MaxImageSize + 1, Max: MaxImageSize, Expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			blob := domain.Blob{Data: make([]byte, tc.Size)}
			assert.Equal(t, tc.Expected, FitsSizeLimit(blob, tc.Max))
		})
	}
}

func TestTypeChecksUseDeclaredType(t *testing.T) {
	assert.True(t, IsImageType(domain.Blob{ContentType: "image/jpeg"}))
	assert.True(t, IsImageType(domain.Blob{ContentType: "IMAGE/PNG"}))
	assert.False(t, IsImageType(domain.Blob{ContentType: "video/mp4"}))
	assert.True(t, IsVideoType(domain.Blob{ContentType: "video/webm"}))
	assert.False(t, IsVideoType(domain.Blob{ContentType: "application/pdf"}))
}

func TestTypeChecksSniffUndeclaredType(t *testing.T) {
	png := domain.Blob{Name: "apple", Data: pngHeader}
	assert.Equal(t, "image/png", DetectContentType(png))
	assert.True(t, IsImageType(png))
	assert.False(t, IsVideoType(png))

	text := domain.Blob{Name: "notes", Data: bytes.Repeat([]byte("plain text "), 8)}
	assert.False(t, IsImageType(text))
	assert.False(t, IsVideoType(text))

	assert.Equal(t, "", DetectContentType(domain.Blob{}))
}
