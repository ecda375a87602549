// Package safeguard holds the size and type checks applied to operator-selected
// files, both when they are selected and again when a product is submitted.
package safeguard

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
)

const (
	MaxImageSize int64 = 10 * 1024 * 1024
	MaxVideoSize int64 = 50 * 1024 * 1024
	MaxImages          = 4
)

func FitsSizeLimit(blob domain.Blob, maxBytes int64) bool {
	return blob.Size() <= maxBytes
}

func IsImageType(blob domain.Blob) bool {
	return strings.HasPrefix(DetectContentType(blob), "image/")
}

func IsVideoType(blob domain.Blob) bool {
	return strings.HasPrefix(DetectContentType(blob), "video/")
}

// DetectContentType returns the declared content type of blob, or the type
// sniffed from its bytes when none was declared. A generic octet-stream
// declaration counts as none.
func DetectContentType(blob domain.Blob) string {
	if ct := strings.ToLower(strings.TrimSpace(blob.ContentType)); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if len(blob.Data) == 0 {
		return ""
	}
	return mimetype.Detect(blob.Data).String()
}

// SizeInMB renders a byte limit the way it is shown to operators.
func SizeInMB(limit int64) int64 {
	return limit / (1024 * 1024)
}
