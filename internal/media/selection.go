package media

import "github.com/alimikegami/point-of-sales/admin-console/internal/domain"

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Mode names the active Selection branch.
type Mode string

const (
	ModeEmpty   Mode = "empty"
	ModeGallery Mode = "gallery"
	ModeURL     Mode = "url"
	ModeUpload  Mode = "upload"
)

// Selection is the media attached to a product draft. Exactly one variant is
// active: Empty, Gallery, URL or Upload.
type Selection interface {
	Mode() Mode
	selection()
}

type Empty struct{}

type Gallery struct {
	ItemName    string
	ResolvedURL string
}

type URL struct {
	Value string
	Kind  Kind
}

type Upload struct {
	Images []domain.Blob
	Video  *domain.Blob
}

func (Empty) Mode() Mode   { return ModeEmpty }
func (Gallery) Mode() Mode { return ModeGallery }
func (URL) Mode() Mode     { return ModeURL }
func (Upload) Mode() Mode  { return ModeUpload }

func (Empty) selection()   {}
func (Gallery) selection() {}
func (URL) selection()     {}
func (Upload) selection()  {}

// HasFiles reports whether the upload carries at least one image or a video.
func (u Upload) HasFiles() bool {
	return len(u.Images) > 0 || u.Video != nil
}
