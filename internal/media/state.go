package media

import (
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/safeguard"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

var videoSuffix = regexp.MustCompile(`(?i)\.(mp4|webm|ogg|mov|m4v)$`)

// Detection is the outcome of classifying a media URL.
type Detection struct {
	Kind Kind
	// Overridden is set when the URL suffix forced KindVideo against an
	// explicit KindImage.
	Overridden bool
}

// State is the media selection of one product draft. Every transition
// replaces the whole Selection, so payloads of different sources never
// coexist. State is not safe for concurrent use.
type State struct {
	gallery  GalleryLookup
	previews *PreviewRegistry

	current       Selection
	imagePreviews []Preview
	videoPreview  *Preview
}

func NewState(gallery GalleryLookup, previews *PreviewRegistry) *State {
	return &State{gallery: gallery, previews: previews, current: Empty{}}
}

func (s *State) Current() Selection {
	return s.current
}

// Previews returns the live handles for the current upload, images first.
func (s *State) Previews() []Preview {
	out := append([]Preview(nil), s.imagePreviews...)
	if s.videoPreview != nil {
		out = append(out, *s.videoPreview)
	}
	return out
}

func (s *State) SelectGalleryItem(name string) Gallery {
	sel := Gallery{ItemName: name, ResolvedURL: s.gallery.ImageURL(name)}
	s.releaseUpload()
	s.current = sel
	return sel
}

func (s *State) SelectURL(raw string, explicit Kind) Detection {
	d := ClassifyURL(raw, explicit)
	if d.Overridden {
		log.Warn().Str("component", "SelectURL").Str("url", raw).Msg("video extension detected, treating media url as video")
	}
	s.releaseUpload()
	s.current = URL{Value: raw, Kind: d.Kind}
	return d
}

// ClassifyURL applies the video-extension rule to raw: a video suffix wins
// over the explicit kind.
func ClassifyURL(raw string, explicit Kind) Detection {
	if explicit != KindVideo {
		explicit = KindImage
	}
	if videoSuffix.MatchString(raw) {
		return Detection{Kind: KindVideo, Overridden: explicit != KindVideo}
	}
	return Detection{Kind: explicit}
}

// AddUploadedImages appends the image-typed files to the upload set, keeping
// at most safeguard.MaxImages. Files that are not images are skipped. If any
// image is over the size cap nothing is added.
func (s *State) AddUploadedImages(files []domain.Blob) error {
	var images []domain.Blob
	for _, f := range files {
		if safeguard.IsImageType(f) {
			images = append(images, f)
		}
	}
	for _, img := range images {
		if !safeguard.FitsSizeLimit(img, safeguard.MaxImageSize) {
			return errs.MediaConstraint(fmt.Sprintf("Image too large. Max %dMB allowed.", safeguard.SizeInMB(safeguard.MaxImageSize)))
		}
	}
	if len(images) == 0 {
		return nil
	}

	upload, ok := s.current.(Upload)
	if !ok {
		s.releaseUpload()
		upload = Upload{}
	}

	combined := append(append([]domain.Blob(nil), upload.Images...), images...)
	if len(combined) > safeguard.MaxImages {
		combined = combined[:safeguard.MaxImages]
	}
	for _, img := range combined[len(upload.Images):] {
		s.imagePreviews = append(s.imagePreviews, s.previews.Acquire(img))
	}

	s.current = Upload{Images: combined, Video: upload.Video}
	return nil
}

// SetUploadedVideo replaces the video slot of the upload. Images already
// selected for the upload are kept.
func (s *State) SetUploadedVideo(file domain.Blob) error {
	if !safeguard.IsVideoType(file) {
		return errs.MediaConstraint("Please select a video file.")
	}
	if !safeguard.FitsSizeLimit(file, safeguard.MaxVideoSize) {
		return errs.MediaConstraint(fmt.Sprintf("Video too large. Max %dMB allowed.", safeguard.SizeInMB(safeguard.MaxVideoSize)))
	}

	upload, ok := s.current.(Upload)
	if !ok {
		s.releaseUpload()
		upload = Upload{}
	}
	if s.videoPreview != nil {
		s.previews.Release(*s.videoPreview)
	}
	p := s.previews.Acquire(file)
	s.videoPreview = &p

	video := file
	s.current = Upload{Images: upload.Images, Video: &video}
	return nil
}

func (s *State) Reset() {
	s.releaseUpload()
	s.current = Empty{}
}

func (s *State) releaseUpload() {
	s.previews.Release(s.imagePreviews...)
	s.imagePreviews = nil
	if s.videoPreview != nil {
		s.previews.Release(*s.videoPreview)
		s.videoPreview = nil
	}
}
