package media

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/safeguard"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

func image(name string, size int64) domain.Blob {
	return domain.Blob{Name: name, ContentType: "image/jpeg", Data: make([]byte, size)}
}

func video(name string, size int64) domain.Blob {
	return domain.Blob{Name: name, ContentType: "video/mp4", Data: make([]byte, size)}
}

func newState() (*State, *PreviewRegistry) {
	previews := NewPreviewRegistry()
	return NewState(NewStaticGallery("https://cdn.example.com/gallery"), previews), previews
}

func TestSelectGalleryItemClearsOtherSources(t *testing.T) {
	items := []string{"Apple", "Kaju Katli", "Unknown Item", ""}

	for _, name := range items {
		t.Run(fmt.Sprintf("item %q", name), func(t *testing.T) {
			s, previews := newState()
			s.SelectURL("https://example.com/a.jpg", KindImage)
			require.NoError(t, s.AddUploadedImages([]domain.Blob{image("a", 10)}))
			require.NoError(t, s.SetUploadedVideo(video("v", 10)))

			sel := s.SelectGalleryItem(name)

			assert.Equal(t, name, sel.ItemName)
			current, ok := s.Current().(Gallery)
			require.True(t, ok)
			assert.Equal(t, name, current.ItemName)
			assert.Empty(t, s.Previews())
			assert.Zero(t, previews.Live())
		})
	}
}

func TestSelectGalleryItemResolvesURL(t *testing.T) {
	s, _ := newState()

	assert.Equal(t, "https://cdn.example.com/gallery/kaju-katli.jpg", s.SelectGalleryItem("Kaju Katli").ResolvedURL)
	assert.Equal(t, "", s.SelectGalleryItem("Not In Gallery").ResolvedURL)

	bare := NewState(NewStaticGallery(""), NewPreviewRegistry())
	assert.Equal(t, "", bare.SelectGalleryItem("Apple").ResolvedURL)
}

func TestSelectURLDetection(t *testing.T) {
	type TestCase struct {
		Name       string
		URL        string
		Explicit   Kind
		Kind       Kind
		Overridden bool
	}

	testCases := []TestCase{
		{Name: "image stays image", URL: "https://x/a.jpg", Explicit: KindImage, Kind: KindImage},
		{Name: "video suffix overrides image toggle", URL: "https://x/clip.MP4", Explicit: KindImage, Kind: KindVideo, Overridden: true},
		{Name: "m4v suffix", URL: "https://x/clip.m4v", Explicit: KindImage, Kind: KindVideo, Overridden: true},
		{Name: "explicit video without suffix", URL: "https://x/stream", Explicit: KindVideo, Kind: KindVideo},
		{Name: "explicit video with suffix", URL: "https://x/clip.webm", Explicit: KindVideo, Kind: KindVideo},
		{Name: "suffix must be at the end", URL: "https://x/clip.mp4?x=1", Explicit: KindImage, Kind: KindImage},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			s, _ := newState()
			s.SelectGalleryItem("Apple")

			d := s.SelectURL(tc.URL, tc.Explicit)

			assert.Equal(t, tc.Kind, d.Kind)
			assert.Equal(t, tc.Overridden, d.Overridden)
			assert.Equal(t, URL{Value: tc.URL, Kind: tc.Kind}, s.Current())
		})
	}
}

func TestAddUploadedImagesNeverExceedsFour(t *testing.T) {
	batches := [][]int{{1}, {3, 2}, {5}, {2, 2, 2}, {4, 4}}

	for _, sizes := range batches {
		t.Run(fmt.Sprint(sizes), func(t *testing.T) {
			s, previews := newState()
			total := 0
			for b, n := range sizes {
				var files []domain.Blob
				for i := 0; i < n; i++ {
					files = append(files, image(fmt.Sprintf("b%d-%d", b, i), 16))
				}
				require.NoError(t, s.AddUploadedImages(files))
				total += n

				upload := s.Current().(Upload)
				assert.LessOrEqual(t, len(upload.Images), safeguard.MaxImages)
				assert.Equal(t, min(total, safeguard.MaxImages), len(upload.Images))
				assert.Equal(t, len(upload.Images), previews.Live())
			}
		})
	}
}

func TestAddUploadedImagesKeepsOrder(t *testing.T) {
	s, _ := newState()
	require.NoError(t, s.AddUploadedImages([]domain.Blob{image("first", 1), image("second", 1)}))
	require.NoError(t, s.AddUploadedImages([]domain.Blob{image("third", 1), image("fourth", 1), image("fifth", 1)}))

	upload := s.Current().(Upload)
	var names []string
	for _, img := range upload.Images {
		names = append(names, img.Name)
	}
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, names)
}

func TestAddUploadedImagesRejectsOversize(t *testing.T) {
	s, previews := newState()
	require.NoError(t, s.AddUploadedImages([]domain.Blob{image("ok", 100)}))
	before := s.Current()

	err := s.AddUploadedImages([]domain.Blob{image("fine", 10), image("huge", safeguard.MaxImageSize+1)})

	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindMediaConstraint))
	assert.Equal(t, "Image too large. Max 10MB allowed.", errs.PublicMessage(err))
	assert.Equal(t, before, s.Current())
	assert.Equal(t, 1, previews.Live())
}

func TestAddUploadedImagesDropsNonImages(t *testing.T) {
	s, _ := newState()
	s.SelectGalleryItem("Apple")

	// an oversized non-image is dropped, not rejected.
	doc := domain.Blob{Name: "doc", ContentType: "application/pdf", Data: make([]byte, safeguard.MaxImageSize+1)}
	require.NoError(t, s.AddUploadedImages([]domain.Blob{doc, image("a", 1)}))

	upload := s.Current().(Upload)
	require.Len(t, upload.Images, 1)
	assert.Equal(t, "a", upload.Images[0].Name)

	s.SelectGalleryItem("Apple")
	require.NoError(t, s.AddUploadedImages([]domain.Blob{doc}))
	assert.Equal(t, ModeGallery, s.Current().Mode())
}

func TestSetUploadedVideo(t *testing.T) {
	type TestCase struct {
		Name    string
		File    domain.Blob
		Message string
	}

	testCases := []TestCase{
		{Name: "not a video", File: image("pic", 1), Message: "Please select a video file."},
		{Name: "too large", File: video("big", safeguard.MaxVideoSize+1), Message: "Video too large. Max 50MB allowed."},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			s, _ := newState()
			s.SelectURL("https://x/a.jpg", KindImage)
			before := s.Current()

			err := s.SetUploadedVideo(tc.File)

			require.Error(t, err)
			assert.True(t, errs.IsKind(err, errs.KindMediaConstraint))
			assert.Equal(t, tc.Message, errs.PublicMessage(err))
			assert.Equal(t, before, s.Current())
		})
	}

	t.Run("replaces the video slot and keeps images", func(t *testing.T) {
		s, previews := newState()
		require.NoError(t, s.AddUploadedImages([]domain.Blob{image("a", 1)}))
		require.NoError(t, s.SetUploadedVideo(video("v1", 1)))
		require.NoError(t, s.SetUploadedVideo(video("v2", safeguard.MaxVideoSize)))

		upload := s.Current().(Upload)
		require.NotNil(t, upload.Video)
		assert.Equal(t, "v2", upload.Video.Name)
		assert.Len(t, upload.Images, 1)
		assert.Equal(t, 2, previews.Live())
	})
}

func TestResetReleasesPreviews(t *testing.T) {
	s, previews := newState()
	require.NoError(t, s.AddUploadedImages([]domain.Blob{image("a", 1), image("b", 1)}))
	require.NoError(t, s.SetUploadedVideo(video("v", 1)))
	require.Equal(t, 3, previews.Live())

	ids := s.Previews()
	s.Reset()

	assert.Equal(t, Empty{}, s.Current())
	assert.Zero(t, previews.Live())
	for _, p := range ids {
		_, ok := previews.Lookup(p.ID)
		assert.False(t, ok)
	}
}
