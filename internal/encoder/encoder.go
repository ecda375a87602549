// Package encoder turns a validated draft and its media selection into the
// request that creates the product. It performs no I/O.
package encoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/draft"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dto"
	"github.com/alimikegami/point-of-sales/admin-console/internal/media"
	"github.com/alimikegami/point-of-sales/admin-console/internal/safeguard"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

const (
	MultipartPath = "/admin/items"
	JSONPath      = "/admin/items/json"
)

// Encode picks multipart when the selection is an upload with at least one
// file and JSON otherwise.
func Encode(v draft.Validated, sel media.Selection) (dto.OutgoingRequest, error) {
	if upload, ok := sel.(media.Upload); ok && upload.HasFiles() {
		return encodeMultipart(v, upload)
	}
	return encodeJSON(v, sel)
}

// ParseURLList splits a comma separated list of media URLs, dropping blanks
// and keeping at most safeguard.MaxImages entries.
func ParseURLList(s string) []string {
	urls := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		urls = append(urls, part)
		if len(urls) == safeguard.MaxImages {
			break
		}
	}
	return urls
}

func encodeJSON(v draft.Validated, sel media.Selection) (dto.OutgoingRequest, error) {
	payload := dto.ProductJSONRequest{
		Name:           v.Name,
		ProductDetails: v.Details,
		Price:          v.Price,
		Category:       string(v.Category),
		Quantity:       v.Quantity,
		Unit:           string(v.Unit),
		ImageURLs:      []string{},
		IsAvailable:    true,
		Discount:       v.Discount,
		Tax:            v.Tax,
	}

	switch s := sel.(type) {
	case media.Gallery:
		payload.ImageURLs = ParseURLList(s.ResolvedURL)
	case media.URL:
		if s.Kind == media.KindVideo {
			payload.VideoURL = s.Value
		} else {
			payload.ImageURLs = ParseURLList(s.Value)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return dto.OutgoingRequest{}, fmt.Errorf("error marshalling product payload: %w", err)
	}

	return dto.OutgoingRequest{
		Method:      http.MethodPost,
		Path:        JSONPath,
		Body:        body,
		ContentType: "application/json",
		Encoding:    dto.EncodingJSON,
	}, nil
}

func encodeMultipart(v draft.Validated, upload media.Upload) (dto.OutgoingRequest, error) {
	if err := checkUpload(upload); err != nil {
		return dto.OutgoingRequest{}, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, img := range upload.Images {
		if err := writeFile(w, "images", fmt.Sprintf("image-%d", i+1), img); err != nil {
			return dto.OutgoingRequest{}, err
		}
	}
	if upload.Video != nil {
		if err := writeFile(w, "video", "video", *upload.Video); err != nil {
			return dto.OutgoingRequest{}, err
		}
	}

	fields := []struct{ key, value string }{
		{"name", v.Name},
		{"productDetails", v.Details},
		{"price", formatNumber(v.Price)},
		{"category", string(v.Category)},
		{"quantity", strconv.Itoa(v.Quantity)},
		{"unit", string(v.Unit)},
		{"isAvailable", "true"},
		{"discount", formatNumber(v.Discount)},
		{"tax", formatNumber(v.Tax)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return dto.OutgoingRequest{}, fmt.Errorf("error writing field %s: %w", f.key, err)
		}
	}
	if err := w.Close(); err != nil {
		return dto.OutgoingRequest{}, fmt.Errorf("error closing multipart body: %w", err)
	}

	return dto.OutgoingRequest{
		Method:      http.MethodPost,
		Path:        MultipartPath,
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
		Encoding:    dto.EncodingMultipart,
	}, nil
}

// checkUpload repeats the selection-time caps in case the upload went stale.
func checkUpload(upload media.Upload) error {
	if len(upload.Images) > safeguard.MaxImages {
		return errs.MediaConstraint(fmt.Sprintf("Maximum %d images allowed.", safeguard.MaxImages))
	}
	for _, img := range upload.Images {
		if !safeguard.FitsSizeLimit(img, safeguard.MaxImageSize) {
			return errs.MediaConstraint(fmt.Sprintf("Image too large. Max %dMB allowed.", safeguard.SizeInMB(safeguard.MaxImageSize)))
		}
	}
	if upload.Video != nil && !safeguard.FitsSizeLimit(*upload.Video, safeguard.MaxVideoSize) {
		return errs.MediaConstraint(fmt.Sprintf("Video too large. Max %dMB allowed.", safeguard.SizeInMB(safeguard.MaxVideoSize)))
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, field, fallbackName string, blob domain.Blob) error {
	name := blob.Name
	if name == "" {
		name = fallbackName
	}
	contentType := safeguard.DetectContentType(blob)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("error creating %s part: %w", field, err)
	}
	if _, err := part.Write(blob.Data); err != nil {
		return fmt.Errorf("error writing %s part: %w", field, err)
	}
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
