package dto

import "github.com/alimikegami/point-of-sales/admin-console/internal/domain"

type DashboardResponse struct {
	Ready    bool              `json:"ready"`
	Stats    domain.Stats      `json:"stats"`
	Users    []domain.User     `json:"users"`
	Products []ProductResponse `json:"products"`
	Orders   []domain.Order    `json:"orders"`
}

// ProductResponse is a product with the media URLs the dashboard previews.
type ProductResponse struct {
	domain.Product
	Media []string `json:"media"`
}

type PreviewResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MediaResponse struct {
	Mode           string            `json:"mode"`
	GalleryItem    string            `json:"galleryItem,omitempty"`
	ResolvedURL    string            `json:"resolvedUrl,omitempty"`
	URL            string            `json:"url,omitempty"`
	URLKind        string            `json:"urlKind,omitempty"`
	KindOverridden bool              `json:"kindOverridden,omitempty"`
	Previews       []PreviewResponse `json:"previews,omitempty"`
}

type AuthoringResponse struct {
	Fields     interface{}   `json:"fields"`
	Media      MediaResponse `json:"media"`
	Submitting bool          `json:"submitting"`
}

type AuthoringFieldsRequest struct {
	Name            string `json:"name"`
	ProductDetails  string `json:"productDetails"`
	Price           string `json:"price"`
	Category        string `json:"category"`
	Quantity        string `json:"quantity"`
	Unit            string `json:"unit"`
	DiscountPercent string `json:"discountPercent"`
	TaxPercent      string `json:"taxPercent"`
}

type GallerySelectionRequest struct {
	ItemName string `json:"itemName"`
}

type URLSelectionRequest struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

type StatusRequest struct {
	Active *bool `json:"active"`
}
