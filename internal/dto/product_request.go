package dto

type Encoding string

const (
	EncodingMultipart Encoding = "multipart"
	EncodingJSON      Encoding = "json"
)

// OutgoingRequest is a fully formed request to the catalog backend. Path is
// relative to the backend base URL.
type OutgoingRequest struct {
	Method      string
	Path        string
	Body        []byte
	ContentType string
	Encoding    Encoding
}

type ProductJSONRequest struct {
	Name           string   `json:"name"`
	ProductDetails string   `json:"productDetails"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Quantity       int      `json:"quantity"`
	Unit           string   `json:"unit"`
	ImageURLs      []string `json:"imageUrls"`
	VideoURL       string   `json:"videoUrl,omitempty"`
	IsAvailable    bool     `json:"isAvailable"`
	Discount       float64  `json:"discount"`
	Tax            float64  `json:"tax"`
}

type UserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

type ProductStatusRequest struct {
	IsAvailable bool `json:"isAvailable"`
}
