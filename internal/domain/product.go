package domain

import "time"

type Category string

const (
	CategoryFruits          Category = "Fruits"
	CategorySavory          Category = "Savory"
	CategoryNamkeen         Category = "Namkeen"
	CategorySweets          Category = "Sweets"
	CategoryTravelPackCombo Category = "Travel Pack Combo"
	CategoryValuePackOffers Category = "Value Pack Offers"
	CategoryGiftPacks       Category = "Gift Packs"
)

var Categories = []Category{
	CategoryFruits,
	CategorySavory,
	CategoryNamkeen,
	CategorySweets,
	CategoryTravelPackCombo,
	CategoryValuePackOffers,
	CategoryGiftPacks,
}

type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitGram     Unit = "g"
	UnitPound    Unit = "lb"
	UnitOunce    Unit = "oz"
	UnitPiece    Unit = "piece"
	UnitPack     Unit = "pack"
)

var Units = []Unit{UnitKilogram, UnitGram, UnitPound, UnitOunce, UnitPiece, UnitPack}

type Product struct {
	ID             ID        `json:"_id"`
	Name           string    `json:"name"`
	ProductDetails string    `json:"productDetails"`
	Price          float64   `json:"price"`
	Category       Category  `json:"category"`
	ImageURLs      []string  `json:"imageUrls,omitempty"`
	Images         []string  `json:"images,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	VideoURL       string    `json:"videoUrl,omitempty"`
	Quantity       int       `json:"quantity"`
	Unit           Unit      `json:"unit"`
	SellerID       string    `json:"sellerId"`
	SellerName     string    `json:"sellerName"`
	IsAvailable    bool      `json:"isAvailable"`
	CreatedAt      time.Time `json:"createdAt"`
	Discount       float64   `json:"discount,omitempty"`
	Tax            float64   `json:"tax,omitempty"`
}

// Media returns the image URLs to preview for a product, preferring uploaded
// images over URL lists over the legacy single image field.
func (p Product) Media() []string {
	var urls []string
	switch {
	case len(p.Images) > 0:
		urls = p.Images
	case len(p.ImageURLs) > 0:
		urls = p.ImageURLs
	case p.ImageURL != "":
		urls = []string{p.ImageURL}
	}
	if len(urls) > 4 {
		urls = urls[:4]
	}
	return urls
}
