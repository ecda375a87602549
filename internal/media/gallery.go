package media

import (
	"net/url"
	"strings"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
)

// Gallery lookup for the curated item images.
type GalleryLookup interface {
	ImageURL(itemName string) string
	ItemsByCategory(category domain.Category) []string
}

type StaticGallery struct {
	baseURL string
	items   map[domain.Category][]string
	known   map[string]struct{}
}

var defaultGalleryItems = map[domain.Category][]string{
	domain.CategoryFruits:          {"Apple", "Banana", "Mango", "Orange", "Grapes", "Pomegranate"},
	domain.CategorySavory:          {"Mathri", "Khakhra", "Samosa"},
	domain.CategoryNamkeen:         {"Aloo Bhujia", "Moong Dal", "Navratan Mix", "Khatta Meetha"},
	domain.CategorySweets:          {"Kaju Katli", "Gulab Jamun", "Rasgulla", "Soan Papdi", "Besan Ladoo"},
	domain.CategoryTravelPackCombo: {"Travel Combo Small", "Travel Combo Large"},
	domain.CategoryValuePackOffers: {"Family Value Pack"},
	domain.CategoryGiftPacks:       {"Festive Gift Box", "Dry Fruit Hamper"},
}

// NewStaticGallery builds the built-in gallery. Image URLs are resolved under
// baseURL; with an empty baseURL every lookup resolves to "".
func NewStaticGallery(baseURL string) *StaticGallery {
	g := &StaticGallery{
		baseURL: strings.TrimRight(baseURL, "/"),
		items:   defaultGalleryItems,
		known:   make(map[string]struct{}),
	}
	for _, names := range g.items {
		for _, name := range names {
			g.known[name] = struct{}{}
		}
	}
	return g
}

func (g *StaticGallery) ImageURL(itemName string) string {
	if g.baseURL == "" {
		return ""
	}
	if _, ok := g.known[itemName]; !ok {
		return ""
	}
	return g.baseURL + "/" + url.PathEscape(slugify(itemName)) + ".jpg"
}

func (g *StaticGallery) ItemsByCategory(category domain.Category) []string {
	return append([]string(nil), g.items[category]...)
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
