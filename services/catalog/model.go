package catalog

import (
	"strconv"

	"github.com/arcuswear/storefront/services/shopify"
)

// Product is the catalog view the storefront serves: platform prices parsed
// into numbers and the option soup reduced to the fields product pages need.
type Product struct {
	UID         string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
}

type Image struct {
	UID     string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type Variant struct {
	UID               string  `json:"id"`
	Title             string  `json:"title"`
	Size              string  `json:"size"`
	Price             float64 `json:"price"`
	AvailableForSale  bool    `json:"availableForSale"`
	QuantityAvailable int     `json:"quantityAvailable"`
}

func newProduct(p shopify.Product) Product {
	images := make([]Image, 0, len(p.Images.Edges))
	for _, image := range p.Images.Nodes() {
		images = append(images, Image{
			UID:     image.UID,
			URL:     image.URL,
			AltText: image.AltText,
		})
	}

	variants := make([]Variant, 0, len(p.Variants.Edges))
	for _, variant := range p.Variants.Nodes() {
		variants = append(variants, newVariant(variant))
	}

	return Product{
		UID:         p.UID,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		Price:       parseAmount(p.PriceRange.MinVariantPrice.Amount),
		Currency:    p.PriceRange.MinVariantPrice.CurrencyCode,
		Images:      images,
		Variants:    variants,
	}
}

func newVariant(v shopify.Variant) Variant {
	return Variant{
		UID:               v.UID,
		Title:             v.Title,
		Size:              selectedOption(v, "Size"),
		Price:             parseAmount(v.Price.Amount),
		AvailableForSale:  v.AvailableForSale,
		QuantityAvailable: v.QuantityAvailable,
	}
}

func selectedOption(v shopify.Variant, name string) string {
	for _, option := range v.SelectedOptions {
		if option.Name == name {
			return option.Value
		}
	}
	return ""
}

// parseAmount tolerates malformed amounts: a price of zero is less harmful
// than refusing to show the product at all.
func parseAmount(amount string) float64 {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return value
}
