package catalog

import (
	"errors"
	"slices"

	"github.com/example/storefront/internal/money"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price"`
	Category    string       `json:"category"`
	ImageURL    string       `json:"image_url,omitempty"`
	Stock       int          `json:"stock"`
	Colors      []string     `json:"colors"`
}

// DefaultColor is the variant preselected when the product is bought.
func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// Clone copies the product so callers can hold it without sharing the colors slice.
func (p Product) Clone() Product {
	p.Colors = slices.Clone(p.Colors)
	return p
}
