package models

import (
	"encoding/json"
	"strings"
	"time"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	CategoryID  uint      `gorm:"index" json:"category_id"`
	Category    *Category `json:"category,omitempty"`

	// Free shipping flag plus an optional JSON array of region codes
	// (e.g. ["SP","RJ"] or zip prefixes). An empty list with the flag
	// set means free shipping everywhere.
	IsFreeShipping      bool   `json:"is_free_shipping"`
	FreeShippingRegions string `json:"free_shipping_regions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FreeShippingFor reports whether shipping to the given region (a state
// code or zip prefix) is free for this product. A region entry matches
// either exactly (case-insensitive) or as a prefix of the given region.
func (p *Product) FreeShippingFor(region string) bool {
	if !p.IsFreeShipping {
		return false
	}
	if p.FreeShippingRegions == "" {
		return true
	}

	var regions []string
	if err := json.Unmarshal([]byte(p.FreeShippingRegions), &regions); err != nil {
		// Malformed region list is treated as not free.
		return false
	}
	if len(regions) == 0 {
		return true
	}

	for _, r := range regions {
		if strings.EqualFold(r, region) || strings.HasPrefix(region, r) {
			return true
		}
	}
	return false
}
