package domain

import (
	"time"

	"github.com/google/uuid"
)

// CatalogItem is a logo listed for sale. The catalog is owned by the
// storefront database; the checkout flow only reads it.
type CatalogItem struct {
	ID               uuid.UUID
	Name             string
	Description      string
	Price            float64
	Currency         string
	AvailableFormats []string
	DisplayFormats   []string
	Formats          map[string]string
	SingleFormatURL  string
	TotalBuyClicks   int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DownloadLink pairs a file format with its direct asset URL.
type DownloadLink struct {
	Format string `json:"format"`
	URL    string `json:"url"`
}
