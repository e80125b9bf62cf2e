package catalog

import (
	"strings"

	"catalog-admin/internal/models"
)

type SaleInput struct {
	Title          string   `json:"title"`
	ThumbnailImage string   `json:"thumbnail_image"`
	ProductIDs     []string `json:"product_ids"`
	Status         string   `json:"status" binding:"salestatus"`
}

// DefaultSale is what the form starts from before a sale is first saved.
func DefaultSale() models.Sale {
	return models.Sale{Status: models.SaleLive, ProductIDs: models.StringList{}}
}

func (in SaleInput) Normalize() (models.Sale, error) {
	sale := models.Sale{
		Title:          strings.TrimSpace(in.Title),
		ThumbnailImage: strings.TrimSpace(in.ThumbnailImage),
		ProductIDs:     models.StringList(in.ProductIDs).Compact().Unique(),
		Status:         strings.TrimSpace(in.Status),
	}
	if sale.Title == "" {
		return sale, invalid("Title is required")
	}
	if sale.ThumbnailImage == "" {
		return sale, invalid("Thumbnail image is required")
	}
	if sale.Status == "" {
		sale.Status = models.SaleLive
	}
	if !ValidSaleStatus(sale.Status) {
		return sale, invalid("Status must be %q or %q.", models.SaleLive, models.SaleClosed)
	}
	return sale, nil
}
