package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-admin/internal/listing"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

// pickerPageSize is the page size of the product pickers in the genre and
// sale editors.
const pickerPageSize = 8

// pickProducts decodes the full product collection, filters it by name and
// cuts out one page. Legacy combination values are coerced on decode.
func pickProducts(snaps []store.Snapshot, search string, page int64) ([]models.Product, gin.H, error) {
	products, err := listing.Decode[models.Product](snaps)
	if err != nil {
		return nil, nil, err
	}

	search = strings.TrimSpace(search)
	matched := listing.FilterByName(products, search, func(p models.Product) string { return p.Name })

	total := int64(len(matched))
	totalPages := listing.TotalPages(total, pickerPageSize)
	page = listing.ClampPage(page, totalPages)

	return listing.PageSlice(matched, page, pickerPageSize), gin.H{
		"page":       page,
		"limit":      int64(pickerPageSize),
		"total":      total,
		"totalPages": totalPages,
		"searching":  search != "",
	}, nil
}

func respondPicked(c *gin.Context, route string, snaps []store.Snapshot, search string, page int64) {
	items, pagination, err := pickProducts(snaps, search, page)
	if err != nil {
		respondStoreError(c, route, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "pagination": pagination})
}
