package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-admin/internal/listing"
)

var errInvalidPage = errors.New("page must be a positive integer")

func parsePage(pageStr string) (int64, error) {
	if pageStr == "" {
		return 1, nil
	}
	p, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || p < 1 {
		return 0, errInvalidPage
	}
	return p, nil
}

func parseListRequest(c *gin.Context) (listing.Request, error) {
	page, err := parsePage(strings.TrimSpace(c.Query("page")))
	if err != nil {
		return listing.Request{}, err
	}
	return listing.Request{
		Owner:  owner(c),
		Page:   page,
		Search: strings.TrimSpace(c.Query("search")),
		After:  c.Query("after"),
		Before: c.Query("before"),
	}, nil
}

func paginationBody(res *listing.Result) gin.H {
	return gin.H{
		"page":       res.Page,
		"limit":      res.PageSize,
		"total":      res.Total,
		"totalPages": res.TotalPages,
		"next":       res.Next,
		"prev":       res.Prev,
		"searching":  res.Searching,
	}
}

func respondPage[T any](c *gin.Context, route string, res *listing.Result) {
	items, err := listing.Decode[T](res.Items)
	if err != nil {
		respondStoreError(c, route, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       items,
		"pagination": paginationBody(res),
	})
}
