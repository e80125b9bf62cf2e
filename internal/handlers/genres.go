package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/listing"
	"catalog-admin/internal/logging"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

var genreList = listing.Spec{
	Collection: store.Genres,
	OrderBy:    "created_at",
	Direction:  store.Desc,
	NameField:  "name",
}

func ListGenres(env *Env) gin.HandlerFunc {
	return listHandler[models.Genre](env, "GENRES", genreList)
}

func CreateGenre(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GENRES"

		var req catalog.GenreInput
		if !bindJSON(c, route, &req) {
			return
		}
		in, err := req.Normalize()
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		genre := models.Genre{
			Name:           in.Name,
			ThumbnailImage: in.ThumbnailImage,
			ProductIDs:     models.StringList{},
			CreatedAt:      env.now(),
		}
		id, err := env.coll(store.Genres).Add(ctx, genre)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		genre.ID = id
		env.Lister.ForgetCollection(store.Genres)

		c.JSON(http.StatusCreated, gin.H{"data": genre, "message": "Genre added successfully."})
	}
}

func DeleteGenre(env *Env) gin.HandlerFunc {
	return deleteHandler(env, "GENRES", genreList, "genre not found", "Genre deleted successfully.", nil)
}

/*
GET /api/genres/:id/products?search=&page=&sort=name|created_at
- selected ids are the stored ones that still exist
*/
func GetGenreProducts(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GENRES"

		id, ok := pathID(c, route)
		if !ok {
			return
		}
		page, err := parsePage(strings.TrimSpace(c.Query("page")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		orderBy, dir := "name", store.Asc
		switch c.DefaultQuery("sort", "name") {
		case "name":
		case "created_at":
			orderBy, dir = "created_at", store.Desc
		default:
			respondWithError(c, http.StatusBadRequest, route, "sort must be name or created_at")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		var genre models.Genre
		if err := env.coll(store.Genres).Get(ctx, id, &genre); err != nil {
			respondStoreError(c, route, err, "genre not found")
			return
		}

		snaps, existing, err := catalog.ProductIndex(ctx, env.coll(store.Products), orderBy, dir)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		items, pagination, err := pickProducts(snaps, c.Query("search"), page)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"genre":      genre,
			"selected":   catalog.FilterExisting(genre.ProductIDs, existing),
			"data":       items,
			"pagination": pagination,
		})
	}
}

type genreProductsRequest struct {
	ProductIDs     []string `json:"product_ids"`
	ThumbnailImage *string  `json:"thumbnail_image"`
}

/*
PUT /api/genres/:id/products
- ids are filtered against the product collection and de-duplicated
- a new thumbnail must load as an image
*/
func SaveGenreProducts(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GENRES"

		id, ok := pathID(c, route)
		if !ok {
			return
		}
		var req genreProductsRequest
		if !bindJSON(c, route, &req) {
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		fields := bson.M{}
		if req.ThumbnailImage != nil {
			thumb := strings.TrimSpace(*req.ThumbnailImage)
			if err := env.Images.Probe(ctx, thumb); err != nil {
				logging.L.Info("thumbnail rejected", zap.String("route", route), zap.Error(err))
				respondWithError(c, http.StatusBadRequest, route, "Thumbnail image could not be loaded.")
				return
			}
			fields["thumbnail_image"] = thumb
		}

		_, existing, err := catalog.ProductIndex(ctx, env.coll(store.Products), "", store.Asc)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		valid := catalog.FilterExisting(req.ProductIDs, existing)
		fields["product_ids"] = valid

		if err := env.coll(store.Genres).Update(ctx, id, fields); err != nil {
			respondStoreError(c, route, err, "genre not found")
			return
		}
		respondMessage(c, http.StatusOK, "Products saved successfully.", gin.H{"product_ids": valid})
	}
}

type probeRequest struct {
	URL string `json:"url" binding:"required"`
}

/*
POST /api/genres/probe-image
*/
func ProbeImage(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GENRES"

		var req probeRequest
		if !bindJSON(c, route, &req) {
			return
		}
		if err := env.Images.Probe(c.Request.Context(), req.URL); err != nil {
			c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
