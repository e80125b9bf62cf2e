package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/listing"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

var bannerList = listing.Spec{
	Collection: store.Banners,
	OrderBy:    "createdAt",
	Direction:  store.Desc,
}

type bannerRequest struct {
	ImageURL string `json:"imageUrl"`
}

/*
GET /api/banners
- every banner, newest first, with the cap
*/
func ListBanners(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "BANNERS"

		ctx, cancel := storeContext(c)
		defer cancel()

		snaps, err := env.coll(store.Banners).Find(ctx, store.Query{OrderBy: bannerList.OrderBy, Direction: bannerList.Direction})
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		banners, err := listing.Decode[models.Banner](snaps)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": banners, "count": len(banners), "max": catalog.MaxBanners})
	}
}

/*
POST /api/banners
- at most six banners
*/
func CreateBanner(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "BANNERS"

		var req bannerRequest
		if !bindJSON(c, route, &req) {
			return
		}
		url, err := catalog.CheckBannerURL(req.ImageURL)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		banners := env.coll(store.Banners)
		count, err := banners.Count(ctx)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		if err := catalog.CheckBannerCap(count); err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		now := env.now()
		banner := models.Banner{ImageURL: url, CreatedAt: now, UpdatedAt: now}
		id, err := banners.Add(ctx, banner)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		banner.ID = id

		c.JSON(http.StatusCreated, gin.H{"data": banner, "message": "Banner added successfully."})
	}
}

func UpdateBanner(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "BANNERS"

		id, ok := pathID(c, route)
		if !ok {
			return
		}
		var req bannerRequest
		if !bindJSON(c, route, &req) {
			return
		}
		url, err := catalog.CheckBannerURL(req.ImageURL)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		if err := env.coll(store.Banners).Update(ctx, id, bson.M{"imageUrl": url, "updatedAt": env.now()}); err != nil {
			respondStoreError(c, route, err, "banner not found")
			return
		}
		respondMessage(c, http.StatusOK, "Banner updated successfully.", gin.H{"id": id, "imageUrl": url})
	}
}

func DeleteBanner(env *Env) gin.HandlerFunc {
	return deleteHandler(env, "BANNERS", bannerList, "banner not found", "Banner deleted successfully.", nil)
}
