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

var (
	artisanList = listing.Spec{
		Collection: store.Artisans,
		OrderBy:    "created_at",
		Direction:  store.Desc,
		NameField:  "name",
	}
	// The selection popup in the product form.
	artisanPicker = listing.Spec{
		Collection: store.Artisans,
		OrderBy:    "name",
		Direction:  store.Asc,
		NameField:  "name",
		PageSize:   5,
	}
)

func ListArtisans(env *Env) gin.HandlerFunc {
	return listHandler[models.Artisan](env, "ARTISANS", artisanList)
}

func ArtisanPicker(env *Env) gin.HandlerFunc {
	return listHandler[models.Artisan](env, "ARTISANS", artisanPicker)
}

func GetArtisan(env *Env) gin.HandlerFunc {
	return getHandler[models.Artisan](env, "ARTISANS", store.Artisans, "artisan not found")
}

func CreateArtisan(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "ARTISANS"

		var req catalog.ArtisanInput
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

		artisan := models.Artisan{
			Name:      in.Name,
			Image:     in.Image,
			Address:   in.Address,
			Phone:     in.Phone,
			Story:     in.Story,
			CreatedAt: env.now(),
		}
		id, err := env.coll(store.Artisans).Add(ctx, artisan)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		artisan.ID = id
		env.Lister.ForgetCollection(store.Artisans)

		c.JSON(http.StatusCreated, gin.H{"data": artisan, "message": "Artisan added successfully."})
	}
}

func UpdateArtisan(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "ARTISANS"

		id, ok := pathID(c, route)
		if !ok {
			return
		}
		var req catalog.ArtisanInput
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

		err = env.coll(store.Artisans).Update(ctx, id, bson.M{
			"name":       in.Name,
			"image":      in.Image,
			"address":    in.Address,
			"phone":      in.Phone,
			"story":      in.Story,
			"updated_at": env.now(),
		})
		if err != nil {
			respondStoreError(c, route, err, "artisan not found")
			return
		}
		env.Lister.ForgetCollection(store.Artisans)

		var updated models.Artisan
		if err := env.coll(store.Artisans).Get(ctx, id, &updated); err != nil {
			respondStoreError(c, route, err, "artisan not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated, "message": "Artisan updated successfully."})
	}
}

func DeleteArtisan(env *Env) gin.HandlerFunc {
	return deleteHandler(env, "ARTISANS", artisanList, "artisan not found", "Artisan deleted successfully.", nil)
}
