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

var categoryList = listing.Spec{
	Collection: store.Categories,
	OrderBy:    "created_at",
	Direction:  store.Desc,
	NameField:  "category_name",
}

/*
GET /api/categories
*/
func ListCategories(env *Env) gin.HandlerFunc {
	return listHandler[models.Category](env, "CATEGORIES", categoryList)
}

func GetCategory(env *Env) gin.HandlerFunc {
	return getHandler[models.Category](env, "CATEGORIES", store.Categories, "category not found")
}

/*
POST /api/categories
- names are unique regardless of case
*/
func CreateCategory(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "CATEGORIES"

		var req catalog.CategoryInput
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

		categories := env.coll(store.Categories)
		if err := catalog.CheckCategoryName(ctx, categories, in.Name, ""); err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		category := models.Category{Name: in.Name, Image: in.Image, CreatedAt: env.now()}
		id, err := categories.Add(ctx, category)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		category.ID = id
		env.Lister.ForgetCollection(store.Categories)

		c.JSON(http.StatusCreated, gin.H{"data": category, "message": "Category added successfully."})
	}
}

/*
PUT /api/categories/:id
- re-submitting the category's own name is allowed
*/
func UpdateCategory(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "CATEGORIES"

		id, ok := pathID(c, route)
		if !ok {
			return
		}
		var req catalog.CategoryInput
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

		categories := env.coll(store.Categories)
		if err := catalog.CheckCategoryName(ctx, categories, in.Name, id); err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		err = categories.Update(ctx, id, bson.M{
			"category_name":  in.Name,
			"category_image": in.Image,
			"updated_at":     env.now(),
		})
		if err != nil {
			respondStoreError(c, route, err, "category not found")
			return
		}
		env.Lister.ForgetCollection(store.Categories)

		var updated models.Category
		if err := categories.Get(ctx, id, &updated); err != nil {
			respondStoreError(c, route, err, "category not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated, "message": "Category updated successfully."})
	}
}

/*
DELETE /api/categories/:id?confirm=true
*/
func DeleteCategory(env *Env) gin.HandlerFunc {
	return deleteHandler(env, "CATEGORIES", categoryList, "category not found", "Category deleted successfully.", nil)
}
