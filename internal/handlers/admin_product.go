package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/listing"
	"catalog-admin/internal/logging"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

var productList = listing.Spec{
	Collection: store.Products,
	OrderBy:    "created_at",
	Direction:  store.Desc,
	NameField:  "name",
}

/* =======================
   LIST / GET
======================= */

func ListProducts(env *Env) gin.HandlerFunc {
	return listHandler[models.Product](env, "PRODUCTS", productList)
}

func GetProduct(env *Env) gin.HandlerFunc {
	return getHandler[models.Product](env, "PRODUCTS", store.Products, "product not found")
}

/*
GET /api/products/picker?search=&page=
- the whole collection by name, filtered and paged in memory
*/
func ProductPicker(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PRODUCTS"

		page, err := parsePage(strings.TrimSpace(c.Query("page")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		snaps, _, err := catalog.ProductIndex(ctx, env.coll(store.Products), "name", store.Asc)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		respondPicked(c, route, snaps, c.Query("search"), page)
	}
}

/* =======================
   CREATE / UPDATE
======================= */

/*
POST /api/products/wizard
- step 1 "next" validates details
- step 2 "back" keeps the draft
- "submit" validates everything and writes the product once
*/
func ProductWizard(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PRODUCTS"

		var req catalog.WizardRequest
		if !bindJSON(c, route, &req) {
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		res, err := env.Wizard.Advance(ctx, req)
		if err != nil {
			respondStoreError(c, route, err, "product not found")
			return
		}

		if res.Product != nil {
			env.Lister.ForgetCollection(store.Products)
			logging.L.Info("product saved",
				zap.String("route", route),
				zap.String("id", res.Product.ID),
				zap.Bool("created", res.Created),
			)
			status := http.StatusOK
			msg := "Product updated successfully."
			if res.Created {
				status = http.StatusCreated
				msg = "Product added successfully."
			}
			c.JSON(status, gin.H{"step": res.Step, "draft": res.Draft, "data": res.Product, "message": msg})
			return
		}
		c.JSON(http.StatusOK, gin.H{"step": res.Step, "draft": res.Draft})
	}
}

func CreateProduct(env *Env) gin.HandlerFunc {
	return saveProduct(env, false)
}

func UpdateProduct(env *Env) gin.HandlerFunc {
	return saveProduct(env, true)
}

func saveProduct(env *Env, update bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PRODUCTS"

		id := ""
		if update {
			var ok bool
			if id, ok = pathID(c, route); !ok {
				return
			}
		}

		var draft catalog.ProductDraft
		if !bindJSON(c, route, &draft) {
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		product, created, err := env.Wizard.Save(ctx, draft, id)
		if err != nil {
			respondStoreError(c, route, err, "product not found")
			return
		}
		env.Lister.ForgetCollection(store.Products)

		if created {
			c.JSON(http.StatusCreated, gin.H{"data": product, "message": "Product added successfully."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": product, "message": "Product updated successfully."})
	}
}

type productEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

/*
PATCH /api/products/:id/enabled
*/
func SetProductEnabled(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PRODUCTS"

		id, ok := pathID(c, route)
		if !ok {
			return
		}
		var req productEnabledRequest
		if !bindJSON(c, route, &req) {
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		if err := catalog.SetEnabled(ctx, env.coll(store.Products), id, *req.Enabled, env.now()); err != nil {
			respondStoreError(c, route, err, "product not found")
			return
		}
		respondMessage(c, http.StatusOK, "Product updated successfully.", gin.H{"id": id, "enabled": *req.Enabled})
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(env *Env) gin.HandlerFunc {
	return deleteHandler(env, "PRODUCTS", productList, "product not found", "Product deleted successfully.", nil)
}
