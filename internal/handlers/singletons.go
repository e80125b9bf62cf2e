package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/logging"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

/* =======================
   SALE
======================= */

/*
GET /api/sale
- 404 with the form defaults until the sale is first saved
*/
func GetSale(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "SALE"

		ctx, cancel := storeContext(c)
		defer cancel()

		var sale models.Sale
		err := env.coll(store.Sales).Get(ctx, models.CurrentSaleID, &sale)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found", "data": catalog.DefaultSale()})
			return
		}
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": sale})
	}
}

/*
PUT /api/sale
- single upsert: created_at only on creation, updated_at every time
*/
func SaveSale(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "SALE"

		var req catalog.SaleInput
		if !bindJSON(c, route, &req) {
			return
		}
		sale, err := req.Normalize()
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		now := env.now()
		created, err := env.coll(store.Sales).Upsert(ctx, models.CurrentSaleID,
			bson.M{
				"title":           sale.Title,
				"thumbnail_image": sale.ThumbnailImage,
				"product_ids":     sale.ProductIDs,
				"status":          sale.Status,
				"updated_at":      now,
			},
			bson.M{"created_at": now},
		)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		logging.L.Info("sale saved", zap.String("route", route), zap.Bool("created", created))
		msg := "Sale updated successfully."
		if created {
			msg = "Sale created successfully."
		}
		sale.UpdatedAt = now
		respondMessage(c, http.StatusOK, msg, gin.H{"data": sale, "created": created})
	}
}

/* =======================
   DELIVERY
======================= */

func GetDelivery(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELIVERY"

		ctx, cancel := storeContext(c)
		defer cancel()

		var delivery models.Delivery
		err := env.coll(store.Delivery).Get(ctx, models.CurrentDeliveryID, &delivery)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery settings not found", "data": models.Delivery{}})
			return
		}
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": delivery})
	}
}

/*
PUT /api/delivery
- missing or negative costs are stored as 0
*/
func SaveDelivery(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELIVERY"

		var req catalog.DeliveryInput
		if !bindJSON(c, route, &req) {
			return
		}
		delivery := req.Normalize()

		ctx, cancel := storeContext(c)
		defer cancel()

		now := env.now()
		created, err := env.coll(store.Delivery).Upsert(ctx, models.CurrentDeliveryID,
			bson.M{
				"indian_delivery_cost":        delivery.IndianCost,
				"international_delivery_cost": delivery.InternationalCost,
				"updated_at":                  now,
			},
			bson.M{"created_at": now},
		)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		delivery.UpdatedAt = now
		respondMessage(c, http.StatusOK, "Delivery costs saved successfully.", gin.H{"data": delivery, "created": created})
	}
}
