package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/listing"
	"catalog-admin/internal/logging"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

var adminList = listing.Spec{
	Collection: store.Admins,
	OrderBy:    "created_at",
	Direction:  store.Desc,
	NameField:  "name",
}

/*
GET /api/admins
*/
func ListAdmins(env *Env) gin.HandlerFunc {
	return listHandler[models.Admin](env, "ADMINS", adminList)
}

/*
POST /api/admins
- email is lower-cased and must be unique
*/
func CreateAdmin(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "ADMINS"

		var req catalog.AdminInput
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

		admins := env.coll(store.Admins)
		count, err := admins.Count(ctx, store.Filter{Field: "email", Value: in.Email})
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "An admin with this email already exists.")
			return
		}

		// The document also carries its own id, as console clients read it.
		id := store.NewID()
		admin := models.Admin{ID: id, DocID: id, Name: in.Name, Email: in.Email, CreatedAt: env.now()}
		if err := admins.Set(ctx, id, admin); err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		env.Lister.ForgetCollection(store.Admins)

		logging.L.Info("admin added", zap.String("route", route), zap.String("id", id))
		c.JSON(http.StatusCreated, gin.H{"data": admin, "message": "Admin added successfully."})
	}
}

/*
DELETE /api/admins/:id?confirm=true
- the last admin cannot be removed
*/
func DeleteAdmin(env *Env) gin.HandlerFunc {
	guard := func(ctx context.Context) error {
		remaining, err := env.coll(store.Admins).Count(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		return catalog.CanDeleteAdmin(remaining)
	}
	return deleteHandler(env, "ADMINS", adminList, "admin not found", "Admin removed successfully.", guard)
}
