package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-admin/internal/listing"
)

// listHandler serves a paginated, searchable list of one collection.
func listHandler[T any](env *Env, route string, spec listing.Spec) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseListRequest(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		res, err := env.Lister.Page(ctx, spec, req)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		respondPage[T](c, route, res)
	}
}

func getHandler[T any](env *Env, route, collection, notFound string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, route)
		if !ok {
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		var item T
		if err := env.coll(collection).Get(ctx, id, &item); err != nil {
			respondStoreError(c, route, err, notFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": item})
	}
}

// deleteHandler removes a document after confirmation, drops the cursor
// trails over its collection and reports the recomputed page count.
// guard, when set, may veto the delete.
func deleteHandler(env *Env, route string, spec listing.Spec, notFound, done string, guard func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, route)
		if !ok {
			return
		}
		if !requireConfirmation(c, route) {
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		if guard != nil {
			if err := guard(ctx); err != nil {
				respondStoreError(c, route, err, notFound)
				return
			}
		}

		if err := env.coll(spec.Collection).Delete(ctx, id); err != nil {
			respondStoreError(c, route, err, notFound)
			return
		}
		env.Lister.ForgetCollection(spec.Collection)

		totalPages, err := env.Lister.TotalPages(ctx, spec)
		if err != nil {
			respondStoreError(c, route, err, "")
			return
		}
		respondMessage(c, http.StatusOK, done, gin.H{"id": id, "totalPages": totalPages})
	}
}
