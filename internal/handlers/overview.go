package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"catalog-admin/internal/store"
)

/*
GET /api/overview
- dashboard counters, fetched concurrently
*/
func Overview(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "OVERVIEW"

		ctx, cancel := storeContext(c)
		defer cancel()

		names := []string{store.Admins, store.Artisans, store.Products, store.Orders}
		counts := make([]int64, len(names))

		g, gctx := errgroup.WithContext(ctx)
		for i, name := range names {
			i, name := i, name
			g.Go(func() error {
				n, err := env.coll(name).Count(gctx)
				if err != nil {
					return fmt.Errorf("count %s: %w", name, err)
				}
				counts[i] = n
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			respondStoreError(c, route, err, "")
			return
		}

		body := make(map[string]int64, len(names))
		for i, name := range names {
			body[name] = counts[i]
		}
		c.JSON(http.StatusOK, gin.H{"data": body})
	}
}
