package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-admin/internal/middleware"
)

// Home sends a signed-in admin to the products page and everyone else to
// the login page.
func Home(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := middleware.LoginPath
		if token := middleware.SessionToken(c); token != "" {
			if claims, err := env.Signer.Parse(token); err == nil {
				ctx, cancel := storeContext(c)
				defer cancel()
				if env.Gate.CheckAdmin(ctx, claims.Email) {
					target = "/products"
				}
			}
		}
		c.Redirect(http.StatusFound, target)
	}
}

func Healthz(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ensureStoreConnection(c.Request.Context(), env.Store); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, "HEALTH", "store unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
