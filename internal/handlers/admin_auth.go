package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/logging"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/store"
)

type loginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

/*
POST /auth/login
- the identity provider has already signed the user in
- only admins get a session
*/
func Login(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "AUTH"

		var req loginRequest
		if !bindJSON(c, route, &req) {
			return
		}

		identity, err := env.Verifier.VerifyIdentity(req.IDToken)
		if err != nil {
			logging.L.Info("identity token rejected", zap.String("route", route), zap.Error(err))
			respondWithError(c, http.StatusUnauthorized, route, "Failed to sign in. Please try again.")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		admin, err := env.Gate.Lookup(ctx, identity.Email)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				logging.L.Error("admin lookup failed", zap.String("route", route), zap.Error(err))
			}
			middleware.ClearSession(c)
			respondWithError(c, http.StatusForbidden, route, "You are not authorized to access this admin panel.")
			return
		}

		name := admin.Name
		if name == "" {
			name = identity.Name
		}
		token, expires, err := env.Signer.Issue(admin.ID, admin.Email, name)
		if err != nil {
			logging.L.Error("session issue failed", zap.String("route", route), zap.Error(err))
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, token, int(env.Signer.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)

		logging.L.Info("admin signed in", zap.String("route", route), zap.String("email", admin.Email))
		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresAt": expires,
			"admin": gin.H{
				"id":    admin.ID,
				"name":  name,
				"email": admin.Email,
			},
		})
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSession(c)
		respondMessage(c, http.StatusOK, "Signed out.", nil)
	}
}

/*
GET /auth/me
- mounted behind middleware.RequireAdmin
*/
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.Claims(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "AUTH", "unauthorized")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"admin": gin.H{
				"id":    claims.Subject,
				"name":  claims.Name,
				"email": claims.Email,
			},
		})
	}
}
