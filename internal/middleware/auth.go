package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/logging"
)

const (
	SessionCookie = "session"
	LoginPath     = "/login"
	claimsKey     = "claims"
)

// AdminChecker is the part of auth.Gate the middleware needs.
type AdminChecker interface {
	CheckAdmin(ctx context.Context, email string) bool
}

// SessionToken reads the session from a bearer header, falling back to the
// session cookie.
func SessionToken(c *gin.Context) string {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw != "" {
		parts := strings.SplitN(raw, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie
}

// ClearSession expires the session cookie.
func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}

// Public reports whether path skips the gate: static assets, the login page,
// health checks, the auth endpoints and "/", which redirects on its own.
func Public(path string) bool {
	switch {
	case path == "/", path == "/favicon.ico", path == "/healthz", path == LoginPath:
		return true
	case strings.HasPrefix(path, "/public/"), strings.HasPrefix(path, "/auth/"):
		return true
	}
	return false
}

// AdminGate guards every path except the public ones with RequireAdmin.
func AdminGate(signer *auth.Signer, gate AdminChecker) gin.HandlerFunc {
	require := RequireAdmin(signer, gate)
	return func(c *gin.Context) {
		if Public(c.Request.URL.Path) {
			c.Next()
			return
		}
		require(c)
	}
}

// RequireAdmin admits a request only with a valid admin session whose email
// is still present in the admins collection. It re-checks on every request
// and treats lookup failures as "not an admin".
func RequireAdmin(signer *auth.Signer, gate AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			deny(c, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := signer.Parse(token)
		if err != nil {
			logging.L.Info("session rejected", zap.String("route", "auth"), zap.Error(err))
			deny(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if !gate.CheckAdmin(ctx, claims.Email) {
			logging.L.Info("non-admin session", zap.String("route", "auth"), zap.String("email", claims.Email))
			deny(c, http.StatusForbidden, "forbidden")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Claims returns the session admitted by AdminGate.
func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func deny(c *gin.Context, status int, msg string) {
	ClearSession(c)
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "redirect": LoginPath})
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
