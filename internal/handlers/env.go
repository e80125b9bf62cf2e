package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/imageprobe"
	"catalog-admin/internal/listing"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/store"
)

// Env carries what the handlers share. Routes build one at start-up.
type Env struct {
	Store    store.Client
	Lister   *listing.Lister
	Wizard   *catalog.Wizard
	Images   imageprobe.Checker
	Signer   *auth.Signer
	Verifier *auth.Verifier
	Gate     *auth.Gate
	Now      func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

func (e *Env) coll(name string) store.Collection {
	return e.Store.Collection(name)
}

// owner keys per-admin state such as cursor trails.
func owner(c *gin.Context) string {
	if claims, ok := middleware.Claims(c); ok {
		return claims.Email
	}
	return ""
}
