package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/logging"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

// Gate answers whether an email belongs to an admin.
type Gate struct {
	admins store.Collection
}

func NewGate(client store.Client) *Gate {
	return &Gate{admins: client.Collection(store.Admins)}
}

// Lookup returns the admin registered under email, or store.ErrNotFound.
func (g *Gate) Lookup(ctx context.Context, email string) (*models.Admin, error) {
	snaps, err := g.admins.Find(ctx, store.Query{
		Where: []store.Filter{{Field: "email", Value: catalog.NormalizeEmail(email)}},
		Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if len(snaps) == 0 {
		return nil, store.ErrNotFound
	}
	var admin models.Admin
	if err := snaps[0].DataTo(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// CheckAdmin fails closed: any lookup error means "not an admin".
func (g *Gate) CheckAdmin(ctx context.Context, email string) bool {
	if catalog.NormalizeEmail(email) == "" {
		return false
	}
	_, err := g.Lookup(ctx, email)
	if err == nil {
		return true
	}
	if !errors.Is(err, store.ErrNotFound) {
		logging.L.Warn("admin check failed", zap.String("route", "auth"), zap.Error(err))
	}
	return false
}
