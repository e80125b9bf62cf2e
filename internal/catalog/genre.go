package catalog

import (
	"context"
	"fmt"
	"strings"

	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

type GenreInput struct {
	Name           string `json:"name" binding:"required"`
	ThumbnailImage string `json:"thumbnail_image"`
}

func (in GenreInput) Normalize() (GenreInput, error) {
	out := GenreInput{
		Name:           strings.TrimSpace(in.Name),
		ThumbnailImage: strings.TrimSpace(in.ThumbnailImage),
	}
	if out.Name == "" {
		return out, invalid("Genre name is required.")
	}
	return out, nil
}

// FilterExisting keeps the ids present in existing, dropping blanks and
// repeats while preserving the order of first occurrence.
func FilterExisting(ids []string, existing map[string]struct{}) []string {
	out := make([]string, 0, len(ids))
	for _, id := range models.StringList(ids).Compact().Unique() {
		if _, ok := existing[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// ProductIndex loads every product, returning them in the requested order
// along with the set of their ids.
func ProductIndex(ctx context.Context, products store.Collection, orderBy string, dir store.Direction) ([]store.Snapshot, map[string]struct{}, error) {
	snaps, err := products.Find(ctx, store.Query{OrderBy: orderBy, Direction: dir})
	if err != nil {
		return nil, nil, fmt.Errorf("load products: %w", err)
	}
	ids := make(map[string]struct{}, len(snaps))
	for _, s := range snaps {
		ids[s.ID] = struct{}{}
	}
	return snaps, ids, nil
}
