package catalog

import (
	"context"
	"fmt"
	"strings"

	"catalog-admin/internal/store"
)

type CategoryInput struct {
	Name  string `json:"category_name" binding:"required"`
	Image string `json:"category_image"`
}

func (in CategoryInput) Normalize() (CategoryInput, error) {
	out := CategoryInput{
		Name:  strings.TrimSpace(in.Name),
		Image: strings.TrimSpace(in.Image),
	}
	if out.Name == "" {
		return out, invalid("Category name is required.")
	}
	return out, nil
}

// CheckCategoryName scans every category and rejects name when another
// category already uses it, ignoring case. selfID is the category being
// edited, if any.
func CheckCategoryName(ctx context.Context, coll store.Collection, name, selfID string) error {
	snaps, err := coll.Find(ctx, store.Query{})
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range snaps {
		if s.ID == selfID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(s.String("category_name"))) == want {
			return conflict("Category name already exists.")
		}
	}
	return nil
}
