package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

const (
	StepDetails      = 1
	StepCombinations = 2
)

const (
	ActionNext   = "next"
	ActionBack   = "back"
	ActionSubmit = "submit"
)

type WizardRequest struct {
	Step   int          `json:"step"`
	Action string       `json:"action"`
	Draft  ProductDraft `json:"draft"`
	ID     string       `json:"id,omitempty"`
}

type WizardResult struct {
	Step    int             `json:"step"`
	Draft   ProductDraft    `json:"draft"`
	Product *models.Product `json:"product,omitempty"`
	Created bool            `json:"created,omitempty"`
}

// Wizard drives the two-step product form: details, then combinations.
// Nothing is written until a successful submit, which stores the whole
// product in one call.
type Wizard struct {
	client store.Client
	now    func() time.Time
}

func NewWizard(client store.Client) *Wizard {
	return &Wizard{client: client, now: time.Now}
}

func (w *Wizard) Advance(ctx context.Context, req WizardRequest) (*WizardResult, error) {
	switch req.Action {
	case ActionNext:
		if req.Step != StepDetails {
			return nil, invalid("Only the details step can move forward.")
		}
		if err := req.Draft.ValidateDetails(); err != nil {
			return nil, err
		}
		if _, err := w.resolveRefs(ctx, req.Draft); err != nil {
			return nil, err
		}
		return &WizardResult{Step: StepCombinations, Draft: req.Draft}, nil

	case ActionBack:
		return &WizardResult{Step: StepDetails, Draft: req.Draft}, nil

	case ActionSubmit:
		if req.Step != StepCombinations {
			return nil, invalid("Complete the product details first.")
		}
		product, created, err := w.Save(ctx, req.Draft, req.ID)
		if err != nil {
			return nil, err
		}
		return &WizardResult{Step: StepCombinations, Draft: req.Draft, Product: product, Created: created}, nil

	default:
		return nil, invalid("Unknown action %q.", req.Action)
	}
}

// Save validates both steps and creates the product, or merges it into the
// existing document when id is set.
func (w *Wizard) Save(ctx context.Context, draft ProductDraft, id string) (*models.Product, bool, error) {
	if err := draft.ValidateDetails(); err != nil {
		return nil, false, err
	}
	combos, err := draft.ValidateCombinations()
	if err != nil {
		return nil, false, err
	}
	refs, err := w.resolveRefs(ctx, draft)
	if err != nil {
		return nil, false, err
	}

	now := w.now().UTC()
	product := draft.Build(refs, combos, now)
	products := w.client.Collection(store.Products)

	if id == "" {
		newID, err := products.Add(ctx, product)
		if err != nil {
			return nil, false, fmt.Errorf("add product: %w", err)
		}
		product.ID = newID
		return &product, true, nil
	}

	var existing models.Product
	if err := products.Get(ctx, id, &existing); err != nil {
		return nil, false, err
	}

	fields, err := store.ToDocument(product)
	if err != nil {
		return nil, false, err
	}
	delete(fields, "created_at")
	if draft.Enabled == nil {
		delete(fields, "enabled")
		product.Enabled = existing.Enabled
	}
	fields["updated_at"] = now

	if err := products.Merge(ctx, id, fields); err != nil {
		return nil, false, fmt.Errorf("merge product %s: %w", id, err)
	}
	product.ID = id
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = now
	return &product, false, nil
}

func (w *Wizard) resolveRefs(ctx context.Context, d ProductDraft) (Refs, error) {
	var refs Refs

	var artisan models.Artisan
	err := w.client.Collection(store.Artisans).Get(ctx, strings.TrimSpace(d.ArtisanID), &artisan)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return refs, invalid("The selected artisan no longer exists.")
	case err != nil:
		return refs, fmt.Errorf("load artisan: %w", err)
	}

	var category models.Category
	err = w.client.Collection(store.Categories).Get(ctx, strings.TrimSpace(d.CategoryID), &category)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return refs, invalid("The selected category no longer exists.")
	case err != nil:
		return refs, fmt.Errorf("load category: %w", err)
	}

	refs.ArtisanName = artisan.Name
	refs.CategoryName = category.Name
	return refs, nil
}

// SetEnabled flips a product's visibility.
func SetEnabled(ctx context.Context, products store.Collection, id string, enabled bool, now time.Time) error {
	return products.Update(ctx, id, bson.M{"enabled": enabled, "updated_at": now})
}
