package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
	"catalog-admin/internal/store/memstore"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func seededWizard(t *testing.T) (*Wizard, store.Client) {
	t.Helper()
	ctx := context.Background()
	client := memstore.New()
	require.NoError(t, client.Collection(store.Artisans).Set(ctx, "artisan-1", models.Artisan{Name: "Aisha"}))
	require.NoError(t, client.Collection(store.Categories).Set(ctx, "category-1", models.Category{Name: "Shawls"}))

	w := NewWizard(client)
	w.now = func() time.Time { return fixedNow }
	return w, client
}

func TestWizardNextMovesToCombinations(t *testing.T) {
	w, _ := seededWizard(t)

	res, err := w.Advance(context.Background(), WizardRequest{Step: StepDetails, Action: ActionNext, Draft: validDraft()})
	require.NoError(t, err)
	assert.Equal(t, StepCombinations, res.Step)
	assert.Nil(t, res.Product)
}

func TestWizardNextBlockedByInvalidDetails(t *testing.T) {
	w, _ := seededWizard(t)
	d := validDraft()
	d.Images = d.Images[:1]

	_, err := w.Advance(context.Background(), WizardRequest{Step: StepDetails, Action: ActionNext, Draft: d})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestWizardNextRequiresExistingArtisan(t *testing.T) {
	w, _ := seededWizard(t)
	d := validDraft()
	d.ArtisanID = "ghost"

	_, err := w.Advance(context.Background(), WizardRequest{Step: StepDetails, Action: ActionNext, Draft: d})
	require.Error(t, err)
	assert.Equal(t, "The selected artisan no longer exists.", err.Error())
}

func TestWizardBackKeepsDraft(t *testing.T) {
	w, _ := seededWizard(t)
	d := validDraft()
	d.Combinations = append(d.Combinations, CombinationDraft{Color: "Red", Size: "L"})

	res, err := w.Advance(context.Background(), WizardRequest{Step: StepCombinations, Action: ActionBack, Draft: d})
	require.NoError(t, err)
	assert.Equal(t, StepDetails, res.Step)
	assert.Equal(t, d, res.Draft)
}

func TestWizardSubmitOnlyFromCombinations(t *testing.T) {
	w, client := seededWizard(t)

	_, err := w.Advance(context.Background(), WizardRequest{Step: StepDetails, Action: ActionSubmit, Draft: validDraft()})
	require.Error(t, err)

	n, err := client.Collection(store.Products).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWizardSubmitCreatesWholeProduct(t *testing.T) {
	w, client := seededWizard(t)
	ctx := context.Background()

	res, err := w.Advance(ctx, WizardRequest{Step: StepCombinations, Action: ActionSubmit, Draft: validDraft()})
	require.NoError(t, err)
	require.NotNil(t, res.Product)
	assert.True(t, res.Created)

	var stored models.Product
	require.NoError(t, client.Collection(store.Products).Get(ctx, res.Product.ID, &stored))
	assert.Equal(t, "Pashmina Shawl", stored.Name)
	assert.Equal(t, "Aisha", stored.ArtisanName)
	assert.Len(t, stored.Combinations, 2)
	assert.True(t, stored.CreatedAt.Equal(fixedNow))
}

func TestWizardSubmitWithIDMerges(t *testing.T) {
	w, client := seededWizard(t)
	ctx := context.Background()

	created, _, err := w.Save(ctx, validDraft(), "")
	require.NoError(t, err)
	require.NoError(t, SetEnabled(ctx, client.Collection(store.Products), created.ID, false, fixedNow))

	later := fixedNow.Add(time.Hour)
	w.now = func() time.Time { return later }
	d := validDraft()
	d.Name = "Pashmina Stole"

	res, err := w.Advance(ctx, WizardRequest{Step: StepCombinations, Action: ActionSubmit, Draft: d, ID: created.ID})
	require.NoError(t, err)
	assert.False(t, res.Created)

	var stored models.Product
	require.NoError(t, client.Collection(store.Products).Get(ctx, created.ID, &stored))
	assert.Equal(t, "Pashmina Stole", stored.Name)
	assert.False(t, stored.Enabled)
	assert.True(t, stored.CreatedAt.Equal(fixedNow))
	assert.True(t, stored.UpdatedAt.Equal(later))
}

func TestWizardSaveUnknownID(t *testing.T) {
	w, _ := seededWizard(t)

	_, _, err := w.Save(context.Background(), validDraft(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
