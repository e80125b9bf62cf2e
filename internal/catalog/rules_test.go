package catalog

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
	"catalog-admin/internal/store/memstore"
)

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("9876543210"))
	assert.False(t, ValidPhone("987654321"))
	assert.False(t, ValidPhone("98765432101"))
	assert.False(t, ValidPhone("98765-4321"))
	assert.False(t, ValidPhone(""))
}

func TestRegisterValidations(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidations(v))

	assert.NoError(t, v.Struct(ArtisanInput{Name: "Aisha", Phone: "9876543210"}))
	assert.Error(t, v.Struct(ArtisanInput{Name: "Aisha", Phone: "12345"}))
	assert.Error(t, v.Struct(SaleInput{Status: "paused"}))
	assert.NoError(t, v.Struct(SaleInput{Status: ""}))
}

func TestArtisanNormalize(t *testing.T) {
	out, err := ArtisanInput{Name: " Aisha ", Phone: "9876543210", Story: "<p><br></p>"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Aisha", out.Name)
	assert.Empty(t, out.Story)

	_, err = ArtisanInput{Name: "Aisha", Phone: "12"}.Normalize()
	assert.EqualError(t, err, "Phone number must be a valid 10-digit number.")
}

func TestCheckCategoryName(t *testing.T) {
	ctx := context.Background()
	coll := memstore.New().Collection(store.Categories)
	require.NoError(t, coll.Set(ctx, "c1", models.Category{Name: "Pottery"}))

	err := CheckCategoryName(ctx, coll, " pottery ", "")
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	assert.NoError(t, CheckCategoryName(ctx, coll, "POTTERY", "c1"))
	assert.NoError(t, CheckCategoryName(ctx, coll, "Textiles", ""))
}

func TestFilterExisting(t *testing.T) {
	existing := map[string]struct{}{"a": {}, "b": {}, "c": {}}
	got := FilterExisting([]string{"c", "x", "a", "c", " ", "b", "a"}, existing)
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestCheckBannerCap(t *testing.T) {
	assert.NoError(t, CheckBannerCap(5))
	err := CheckBannerCap(6)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, "Maximum of 6 banners allowed. Please delete an existing banner first.", err.Error())

	_, err = CheckBannerURL("   ")
	assert.EqualError(t, err, "Image URL cannot be empty.")
}

func TestSaleNormalize(t *testing.T) {
	sale, err := SaleInput{
		Title:          " Diwali ",
		ThumbnailImage: "https://cdn.example.com/d.png",
		ProductIDs:     []string{"p2", "p1", "p2"},
	}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Diwali", sale.Title)
	assert.Equal(t, models.SaleLive, sale.Status)
	assert.Equal(t, models.StringList{"p2", "p1"}, sale.ProductIDs)

	_, err = SaleInput{ThumbnailImage: "x"}.Normalize()
	assert.EqualError(t, err, "Title is required")
	_, err = SaleInput{Title: "x"}.Normalize()
	assert.EqualError(t, err, "Thumbnail image is required")
}

func TestDeliveryNormalizeClamps(t *testing.T) {
	neg := int64(-40)
	intl := int64(900)
	d := DeliveryInput{IndianCost: &neg, InternationalCost: &intl}.Normalize()
	assert.Equal(t, int64(0), d.IndianCost)
	assert.Equal(t, int64(900), d.InternationalCost)

	assert.Equal(t, models.Delivery{}, DeliveryInput{}.Normalize())
}

func TestAdminNormalize(t *testing.T) {
	in, err := AdminInput{Name: "Riya", Email: "  Riya@Example.COM "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "riya@example.com", in.Email)

	_, err = AdminInput{Email: "not-an-email"}.Normalize()
	assert.Error(t, err)
	_, err = AdminInput{}.Normalize()
	assert.EqualError(t, err, "Email is required.")

	assert.Error(t, CanDeleteAdmin(1))
	assert.NoError(t, CanDeleteAdmin(2))
}
