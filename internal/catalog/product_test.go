package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-admin/internal/models"
)

func validDraft() ProductDraft {
	return ProductDraft{
		Name:         "Pashmina Shawl",
		Images:       []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
		ArtisanID:    "artisan-1",
		CategoryID:   "category-1",
		Colors:       []string{"Red", "Blue"},
		Sizes:        []string{"M", "L"},
		Description:  "<p>Hand woven in Srinagar.</p>",
		ReturnPolicy: models.ReturnPolicyReturnable,
		Combinations: []CombinationDraft{
			{Color: "Red", Size: "M", Price: "1200", Quantity: "4"},
			{Color: "blue", Size: "l", Price: "1350.50", Quantity: "0"},
		},
	}
}

func TestValidateDetailsAcceptsCompleteDraft(t *testing.T) {
	assert.NoError(t, validDraft().ValidateDetails())
}

func TestValidateDetailsRejections(t *testing.T) {
	cases := map[string]struct {
		mutate func(*ProductDraft)
		msg    string
	}{
		"missing name":     {func(d *ProductDraft) { d.Name = "  " }, "Product name is required."},
		"one image":        {func(d *ProductDraft) { d.Images = []string{"https://a", " "} }, "Please add at least two valid image links."},
		"no artisan":       {func(d *ProductDraft) { d.ArtisanID = "" }, "Please select an artisan."},
		"no category":      {func(d *ProductDraft) { d.CategoryID = "" }, "Please select a category."},
		"empty editor":     {func(d *ProductDraft) { d.Description = "<p><br></p>" }, "Product description is required."},
		"no return policy": {func(d *ProductDraft) { d.ReturnPolicy = "" }, "Please select a return policy."},
		"bogus policy":     {func(d *ProductDraft) { d.ReturnPolicy = "maybe" }, "Please select a return policy."},
		"blank colors":     {func(d *ProductDraft) { d.Colors = []string{" "} }, "Please add at least one valid color."},
		"no sizes":         {func(d *ProductDraft) { d.Sizes = nil }, "Please add at least one valid size."},
		"duplicate color":  {func(d *ProductDraft) { d.Colors = []string{"Red", " red "} }, `Duplicate color "red".`},
		"duplicate size":   {func(d *ProductDraft) { d.Sizes = []string{"M", "m"} }, `Duplicate size "m".`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			err := d.ValidateDetails()
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestValidateCombinationsParsesAndCanonicalises(t *testing.T) {
	combos, err := validDraft().ValidateCombinations()
	require.NoError(t, err)
	assert.Equal(t, []models.Combination{
		{Color: "Red", Size: "M", Price: 1200, Quantity: 4},
		{Color: "Blue", Size: "L", Price: 1350.5, Quantity: 0},
	}, combos)
}

func TestValidateCombinationsRejections(t *testing.T) {
	incomplete := "Each combination must include valid color, size, price, and quantity."
	cases := map[string]struct {
		combos []CombinationDraft
		msg    string
	}{
		"none":              {nil, "Please add at least one combination."},
		"missing price":     {[]CombinationDraft{{Color: "Red", Size: "M", Quantity: "1"}}, incomplete},
		"negative quantity": {[]CombinationDraft{{Color: "Red", Size: "M", Price: "10", Quantity: "-1"}}, incomplete},
		"fractional qty":    {[]CombinationDraft{{Color: "Red", Size: "M", Price: "10", Quantity: "1.5"}}, incomplete},
		"not a number":      {[]CombinationDraft{{Color: "Red", Size: "M", Price: "NaN", Quantity: "1"}}, incomplete},
		"unknown color":     {[]CombinationDraft{{Color: "Green", Size: "M", Price: "10", Quantity: "1"}}, `Combination color "Green" is not one of the product colors.`},
		"unknown size":      {[]CombinationDraft{{Color: "Red", Size: "XL", Price: "10", Quantity: "1"}}, `Combination size "XL" is not one of the product sizes.`},
		"duplicate pair": {[]CombinationDraft{
			{Color: "Red", Size: "M", Price: "10", Quantity: "1"},
			{Color: "RED", Size: "m", Price: "12", Quantity: "2"},
		}, "Duplicate combination for Red / M."},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := validDraft()
			d.Combinations = tc.combos
			_, err := d.ValidateCombinations()
			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestBuildDefaultsThumbnailAndEnabled(t *testing.T) {
	d := validDraft()
	d.Description = `<p onclick="x()">Soft</p>`
	combos, err := d.ValidateCombinations()
	require.NoError(t, err)

	p := d.Build(Refs{ArtisanName: "Aisha", CategoryName: "Shawls"}, combos, fixedNow)
	assert.Equal(t, "https://cdn.example.com/1.jpg", p.ThumbnailImage)
	assert.True(t, p.Enabled)
	assert.Equal(t, "<p>Soft</p>", p.Description)
	assert.Equal(t, "Aisha", p.ArtisanName)
	assert.Equal(t, "Shawls", p.CategoryName)
}

func TestFormValueAcceptsNumbersAndStrings(t *testing.T) {
	var c CombinationDraft
	require.NoError(t, json.Unmarshal([]byte(`{"color":"Red","size":"M","price":499.5,"quantity":"3"}`), &c))
	assert.Equal(t, FormValue("499.5"), c.Price)
	assert.Equal(t, FormValue("3"), c.Quantity)

	assert.Error(t, json.Unmarshal([]byte(`{"price":true}`), &c))
}
