package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"catalog-admin/internal/models"
	"catalog-admin/internal/richtext"
)

// FormValue is a form field sent either as a JSON string or a JSON number.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*v = FormValue(n.String())
	return nil
}

type CombinationDraft struct {
	Color    string    `json:"color"`
	Size     string    `json:"size"`
	Price    FormValue `json:"price"`
	Quantity FormValue `json:"quantity"`
}

// ProductDraft is the product form as the multi-step editor submits it.
type ProductDraft struct {
	Name           string             `json:"name"`
	ThumbnailImage string             `json:"thumbnail_image"`
	Images         []string           `json:"images"`
	ArtisanID      string             `json:"artisan_id"`
	CategoryID     string             `json:"category_id"`
	Colors         []string           `json:"colors"`
	Sizes          []string           `json:"sizes"`
	Combinations   []CombinationDraft `json:"combinations"`
	Description    string             `json:"description"`
	ReturnPolicy   string             `json:"return_policy"`
	Enabled        *bool              `json:"enabled,omitempty"`
}

// ValidateDetails checks the first step of the form.
func (d ProductDraft) ValidateDetails() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("Product name is required.")
	}
	if len(models.StringList(d.Images).Compact()) < 2 {
		return invalid("Please add at least two valid image links.")
	}
	if strings.TrimSpace(d.ArtisanID) == "" {
		return invalid("Please select an artisan.")
	}
	if strings.TrimSpace(d.CategoryID) == "" {
		return invalid("Please select a category.")
	}
	if richtext.IsBlank(d.Description) {
		return invalid("Product description is required.")
	}
	if !ValidReturnPolicy(strings.TrimSpace(d.ReturnPolicy)) {
		return invalid("Please select a return policy.")
	}
	if len(models.StringList(d.Colors).Compact()) == 0 {
		return invalid("Please add at least one valid color.")
	}
	if len(models.StringList(d.Sizes).Compact()) == 0 {
		return invalid("Please add at least one valid size.")
	}
	if dup, ok := firstDuplicate(d.Colors); ok {
		return invalid("Duplicate color %q.", dup)
	}
	if dup, ok := firstDuplicate(d.Sizes); ok {
		return invalid("Duplicate size %q.", dup)
	}
	return nil
}

// ValidateCombinations checks the second step of the form and returns the
// combinations with parsed numbers and the declared color and size labels.
func (d ProductDraft) ValidateCombinations() ([]models.Combination, error) {
	if len(d.Combinations) == 0 {
		return nil, invalid("Please add at least one combination.")
	}

	colors := labelIndex(d.Colors)
	sizes := labelIndex(d.Sizes)
	seen := make(map[string]struct{}, len(d.Combinations))
	out := make([]models.Combination, 0, len(d.Combinations))

	for _, cd := range d.Combinations {
		color := strings.TrimSpace(cd.Color)
		size := strings.TrimSpace(cd.Size)
		price, priceErr := strconv.ParseFloat(strings.TrimSpace(string(cd.Price)), 64)
		quantity, qtyErr := strconv.ParseInt(strings.TrimSpace(string(cd.Quantity)), 10, 64)
		badPrice := priceErr != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0)
		if color == "" || size == "" || badPrice || qtyErr != nil || quantity < 0 {
			return nil, invalid("Each combination must include valid color, size, price, and quantity.")
		}

		declaredColor, ok := colors[labelKey(color)]
		if !ok {
			return nil, invalid("Combination color %q is not one of the product colors.", color)
		}
		declaredSize, ok := sizes[labelKey(size)]
		if !ok {
			return nil, invalid("Combination size %q is not one of the product sizes.", size)
		}

		pair := labelKey(declaredColor) + "\x00" + labelKey(declaredSize)
		if _, dup := seen[pair]; dup {
			return nil, invalid("Duplicate combination for %s / %s.", declaredColor, declaredSize)
		}
		seen[pair] = struct{}{}

		out = append(out, models.Combination{
			Color:    declaredColor,
			Size:     declaredSize,
			Price:    price,
			Quantity: quantity,
		})
	}
	return out, nil
}

// Refs are the display names denormalised onto a product.
type Refs struct {
	ArtisanName  string
	CategoryName string
}

// Build assembles the stored product from a validated draft.
func (d ProductDraft) Build(refs Refs, combos []models.Combination, now time.Time) models.Product {
	images := models.StringList(d.Images).Compact()
	thumb := strings.TrimSpace(d.ThumbnailImage)
	if thumb == "" && len(images) > 0 {
		thumb = images[0]
	}
	enabled := true
	if d.Enabled != nil {
		enabled = *d.Enabled
	}
	return models.Product{
		Name:           strings.TrimSpace(d.Name),
		ThumbnailImage: thumb,
		Images:         images,
		ArtisanID:      strings.TrimSpace(d.ArtisanID),
		ArtisanName:    refs.ArtisanName,
		CategoryID:     strings.TrimSpace(d.CategoryID),
		CategoryName:   refs.CategoryName,
		Colors:         models.StringList(d.Colors).Compact(),
		Sizes:          models.StringList(d.Sizes).Compact(),
		Combinations:   combos,
		Description:    richtext.Sanitize(d.Description),
		ReturnPolicy:   strings.TrimSpace(d.ReturnPolicy),
		Enabled:        enabled,
		CreatedAt:      now,
	}
}

func labelKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func labelIndex(labels []string) map[string]string {
	out := make(map[string]string, len(labels))
	for _, l := range models.StringList(labels).Compact() {
		if _, ok := out[labelKey(l)]; !ok {
			out[labelKey(l)] = l
		}
	}
	return out
}

func firstDuplicate(labels []string) (string, bool) {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range models.StringList(labels).Compact() {
		k := labelKey(l)
		if _, ok := seen[k]; ok {
			return l, true
		}
		seen[k] = struct{}{}
	}
	return "", false
}
