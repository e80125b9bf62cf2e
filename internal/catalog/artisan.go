package catalog

import (
	"strings"

	"catalog-admin/internal/richtext"
)

type ArtisanInput struct {
	Name    string `json:"name" binding:"required"`
	Image   string `json:"image"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"phone10"`
	Story   string `json:"story"`
}

func (in ArtisanInput) Normalize() (ArtisanInput, error) {
	out := ArtisanInput{
		Name:    strings.TrimSpace(in.Name),
		Image:   strings.TrimSpace(in.Image),
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
		Story:   richtext.Sanitize(in.Story),
	}
	if out.Name == "" {
		return out, invalid("Artisan name is required.")
	}
	if !ValidPhone(out.Phone) {
		return out, invalid("Phone number must be a valid 10-digit number.")
	}
	if richtext.IsBlank(out.Story) {
		out.Story = ""
	}
	return out, nil
}
