package models

import "time"

const (
	ReturnPolicyReturnable    = "returnable"
	ReturnPolicyNonReturnable = "non_returnable"
	ReturnPolicyExchangeOnly  = "exchange_only"
)

// Combination is one purchasable (color, size) variant of a product.
type Combination struct {
	Color    string  `bson:"color" json:"color"`
	Size     string  `bson:"size" json:"size"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int64   `bson:"quantity" json:"quantity"`
}

type Product struct {
	ID             string        `bson:"_id,omitempty" json:"id"`
	Name           string        `bson:"name" json:"name"`
	ThumbnailImage string        `bson:"thumbnail_image" json:"thumbnail_image"`
	Images         StringList    `bson:"images" json:"images"`
	ArtisanID      string        `bson:"artisan_id" json:"artisan_id"`
	ArtisanName    string        `bson:"artisan_name" json:"artisan_name"`
	CategoryID     string        `bson:"category_id" json:"category_id"`
	CategoryName   string        `bson:"category_name" json:"category_name"`
	Colors         StringList    `bson:"colors" json:"colors"`
	Sizes          StringList    `bson:"sizes" json:"sizes"`
	Combinations   []Combination `bson:"combinations" json:"combinations"`
	Description    string        `bson:"description" json:"description"`
	ReturnPolicy   string        `bson:"return_policy" json:"return_policy"`
	Enabled        bool          `bson:"enabled" json:"enabled"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
