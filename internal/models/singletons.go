package models

import "time"

// Fixed document ids of the two singleton settings documents.
const (
	CurrentSaleID     = "current_sale"
	CurrentDeliveryID = "current_delivery"
)

const (
	SaleLive   = "live"
	SaleClosed = "closed"
)

type Sale struct {
	Title          string     `bson:"title" json:"title"`
	ThumbnailImage string     `bson:"thumbnail_image" json:"thumbnail_image"`
	ProductIDs     StringList `bson:"product_ids" json:"product_ids"`
	Status         string     `bson:"status" json:"status"`
	CreatedAt      time.Time  `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt      time.Time  `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type Delivery struct {
	IndianCost        int64     `bson:"indian_delivery_cost" json:"indian_delivery_cost"`
	InternationalCost int64     `bson:"international_delivery_cost" json:"international_delivery_cost"`
	CreatedAt         time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt         time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
