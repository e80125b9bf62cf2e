package models

import "time"

type Genre struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	Name           string     `bson:"name" json:"name"`
	ThumbnailImage string     `bson:"thumbnail_image" json:"thumbnail_image"`
	ProductIDs     StringList `bson:"product_ids" json:"product_ids"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
}
