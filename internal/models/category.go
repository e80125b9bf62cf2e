package models

import "time"

type Category struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"category_name" json:"category_name"`
	Image     string    `bson:"category_image" json:"category_image"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
