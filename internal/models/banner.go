package models

import "time"

type Banner struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ImageURL  string    `bson:"imageUrl" json:"imageUrl"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
