package models

import "time"

type Artisan struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image" json:"image"`
	Address   string    `bson:"address" json:"address"`
	Phone     string    `bson:"phone" json:"phone"`
	Story     string    `bson:"story" json:"story"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
