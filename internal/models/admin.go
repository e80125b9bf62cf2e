package models

import "time"

type Admin struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	DocID     string    `bson:"id,omitempty" json:"-"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
