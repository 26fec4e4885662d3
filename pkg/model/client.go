package model

import "time"

// Client is a directory entry backing the self-service panel.
type Client struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone     string    `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Email     string    `json:"email" bson:"email" validate:"omitempty,email"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty" validate:"max=200"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=2000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ClientUpdate struct {
	Name    string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=200"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
