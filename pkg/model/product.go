package model

import "time"

const (
	KindProduct   = "product"
	KindAccessory = "accessory"
)

// Product is a rentable catalog item (tables, linens, sound equipment and the
// like). Price is in cents.
type Product struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Kind        string    `json:"kind" bson:"kind" validate:"required,oneof=product accessory"`
	Price       int64     `json:"price" bson:"price" validate:"min=0"`
	Stock       int       `json:"stock" bson:"stock" validate:"min=0"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"max=1000"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ProductUpdate struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Kind        string  `json:"kind,omitempty" validate:"omitempty,oneof=product accessory"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,min=0"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}
