package model

import "time"

const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Receipt records one partial payment against a reservation. Amounts are in
// cents; the sum of a reservation's receipts never exceeds its price.
type Receipt struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ReservationID string    `json:"reservation_id" bson:"reservation_id" validate:"required,mongodb"`
	Folio         string    `json:"folio,omitempty" bson:"folio" validate:"omitempty,uuid4"`
	Amount        int64     `json:"amount" bson:"amount" validate:"required,min=1"`
	Method        string    `json:"method" bson:"method" validate:"required,oneof=cash card transfer"`
	Concept       string    `json:"concept" bson:"concept" validate:"required,min=2,max=200"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ReceiptSummary is the balance view returned next to a reservation's
// receipts.
type ReceiptSummary struct {
	Total   int64 `json:"total"`
	Paid    int64 `json:"paid"`
	Balance int64 `json:"balance"`
}
