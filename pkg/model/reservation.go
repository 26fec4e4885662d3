package model

import (
	"time"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation is one booked event at the venue. Date carries the instant the
// event day was anchored to (local noon in the business timezone); Day is the
// derived canonical calendar day used for all same-day collision queries.
// StartTime and EndTime are venue wall-clock times in HH:MM.
type Reservation struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClientName  string    `json:"client_name" bson:"client_name" validate:"required,min=2,max=100"`
	ClientPhone string    `json:"client_phone" bson:"client_phone" validate:"omitempty,e164"`
	ClientEmail string    `json:"client_email" bson:"client_email" validate:"omitempty,email"`
	EventType   string    `json:"event_type" bson:"event_type" validate:"required,min=2,max=60"`
	Date        time.Time `json:"date" bson:"date" validate:"required"`
	Day         string    `json:"day,omitempty" bson:"day" validate:"omitempty,datetime=2006-01-02"`
	StartTime   string    `json:"start_time" bson:"start_time" validate:"required,hhmm"`
	EndTime     string    `json:"end_time" bson:"end_time" validate:"required,hhmm"`
	GuestCount  int       `json:"guest_count" bson:"guest_count" validate:"min=0,max=5000"`
	Price       int64     `json:"price" bson:"price" validate:"min=0"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=2000"`
	Status      string    `json:"status" bson:"status" validate:"required,oneof=confirmed cancelled"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ReservationUpdate carries the patchable subset of Reservation. Nil/zero
// fields are left unchanged by a merge.
type ReservationUpdate struct {
	ClientName  string     `json:"client_name,omitempty" validate:"omitempty,min=2,max=100"`
	ClientPhone *string    `json:"client_phone,omitempty" validate:"omitempty"`
	ClientEmail *string    `json:"client_email,omitempty" validate:"omitempty"`
	EventType   string     `json:"event_type,omitempty" validate:"omitempty,min=2,max=60"`
	Date        *time.Time `json:"date,omitempty" validate:"omitempty"`
	StartTime   string     `json:"start_time,omitempty" validate:"omitempty,hhmm"`
	EndTime     string     `json:"end_time,omitempty" validate:"omitempty,hhmm"`
	GuestCount  *int       `json:"guest_count,omitempty" validate:"omitempty,min=0,max=5000"`
	Price       *int64     `json:"price,omitempty" validate:"omitempty,min=0"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=confirmed cancelled"`
}
