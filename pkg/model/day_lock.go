package model

import "time"

// DayLock is an advisory lock serializing availability checks for one
// canonical day. The unique _id insert is the mutual exclusion; ExpiresAt
// backs a TTL index so crashed holders cannot wedge a day.
type DayLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
