package models

import "time"

// Base contains common columns for all tables.
// Deletes in this application are hard deletes: a budget must be re-creatable
// for the same (user, month) pair after removal, and expense sums must never
// see tombstones, so there is no soft-delete column.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
