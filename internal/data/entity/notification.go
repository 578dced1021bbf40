package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message record. Immutable after creation
// except for IsRead. CreatedAt is assigned by the database at insert.
type Notification struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	BookingID *string   `db:"booking_id"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}
