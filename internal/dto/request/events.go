package request

import (
	"github.com/sameer-776/seminar-app/internal/data/entity"
)

// BookingSnapshot is the booking document state carried by a change
// event from the trigger host.
type BookingSnapshot struct {
	ID              string `json:"id" validate:"required"`
	Title           string `json:"title"`
	RequestedBy     string `json:"requestedBy"`
	RequesterID     string `json:"requesterId"`
	Status          string `json:"status" validate:"required"`
	Hall            string `json:"hall"`
	RejectionReason string `json:"rejectionReason"`
}

func (s BookingSnapshot) ToEntity() entity.Booking {
	return entity.Booking{
		ID:              s.ID,
		Title:           s.Title,
		RequestedBy:     s.RequestedBy,
		RequesterID:     s.RequesterID,
		Status:          entity.BookingStatus(s.Status),
		Hall:            s.Hall,
		RejectionReason: s.RejectionReason,
	}
}

type BookingCreatedEvent struct {
	Booking BookingSnapshot `json:"booking" validate:"required"`
}

type BookingUpdatedEvent struct {
	Before BookingSnapshot `json:"before" validate:"required"`
	After  BookingSnapshot `json:"after" validate:"required"`
}
