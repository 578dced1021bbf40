package entity

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "Pending"
	BookingStatusApproved BookingStatus = "Approved"
	BookingStatusRejected BookingStatus = "Rejected"
)

// Booking is a snapshot carried in a change event. This service never
// stores bookings; it only reacts to their transitions.
type Booking struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	RequestedBy     string        `json:"requested_by"`
	RequesterID     string        `json:"requester_id"`
	Status          BookingStatus `json:"status"`
	Hall            string        `json:"hall"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
}
