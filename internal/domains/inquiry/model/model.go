package model

import "nyumba/shared/model"

const (
	TableName  = "inquiries"
	EntityName = "inquiry"

	FieldID        = "id"
	FieldListingID = "listing_id"
	FieldGuestID   = "guest_id"
	FieldHostID    = "host_id"
	FieldMessage   = "message"
	FieldAnswer    = "answer"
	FieldStatus    = "status"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusAnswered Status = "answered"
)

// Inquiry is a guest question about an inquiry-only listing. Long-term
// rentals take no bookings and no payments, so this is their whole flow.
type Inquiry struct {
	ID        string `db:"id"`
	ListingID string `db:"listing_id"`
	GuestID   string `db:"guest_id"`
	HostID    string `db:"host_id"`
	Message   string `db:"message"`
	Answer    string `db:"answer"`
	Status    Status `db:"status"`
	model.Metadata
}
