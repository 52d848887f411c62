package model

import (
	"net/http"
	"nyumba/shared/failure"
	"nyumba/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldListingID        = "listing_id"
	FieldRoom             = "room"
	FieldGuestID          = "guest_id"
	FieldHostID           = "host_id"
	FieldPropertyType     = "property_type"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldNumGuests        = "num_guests"
	FieldTotalPrice       = "total_price"
	FieldStatus           = "status"
	FieldPaymentStatus    = "payment_status"
	FieldCommissionAmount = "commission_amount"
	FieldCancelReason     = "cancel_reason"
)

// Status is the booking lifecycle axis.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// PaymentStatus is the payment axis, coupled to Status only through the
// transition rules below.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var ErrAlreadyPaid = &failure.Failure{
	Code:    http.StatusOK,
	Message: "booking is already paid",
}

type Booking struct {
	ID               string        `db:"id"`
	ListingID        string        `db:"listing_id"`
	Room             string        `db:"room"`
	GuestID          string        `db:"guest_id"`
	HostID           string        `db:"host_id"`
	PropertyType     string        `db:"property_type"`
	CheckIn          time.Time     `db:"check_in"`
	CheckOut         time.Time     `db:"check_out"`
	NumGuests        int           `db:"num_guests"`
	TotalPrice       float64       `db:"total_price"`
	Status           Status        `db:"status"`
	PaymentStatus    PaymentStatus `db:"payment_status"`
	CommissionAmount float64       `db:"commission_amount"`
	CancelReason     string        `db:"cancel_reason"`
	model.Metadata
}

// HostEarnings is the portion of the total price paid out to the host.
// CommissionAmount is fixed at creation time and never recomputed.
func (b *Booking) HostEarnings() float64 {
	return b.TotalPrice - b.CommissionAmount
}

// Confirm moves a pending booking to confirmed. Host action.
func (b *Booking) Confirm() error {
	if b.Status != StatusPending {
		return failure.Conflict("only a pending booking can be confirmed") //nolint:wrapcheck
	}

	b.Status = StatusConfirmed

	return nil
}

// Reject cancels a pending booking with a reason. Host action.
func (b *Booking) Reject(reason string) error {
	if b.Status != StatusPending {
		return failure.Conflict("only a pending booking can be rejected") //nolint:wrapcheck
	}

	b.Status = StatusCancelled
	b.CancelReason = reason

	return nil
}

// Complete moves a confirmed booking to completed. Host action.
func (b *Booking) Complete() error {
	if b.Status != StatusConfirmed {
		return failure.Conflict("only a confirmed booking can be completed") //nolint:wrapcheck
	}

	b.Status = StatusCompleted

	return nil
}

// CancelByGuest cancels a booking the guest no longer wants. Permitted only
// while the host has not yet confirmed.
func (b *Booking) CancelByGuest() error {
	if b.Status != StatusPending {
		return failure.Conflict("booking can no longer be cancelled") //nolint:wrapcheck
	}

	b.Status = StatusCancelled
	b.CancelReason = "cancelled by guest"

	return nil
}

// MarkPaid flips the payment axis to paid. Only reachable after the host has
// confirmed: a paid booking with pending status is an invariant violation.
func (b *Booking) MarkPaid() error {
	if b.PaymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}

	switch b.Status {
	case StatusConfirmed, StatusCompleted:
	case StatusPending, StatusCancelled:
		return failure.Conflict("booking is not payable in its current state") //nolint:wrapcheck
	default:
		return failure.Conflict("booking is not payable in its current state") //nolint:wrapcheck
	}

	if b.PaymentStatus != PaymentPending {
		return failure.Conflict("booking payment is not pending") //nolint:wrapcheck
	}

	b.PaymentStatus = PaymentPaid

	return nil
}

// Terminal reports whether no further lifecycle transition is possible.
func (b *Booking) Terminal() bool {
	return b.Status == StatusCancelled ||
		(b.Status == StatusCompleted && b.PaymentStatus == PaymentPaid)
}
