package model

import "nyumba/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID               = "id"
	FieldBookingID        = "booking_id"
	FieldHostID           = "host_id"
	FieldAmount           = "amount"
	FieldCommissionAmount = "commission_amount"
	FieldHostEarnings     = "host_earnings"
	FieldProvider         = "provider"
	FieldProviderRef      = "provider_ref"
)

// Payment is the settlement record written when a booking is paid. At most
// one row per booking, enforced by a unique constraint on booking_id.
type Payment struct {
	ID               string  `db:"id"`
	BookingID        string  `db:"booking_id"`
	HostID           string  `db:"host_id"`
	Amount           float64 `db:"amount"`
	CommissionAmount float64 `db:"commission_amount"`
	HostEarnings     float64 `db:"host_earnings"`
	Provider         string  `db:"provider"`
	ProviderRef      string  `db:"provider_ref"`
	model.Metadata
}
