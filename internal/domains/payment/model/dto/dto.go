package dto

import (
	bookingModel "nyumba/internal/domains/booking/model"
	"nyumba/internal/domains/payment/model"
	"nyumba/shared"
	gDto "nyumba/shared/dto"
	gModel "nyumba/shared/model"
	"nyumba/shared/timezone"

	"github.com/google/uuid"
)

type ConfirmPaymentRequest struct {
	BookingID   string `json:"booking_id"   validate:"required"`
	Provider    string `json:"provider"     validate:"required,oneof=mobile_money card"`
	ProviderRef string `json:"provider_ref" validate:"omitempty,max=100"`
}

func (c *ConfirmPaymentRequest) ToModel(booking bookingModel.Booking) model.Payment {
	return model.Payment{
		ID:               uuid.NewString(),
		BookingID:        booking.ID,
		HostID:           booking.HostID,
		Amount:           booking.TotalPrice,
		CommissionAmount: booking.CommissionAmount,
		HostEarnings:     booking.HostEarnings(),
		Provider:         c.Provider,
		ProviderRef:      c.ProviderRef,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  c.Provider,
			ModifiedBy: c.Provider,
		},
	}
}

type PaymentResponse struct {
	ID               string  `json:"id"`
	BookingID        string  `json:"booking_id"`
	HostID           string  `json:"host_id"`
	Amount           float64 `json:"amount"`
	CommissionAmount float64 `json:"commission_amount"`
	HostEarnings     float64 `json:"host_earnings"`
	Provider         string  `json:"provider"`
	ProviderRef      string  `json:"provider_ref,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.HostID = model.HostID
	r.Amount = model.Amount
	r.CommissionAmount = shared.RoundMoney(model.CommissionAmount)
	r.HostEarnings = shared.RoundMoney(model.HostEarnings)
	r.Provider = model.Provider
	r.ProviderRef = model.ProviderRef
	r.Metadata.FromModel(model.Metadata)
}
