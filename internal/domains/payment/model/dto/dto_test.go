package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	bookingModel "nyumba/internal/domains/booking/model"
	"nyumba/internal/domains/payment/model/dto"
	"nyumba/shared/validator"
)

func TestConfirmPaymentRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.ConfirmPaymentRequest
		wantErr bool
	}{
		{
			name: "mobile money acknowledgment",
			req:  dto.ConfirmPaymentRequest{BookingID: "booking-1", Provider: "mobile_money"},
		},
		{
			name: "card payment with reference",
			req:  dto.ConfirmPaymentRequest{BookingID: "booking-1", Provider: "card", ProviderRef: "ch_123"},
		},
		{
			name:    "unknown provider rejected",
			req:     dto.ConfirmPaymentRequest{BookingID: "booking-1", Provider: "stripe"},
			wantErr: true,
		},
		{
			name:    "missing provider rejected",
			req:     dto.ConfirmPaymentRequest{BookingID: "booking-1"},
			wantErr: true,
		},
		{
			name:    "missing booking id rejected",
			req:     dto.ConfirmPaymentRequest{Provider: "card"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfirmPaymentRequest_ToModel(t *testing.T) {
	booking := bookingModel.Booking{
		ID:               "booking-1",
		HostID:           "host-1",
		TotalPrice:       1000,
		CommissionAmount: 150,
	}

	req := dto.ConfirmPaymentRequest{BookingID: "booking-1", Provider: "card", ProviderRef: "ch_123"}

	payment := req.ToModel(booking)

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, "booking-1", payment.BookingID)
	assert.Equal(t, "host-1", payment.HostID)
	assert.Equal(t, float64(1000), payment.Amount)
	assert.Equal(t, float64(150), payment.CommissionAmount)
	assert.Equal(t, float64(850), payment.HostEarnings)
	assert.Equal(t, "card", payment.Provider)
	assert.Equal(t, "ch_123", payment.ProviderRef)
}
