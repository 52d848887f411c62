package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyumba/internal/domains/booking/model"
)

func TestBooking_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		status  model.Status
		wantErr bool
	}{
		{name: "pending can be confirmed", status: model.StatusPending},
		{name: "confirmed cannot be confirmed again", status: model.StatusConfirmed, wantErr: true},
		{name: "cancelled cannot be confirmed", status: model.StatusCancelled, wantErr: true},
		{name: "completed cannot be confirmed", status: model.StatusCompleted, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{Status: tt.status}

			err := booking.Confirm()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.status, booking.Status)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusConfirmed, booking.Status)
			}
		})
	}
}

func TestBooking_Reject(t *testing.T) {
	booking := model.Booking{Status: model.StatusPending}

	err := booking.Reject("dates unavailable")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, booking.Status)
	assert.Equal(t, "dates unavailable", booking.CancelReason)

	confirmed := model.Booking{Status: model.StatusConfirmed}
	assert.Error(t, confirmed.Reject("too late"))
	assert.Empty(t, confirmed.CancelReason)
}

func TestBooking_Complete(t *testing.T) {
	tests := []struct {
		name    string
		status  model.Status
		wantErr bool
	}{
		{name: "confirmed can be completed", status: model.StatusConfirmed},
		{name: "pending cannot be completed", status: model.StatusPending, wantErr: true},
		{name: "cancelled cannot be completed", status: model.StatusCancelled, wantErr: true},
		{name: "completed cannot be completed again", status: model.StatusCompleted, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{Status: tt.status}

			err := booking.Complete()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusCompleted, booking.Status)
			}
		})
	}
}

func TestBooking_CancelByGuest(t *testing.T) {
	booking := model.Booking{Status: model.StatusPending}

	err := booking.CancelByGuest()

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, booking.Status)
	assert.NotEmpty(t, booking.CancelReason)

	confirmed := model.Booking{Status: model.StatusConfirmed}
	assert.Error(t, confirmed.CancelByGuest())
}

func TestBooking_MarkPaid(t *testing.T) {
	tests := []struct {
		name          string
		status        model.Status
		paymentStatus model.PaymentStatus
		wantErr       bool
		wantReplay    bool
	}{
		{name: "confirmed pending payment", status: model.StatusConfirmed, paymentStatus: model.PaymentPending},
		{name: "completed pending payment", status: model.StatusCompleted, paymentStatus: model.PaymentPending},
		{name: "already paid", status: model.StatusConfirmed, paymentStatus: model.PaymentPaid, wantErr: true, wantReplay: true},
		{name: "pending booking is not payable", status: model.StatusPending, paymentStatus: model.PaymentPending, wantErr: true},
		{name: "cancelled booking is not payable", status: model.StatusCancelled, paymentStatus: model.PaymentPending, wantErr: true},
		{name: "failed payment is not pending", status: model.StatusConfirmed, paymentStatus: model.PaymentFailed, wantErr: true},
		{name: "refunded payment is not pending", status: model.StatusConfirmed, paymentStatus: model.PaymentRefunded, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{Status: tt.status, PaymentStatus: tt.paymentStatus}

			err := booking.MarkPaid()

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReplay {
					assert.ErrorIs(t, err, model.ErrAlreadyPaid)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.PaymentPaid, booking.PaymentStatus)
			}
		})
	}
}

func TestBooking_Terminal(t *testing.T) {
	assert.True(t, (&model.Booking{Status: model.StatusCancelled}).Terminal())
	assert.True(t, (&model.Booking{Status: model.StatusCompleted, PaymentStatus: model.PaymentPaid}).Terminal())
	assert.False(t, (&model.Booking{Status: model.StatusCompleted, PaymentStatus: model.PaymentPending}).Terminal())
	assert.False(t, (&model.Booking{Status: model.StatusPending}).Terminal())
	assert.False(t, (&model.Booking{Status: model.StatusConfirmed}).Terminal())
}

func TestBooking_HostEarnings(t *testing.T) {
	booking := model.Booking{TotalPrice: 1000, CommissionAmount: 150}

	assert.Equal(t, float64(850), booking.HostEarnings())
}
