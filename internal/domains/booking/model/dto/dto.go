package dto

import (
	"nyumba/internal/domains/booking/model"
	"nyumba/internal/domains/commission"
	"nyumba/shared"
	gDto "nyumba/shared/dto"
	gModel "nyumba/shared/model"
	"nyumba/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID  string  `json:"listing_id"  validate:"required"`
	Room       string  `json:"room"        validate:"omitempty,max=50"`
	CheckIn    string  `json:"check_in"    validate:"required"`
	CheckOut   string  `json:"check_out"   validate:"required"`
	NumGuests  int     `json:"num_guests"  validate:"required,min=1"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
}

func (c *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse("2006-01-02", c.CheckIn)
	if err != nil {
		return checkIn, checkOut, err //nolint:wrapcheck
	}

	checkOut, err = timezone.Parse("2006-01-02", c.CheckOut)

	return checkIn, checkOut, err //nolint:wrapcheck
}

func (c *CreateBookingRequest) ToModel(guestID, hostID, propertyType string, checkIn, checkOut time.Time, breakdown commission.Breakdown) model.Booking {
	return model.Booking{
		ID:               uuid.NewString(),
		ListingID:        c.ListingID,
		Room:             c.Room,
		GuestID:          guestID,
		HostID:           hostID,
		PropertyType:     propertyType,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		NumGuests:        c.NumGuests,
		TotalPrice:       c.TotalPrice,
		Status:           model.StatusPending,
		PaymentStatus:    model.PaymentPending,
		CommissionAmount: breakdown.CommissionAmount,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=250"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	ListingID        string  `json:"listing_id"`
	Room             string  `json:"room,omitempty"`
	GuestID          string  `json:"guest_id"`
	HostID           string  `json:"host_id"`
	PropertyType     string  `json:"property_type"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	NumGuests        int     `json:"num_guests"`
	TotalPrice       float64 `json:"total_price"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"payment_status"`
	CommissionAmount float64 `json:"commission_amount"`
	HostEarnings     float64 `json:"host_earnings"`
	CancelReason     string  `json:"cancel_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.Room = model.Room
	r.GuestID = model.GuestID
	r.HostID = model.HostID
	r.PropertyType = model.PropertyType
	r.CheckIn = model.CheckIn.Format("2006-01-02")
	r.CheckOut = model.CheckOut.Format("2006-01-02")
	r.NumGuests = model.NumGuests
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.PaymentStatus = string(model.PaymentStatus)
	r.CommissionAmount = shared.RoundMoney(model.CommissionAmount)
	r.HostEarnings = shared.RoundMoney(model.HostEarnings())
	r.CancelReason = model.CancelReason
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
