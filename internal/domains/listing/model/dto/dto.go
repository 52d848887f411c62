package dto

import (
	"nyumba/internal/domains/listing/model"
	"nyumba/shared"
	gDto "nyumba/shared/dto"
	gModel "nyumba/shared/model"
	"nyumba/shared/timezone"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title        string  `json:"title"         validate:"required,max=150"`
	Location     string  `json:"location"      validate:"required,max=150"`
	PropertyType string  `json:"property_type" validate:"required,oneof=hotel fully_furnished rental"`
	NightlyPrice float64 `json:"nightly_price" validate:"gte=0"`
	MaxGuests    int     `json:"max_guests"    validate:"required,min=1"`
}

func (c *CreateListingRequest) ToModel(hostID string) model.Listing {
	return model.Listing{
		ID:           uuid.NewString(),
		HostID:       hostID,
		Title:        c.Title,
		Location:     c.Location,
		PropertyType: c.PropertyType,
		NightlyPrice: c.NightlyPrice,
		MaxGuests:    c.MaxGuests,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  hostID,
			ModifiedBy: hostID,
		},
	}
}

type UpdateListingRequest struct {
	Title        string   `db:"title"         json:"title"         validate:"omitempty,max=150"`
	Location     string   `db:"location"      json:"location"      validate:"omitempty,max=150"`
	NightlyPrice *float64 `db:"nightly_price" json:"nightly_price" validate:"omitempty,gte=0"`
	MaxGuests    *int     `db:"max_guests"    json:"max_guests"    validate:"omitempty,min=1"`
	Active       *bool    `db:"active"        json:"active"        validate:"omitempty"`
}

type ListingResponse struct {
	ID           string  `json:"id"`
	HostID       string  `json:"host_id"`
	Title        string  `json:"title"`
	Location     string  `json:"location"`
	PropertyType string  `json:"property_type"`
	NightlyPrice float64 `json:"nightly_price"`
	MaxGuests    int     `json:"max_guests"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(model model.Listing) {
	r.ID = model.ID
	r.HostID = model.HostID
	r.Title = model.Title
	r.Location = model.Location
	r.PropertyType = model.PropertyType
	r.NightlyPrice = model.NightlyPrice
	r.MaxGuests = model.MaxGuests
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetListingsResponse) FromModels(models []model.Listing, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}
