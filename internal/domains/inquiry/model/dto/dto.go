package dto

import (
	"nyumba/internal/domains/inquiry/model"
	"nyumba/shared"
	gDto "nyumba/shared/dto"
	gModel "nyumba/shared/model"
	"nyumba/shared/timezone"

	"github.com/google/uuid"
)

type CreateInquiryRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	Message   string `json:"message"    validate:"required,max=1000"`
}

func (c *CreateInquiryRequest) ToModel(guestID, hostID string) model.Inquiry {
	return model.Inquiry{
		ID:        uuid.NewString(),
		ListingID: c.ListingID,
		GuestID:   guestID,
		HostID:    hostID,
		Message:   c.Message,
		Status:    model.StatusOpen,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

type AnswerInquiryRequest struct {
	Answer string `json:"answer" validate:"required,max=1000"`
}

type InquiryResponse struct {
	ID        string `json:"id"`
	ListingID string `json:"listing_id"`
	GuestID   string `json:"guest_id"`
	HostID    string `json:"host_id"`
	Message   string `json:"message"`
	Answer    string `json:"answer,omitempty"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(model model.Inquiry) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.GuestID = model.GuestID
	r.HostID = model.HostID
	r.Message = model.Message
	r.Answer = model.Answer
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInquiriesResponse) FromModels(models []model.Inquiry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Inquiries = make([]InquiryResponse, len(models))
	for i, mod := range models {
		r.Inquiries[i].FromModel(mod)
	}
}
