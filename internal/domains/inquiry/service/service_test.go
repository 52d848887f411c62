package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nyumba/config"
	"nyumba/infras/otel/mocks"
	inquiryMocks "nyumba/internal/domains/inquiry/mocks"
	"nyumba/internal/domains/inquiry/model"
	"nyumba/internal/domains/inquiry/model/dto"
	"nyumba/internal/domains/inquiry/service"
	listingMocks "nyumba/internal/domains/listing/mocks"
	listingModel "nyumba/internal/domains/listing/model"
	"nyumba/internal/domains/propertytype"
	cacheMocks "nyumba/shared/cache/mocks"
	"nyumba/shared/constant"
	gModel "nyumba/shared/model"
)

var errCacheMiss = errors.New("cache miss")

func newInquiryService(t *testing.T) (service.Inquiry, *inquiryMocks.MockInquiry, *listingMocks.MockListing, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := inquiryMocks.NewMockInquiry(ctrl)
	mockListings := listingMocks.NewMockListing(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockListings, propertytype.NewRegistry(), cfg, mockCache, mockOtel)

	return svc, mockRepo, mockListings, mockCache
}

func guestContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)
}

func hostContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleHost)
}

func rentalListing() listingModel.Listing {
	return listingModel.Listing{
		ID:           "listing-1",
		HostID:       "host-1",
		Title:        "Cozy apartment in Kemang",
		PropertyType: string(propertytype.TypeRental),
		Active:       true,
	}
}

func TestInquiryService_Create(t *testing.T) {
	req := dto.CreateInquiryRequest{
		ListingID: "listing-1",
		Message:   "Is the apartment available from October?",
	}

	t.Run("guest inquires about a rental listing", func(t *testing.T) {
		svc, mockRepo, mockListings, mockCache := newInquiryService(t)

		mockListings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(rentalListing(), nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inquiry model.Inquiry) error {
				assert.Equal(t, "listing-1", inquiry.ListingID)
				assert.Equal(t, "guest-1", inquiry.GuestID)
				assert.Equal(t, "host-1", inquiry.HostID)
				assert.Equal(t, model.StatusOpen, inquiry.Status)

				return nil
			})

		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Create(guestContext("guest-1"), req)

		assert.NoError(t, err)
		assert.Equal(t, "open", res.Status)
		assert.Equal(t, "guest-1", res.GuestID)
	})

	t.Run("bookable listing takes bookings, not inquiries", func(t *testing.T) {
		svc, _, mockListings, _ := newInquiryService(t)

		hotel := rentalListing()
		hotel.PropertyType = string(propertytype.TypeHotel)

		mockListings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)

		_, err := svc.Create(guestContext("guest-1"), req)

		assert.Error(t, err)
	})

	t.Run("inactive listing", func(t *testing.T) {
		svc, _, mockListings, _ := newInquiryService(t)

		inactive := rentalListing()
		inactive.Active = false

		mockListings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		_, err := svc.Create(guestContext("guest-1"), req)

		assert.Error(t, err)
	})

	t.Run("listing not found", func(t *testing.T) {
		svc, _, mockListings, _ := newInquiryService(t)

		mockListings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listingModel.Listing{}, nil)

		_, err := svc.Create(guestContext("guest-1"), req)

		assert.Error(t, err)
	})

	t.Run("host cannot inquire about their own listing", func(t *testing.T) {
		svc, _, mockListings, _ := newInquiryService(t)

		mockListings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(rentalListing(), nil)

		_, err := svc.Create(guestContext("host-1"), req)

		assert.Error(t, err)
	})

	t.Run("missing user context", func(t *testing.T) {
		svc, _, _, _ := newInquiryService(t)

		_, err := svc.Create(context.Background(), req)

		assert.Error(t, err)
	})
}

func openInquiry() model.Inquiry {
	return model.Inquiry{
		ID:        "inquiry-1",
		ListingID: "listing-1",
		GuestID:   "guest-1",
		HostID:    "host-1",
		Message:   "Is the apartment available from October?",
		Status:    model.StatusOpen,
		Metadata:  gModel.Metadata{CreatedBy: "guest-1"},
	}
}

func TestInquiryService_Answer(t *testing.T) {
	req := dto.AnswerInquiryRequest{Answer: "Yes, from October 10th."}

	t.Run("host answers an open inquiry", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newInquiryService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(openInquiry(), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, req.Answer, fields[model.FieldAnswer])
				assert.Equal(t, model.StatusAnswered, fields[model.FieldStatus])

				return nil
			})

		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Answer(hostContext("host-1"), "inquiry-1", req)

		assert.NoError(t, err)
	})

	t.Run("already answered", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newInquiryService(t)

		answered := openInquiry()
		answered.Status = model.StatusAnswered
		answered.Answer = "Yes, from October 10th."

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(answered, nil)

		err := svc.Answer(hostContext("host-1"), "inquiry-1", req)

		assert.Error(t, err)
	})

	t.Run("another host cannot answer", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newInquiryService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(openInquiry(), nil)

		err := svc.Answer(hostContext("host-2"), "inquiry-1", req)

		assert.Error(t, err)
	})

	t.Run("inquiry not found", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newInquiryService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Inquiry{}, nil)

		err := svc.Answer(hostContext("host-1"), "inquiry-1", req)

		assert.Error(t, err)
	})
}

func TestInquiryService_Get(t *testing.T) {
	t.Run("guest reads their own inquiry", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newInquiryService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(openInquiry(), nil)

		res, err := svc.Get(guestContext("guest-1"), "inquiry-1")

		assert.NoError(t, err)
		assert.Equal(t, "inquiry-1", res.ID)
	})

	t.Run("unrelated guest is rejected", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newInquiryService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(openInquiry(), nil)

		_, err := svc.Get(guestContext("guest-2"), "inquiry-1")

		assert.Error(t, err)
	})
}
