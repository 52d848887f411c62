package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"nyumba/config"
	"nyumba/infras/otel/mocks"
	bookingMocks "nyumba/internal/domains/booking/mocks"
	"nyumba/internal/domains/booking/model"
	"nyumba/internal/domains/booking/model/dto"
	"nyumba/internal/domains/booking/service"
	"nyumba/internal/domains/commission"
	listingMocks "nyumba/internal/domains/listing/mocks"
	listingModel "nyumba/internal/domains/listing/model"
	"nyumba/internal/domains/propertytype"
	cacheMocks "nyumba/shared/cache/mocks"
	"nyumba/shared/constant"
	"nyumba/shared/timezone"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *listingMocks.MockListing, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockListings := listingMocks.NewMockListing(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	calc := commission.NewCalculator(propertytype.NewRegistry())

	svc := service.New(mockRepo, mockListings, calc, cfg, mockCache, nil, mockOtel)

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

func futureDate(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestBookingService_Create(t *testing.T) {
	hotelListing := listingModel.Listing{
		ID:           "listing-1",
		HostID:       "host-1",
		PropertyType: string(propertytype.TypeHotel),
		NightlyPrice: 100,
		MaxGuests:    4,
		Active:       true,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateBookingRequest
		setupMock func(repo *bookingMocks.MockBooking, listings *listingMocks.MockListing, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		check     func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "successful creation with hotel commission",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(repo *bookingMocks.MockBooking, listings *listingMocks.MockListing, cache *cacheMocks.MockRedisCache) {
				listings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelListing, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, model.PaymentPending, booking.PaymentStatus)
						assert.Equal(t, float64(150), booking.CommissionAmount)
						assert.Equal(t, "guest-1", booking.GuestID)
						assert.Equal(t, "host-1", booking.HostID)

						return nil
					})

				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, float64(150), res.CommissionAmount)
				assert.Equal(t, float64(850), res.HostEarnings)
				assert.Equal(t, string(model.StatusPending), res.Status)
			},
		},
		{
			name: "missing user in context",
			ctx:  context.Background(),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(*bookingMocks.MockBooking, *listingMocks.MockListing, *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "malformed dates",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    "01-10-2026",
				CheckOut:   "05-10-2026",
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(*bookingMocks.MockBooking, *listingMocks.MockListing, *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "check out not after check in",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(34),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(*bookingMocks.MockBooking, *listingMocks.MockListing, *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "check in already passed",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    "2020-01-01",
				CheckOut:   "2020-01-05",
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(*bookingMocks.MockBooking, *listingMocks.MockListing, *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "listing not found",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "missing",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(_ *bookingMocks.MockBooking, listings *listingMocks.MockListing, _ *cacheMocks.MockRedisCache) {
				listings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(listingModel.Listing{}, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive listing",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(_ *bookingMocks.MockBooking, listings *listingMocks.MockListing, _ *cacheMocks.MockRedisCache) {
				inactive := hotelListing
				inactive.Active = false

				listings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactive, nil)
			},
			wantErr: true,
		},
		{
			name: "host cannot book own listing",
			ctx:  guestContext("host-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(_ *bookingMocks.MockBooking, listings *listingMocks.MockListing, _ *cacheMocks.MockRedisCache) {
				listings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelListing, nil)
			},
			wantErr: true,
		},
		{
			name: "too many guests",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  9,
				TotalPrice: 1000,
			},
			setupMock: func(_ *bookingMocks.MockBooking, listings *listingMocks.MockListing, _ *cacheMocks.MockRedisCache) {
				listings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelListing, nil)
			},
			wantErr: true,
		},
		{
			name: "rental listing cannot be booked",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(_ *bookingMocks.MockBooking, listings *listingMocks.MockListing, _ *cacheMocks.MockRedisCache) {
				rental := hotelListing
				rental.PropertyType = string(propertytype.TypeRental)

				listings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rental, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			ctx:  guestContext("guest-1"),
			req: dto.CreateBookingRequest{
				ListingID:  "listing-1",
				CheckIn:    futureDate(30),
				CheckOut:   futureDate(34),
				NumGuests:  2,
				TotalPrice: 1000,
			},
			setupMock: func(repo *bookingMocks.MockBooking, listings *listingMocks.MockListing, _ *cacheMocks.MockRedisCache) {
				listings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelListing, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockListings, mockCache := newBookingService(t)

			tt.setupMock(mockRepo, mockListings, mockCache)

			res, err := svc.Create(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	pending := model.Booking{
		ID:      "booking-1",
		HostID:  "host-1",
		GuestID: "guest-1",
		Status:  model.StatusPending,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful confirmation",
			ctx:  hostContext("host-1"),
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				repo.EXPECT().
					UpdateWhere(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "not the host",
			ctx:  hostContext("host-2"),
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: true,
		},
		{
			name: "booking not found",
			ctx:  hostContext("host-1"),
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "already confirmed",
			ctx:  hostContext("host-1"),
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				confirmed := pending
				confirmed.Status = model.StatusConfirmed

				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: true,
		},
		{
			name: "lost the race to another transition",
			ctx:  hostContext("host-1"),
			setupMock: func(repo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				repo.EXPECT().
					UpdateWhere(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)

				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache := newBookingService(t)

			tt.setupMock(mockRepo, mockCache)

			err := svc.Confirm(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Reject(t *testing.T) {
	pending := model.Booking{
		ID:      "booking-1",
		HostID:  "host-1",
		GuestID: "guest-1",
		Status:  model.StatusPending,
	}

	svc, mockRepo, _, mockCache := newBookingService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pending, nil)

	mockRepo.EXPECT().
		UpdateWhere(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) (int64, error) {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
			assert.Equal(t, "dates unavailable", fields[model.FieldCancelReason])

			return 1, nil
		})

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	err := svc.Reject(hostContext("host-1"), "booking-1", dto.RejectBookingRequest{Reason: "dates unavailable"})

	assert.NoError(t, err)
}

func TestBookingService_Cancel(t *testing.T) {
	pending := model.Booking{
		ID:      "booking-1",
		HostID:  "host-1",
		GuestID: "guest-1",
		Status:  model.StatusPending,
	}

	tests := []struct {
		name     string
		ctx      context.Context
		booking  model.Booking
		affected int64
		expectDB bool
		wantErr  bool
	}{
		{name: "guest cancels pending booking", ctx: guestContext("guest-1"), booking: pending, affected: 1, expectDB: true},
		{name: "another guest cannot cancel", ctx: guestContext("guest-2"), booking: pending, wantErr: true},
		{name: "confirmed booking cannot be cancelled", ctx: guestContext("guest-1"), booking: model.Booking{ID: "booking-1", HostID: "host-1", GuestID: "guest-1", Status: model.StatusConfirmed}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache := newBookingService(t)

			mockCache.EXPECT().
				Get(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("cache miss"))

			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.booking, nil)

			if tt.expectDB {
				mockRepo.EXPECT().
					UpdateWhere(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.affected, nil)
			}

			mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			err := svc.Cancel(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Complete(t *testing.T) {
	confirmed := model.Booking{
		ID:      "booking-1",
		HostID:  "host-1",
		GuestID: "guest-1",
		Status:  model.StatusConfirmed,
	}

	svc, mockRepo, _, mockCache := newBookingService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(confirmed, nil)

	mockRepo.EXPECT().
		UpdateWhere(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) (int64, error) {
			assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])

			return 1, nil
		})

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	err := svc.Complete(hostContext("host-1"), "booking-1")

	assert.NoError(t, err)
}

func TestBookingService_Get(t *testing.T) {
	booking := model.Booking{
		ID:      "booking-1",
		HostID:  "host-1",
		GuestID: "guest-1",
		Status:  model.StatusPending,
	}

	tests := []struct {
		name    string
		ctx     context.Context
		wantErr bool
	}{
		{name: "guest can read own booking", ctx: guestContext("guest-1")},
		{name: "host can read own booking", ctx: hostContext("host-1")},
		{name: "stranger cannot read the booking", ctx: guestContext("guest-2"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache := newBookingService(t)

			mockCache.EXPECT().
				Get(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("cache miss"))

			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(booking, nil)

			mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			res, err := svc.Get(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-1", res.ID)
			}
		})
	}
}
