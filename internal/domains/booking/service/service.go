package service

import (
	"context"
	"fmt"
	"time"
	"nyumba/config"
	"nyumba/infras/kafka"
	"nyumba/infras/otel"
	"nyumba/internal/domains/booking/model"
	"nyumba/internal/domains/booking/model/dto"
	"nyumba/internal/domains/booking/repository"
	"nyumba/internal/domains/commission"
	listingModel "nyumba/internal/domains/listing/model"
	listingRepo "nyumba/internal/domains/listing/repository"
	"nyumba/internal/domains/propertytype"
	"nyumba/shared"
	"nyumba/shared/cache"
	"nyumba/shared/constant"
	gDto "nyumba/shared/dto"
	"nyumba/shared/failure"
	"nyumba/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Cache key prefixes are exported so the payment flow can invalidate booking
// reads after it flips the payment axis.
const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
	CacheCountBooking  = "booking:count"
)

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingCancelled = "booking.cancelled"
	TopicBookingCompleted = "booking.completed"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string) error
	Reject(ctx context.Context, id string, req dto.RejectBookingRequest) error
	Complete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	listings   listingRepo.Listing
	commission *commission.Calculator
	cfg        *config.Config
	cache      cache.RedisCache
	kafka      kafka.Client
	otel       otel.Otel
}

func New(repo repository.Booking, listings listingRepo.Listing, calc *commission.Calculator, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:       repo,
		listings:   listings,
		commission: calc,
		cfg:        cfg,
		cache:      cache,
		kafka:      kafkaClient,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if guest == constant.Empty {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, failure.BadRequestFromString("dates must use the format 2006-01-02") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if checkIn.Before(today) {
		return res, failure.BadRequestFromString("check_in must not be in the past") // nolint:wrapcheck
	}

	listing, err := s.listings.Get(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if !listing.Active {
		return res, failure.UnprocessableEntity("listing is not active") // nolint:wrapcheck
	}

	if listing.HostID == guest {
		return res, failure.BadRequestFromString("host cannot book their own listing") // nolint:wrapcheck
	}

	if req.NumGuests > listing.MaxGuests {
		return res, failure.BadRequestFromString("num_guests exceeds the listing capacity") // nolint:wrapcheck
	}

	breakdown, err := s.commission.Calculate(req.TotalPrice, propertytype.Type(listing.PropertyType))
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	booking := req.ToModel(guest, listing.HostID, listing.PropertyType, checkIn, checkOut, breakdown)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	s.afterWrite(ctx, booking.ID, TopicBookingCreated, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getOwned(ctx, id, roleAny)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Confirm accepts a pending booking. Host action.
func (s *serviceImpl) Confirm(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()

	booking, err := s.getOwned(ctx, id, roleHost)
	if err != nil {
		return err
	}

	if err := booking.Confirm(); err != nil {
		return err // nolint:wrapcheck
	}

	return s.transition(ctx, &booking, model.StatusPending, TopicBookingConfirmed)
}

// Reject declines a pending booking with a reason. Host action.
func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectBookingRequest) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()

	booking, err := s.getOwned(ctx, id, roleHost)
	if err != nil {
		return err
	}

	if err := booking.Reject(req.Reason); err != nil {
		return err // nolint:wrapcheck
	}

	return s.transition(ctx, &booking, model.StatusPending, TopicBookingCancelled)
}

// Complete marks a confirmed stay as finished. Host action.
func (s *serviceImpl) Complete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()

	booking, err := s.getOwned(ctx, id, roleHost)
	if err != nil {
		return err
	}

	if err := booking.Complete(); err != nil {
		return err // nolint:wrapcheck
	}

	return s.transition(ctx, &booking, model.StatusConfirmed, TopicBookingCompleted)
}

// Cancel withdraws a pending booking. Guest action.
func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()

	booking, err := s.getOwned(ctx, id, roleGuest)
	if err != nil {
		return err
	}

	if err := booking.CancelByGuest(); err != nil {
		return err // nolint:wrapcheck
	}

	return s.transition(ctx, &booking, model.StatusPending, TopicBookingCancelled)
}

type ownerRole int

const (
	roleAny ownerRole = iota
	roleHost
	roleGuest
)

// getOwned loads a booking read-through the cache and checks the caller may
// act on it. The ownership check runs after the cache read so a hit is still
// scoped to the caller.
func (s *serviceImpl) getOwned(ctx context.Context, id string, owner ownerRole) (model.Booking, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	var booking model.Booking

	cacheKey := shared.BuildCacheKey(CacheGetBooking, id)

	if err := s.cache.Get(ctx, cacheKey, &booking); err != nil {
		booking, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return booking, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID != constant.Empty {
			go func() {
				c := context.WithoutCancel(ctx)

				if err := s.cache.Save(c, cacheKey, booking, s.cfg.Cache.TTL); err != nil {
					log.Error().Err(err).Msg("failed to save booking to cache")
				}
			}()
		}
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if role == constant.RoleAdmin {
		return booking, nil
	}

	switch owner {
	case roleHost:
		if booking.HostID != user {
			return booking, failure.ResourceRestrictedError // nolint:wrapcheck
		}
	case roleGuest:
		if booking.GuestID != user {
			return booking, failure.ResourceRestrictedError // nolint:wrapcheck
		}
	case roleAny:
		if booking.HostID != user && booking.GuestID != user {
			return booking, failure.ResourceRestrictedError // nolint:wrapcheck
		}
	}

	return booking, nil
}

// transition persists a lifecycle change guarded by the status the booking
// was read in. A concurrent transition makes the guarded update match zero
// rows, and the caller gets a conflict instead of a silent overwrite.
func (s *serviceImpl) transition(ctx context.Context, booking *model.Booking, from model.Status, topic string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:        booking.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
	if booking.CancelReason != constant.Empty {
		fields[model.FieldCancelReason] = booking.CancelReason
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: from, Table: model.TableName, ArgName: "status_from"},
		},
	}

	affected, err := s.repo.UpdateWhere(ctx, fields, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return failure.Conflict("booking state changed, please retry") // nolint:wrapcheck
	}

	var res dto.BookingResponse

	res.FromModel(*booking)
	s.afterWrite(ctx, booking.ID, topic, res)

	return nil
}

func (s *serviceImpl) afterWrite(ctx context.Context, id, topic string, payload any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, CacheCountBooking)

		if !s.cfg.Kafka.Enable {
			return
		}

		if err := s.kafka.SendMessages(c, topic, kafka.Message{Key: id, Value: payload}); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to publish booking event")
		}
	}()
}
