package service

import (
	"context"
	"fmt"
	"nyumba/config"
	"nyumba/infras/otel"
	"nyumba/internal/domains/inquiry/model"
	"nyumba/internal/domains/inquiry/model/dto"
	"nyumba/internal/domains/inquiry/repository"
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

const (
	cacheGetInquiry    = "inquiry:get"
	cacheGetAllInquiry = "inquiry:gets"
	cacheCountInquiry  = "inquiry:count"
)

type Inquiry interface {
	Create(ctx context.Context, req dto.CreateInquiryRequest) (dto.InquiryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInquiriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.InquiryResponse, error)
	Answer(ctx context.Context, id string, req dto.AnswerInquiryRequest) error
}

type serviceImpl struct {
	repo     repository.Inquiry
	listings listingRepo.Listing
	types    *propertytype.Registry
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Inquiry, listings listingRepo.Listing, types *propertytype.Registry, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Inquiry {
	return &serviceImpl{
		repo:     repo,
		listings: listings,
		types:    types,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInquiryRequest) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if guest == constant.Empty {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
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

	if !s.types.IsInquiryOnly(propertytype.Type(listing.PropertyType)) {
		return res, failure.UnprocessableEntity("listing takes bookings, not inquiries") // nolint:wrapcheck
	}

	if listing.HostID == guest {
		return res, failure.BadRequestFromString("host cannot inquire about their own listing") // nolint:wrapcheck
	}

	inquiry := req.ToModel(guest, listing.HostID)

	if err = s.repo.Insert(ctx, inquiry); err != nil {
		log.Error().Err(err).Msg("failed to create inquiry")

		return res, fmt.Errorf("failed to create inquiry: %w", err)
	}

	res.FromModel(inquiry)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllInquiry)
		shared.InvalidateCaches(c, s.cache, cacheCountInquiry)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInquiriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInquiry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiries")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, fmt.Errorf("failed to count inquiries: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiries")

		return res, fmt.Errorf("failed to get inquiries: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountInquiry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiry count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, fmt.Errorf("failed to count inquiries: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiry count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	inquiry, err := s.getOwned(ctx, id, false)
	if err != nil {
		return res, err
	}

	res.FromModel(inquiry)

	return res, nil
}

// Answer records the host's response and closes the inquiry.
func (s *serviceImpl) Answer(ctx context.Context, id string, req dto.AnswerInquiryRequest) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Answer")
	defer scope.End()

	inquiry, err := s.getOwned(ctx, id, true)
	if err != nil {
		return err
	}

	if inquiry.Status == model.StatusAnswered {
		return failure.Conflict("inquiry is already answered") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	fields := map[string]any{
		model.FieldAnswer:        req.Answer,
		model.FieldStatus:        model.StatusAnswered,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update inquiry")

		return fmt.Errorf("failed to update inquiry: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInquiry, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete inquiry from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInquiry)
		shared.InvalidateCaches(c, s.cache, cacheCountInquiry)
	}()

	return nil
}

func (s *serviceImpl) getOwned(ctx context.Context, id string, hostOnly bool) (model.Inquiry, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	var inquiry model.Inquiry

	cacheKey := shared.BuildCacheKey(cacheGetInquiry, id)

	if err := s.cache.Get(ctx, cacheKey, &inquiry); err != nil {
		inquiry, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get inquiry")

			return inquiry, fmt.Errorf("failed to get inquiry: %w", err)
		}

		if inquiry.ID != constant.Empty {
			go func() {
				c := context.WithoutCancel(ctx)

				if err := s.cache.Save(c, cacheKey, inquiry, s.cfg.Cache.TTL); err != nil {
					log.Error().Err(err).Msg("failed to save inquiry to cache")
				}
			}()
		}
	}

	if inquiry.ID == constant.Empty {
		return inquiry, failure.NotFound("inquiry not found") // nolint:wrapcheck
	}

	if role == constant.RoleAdmin {
		return inquiry, nil
	}

	if hostOnly {
		if inquiry.HostID != user {
			return inquiry, failure.ResourceRestrictedError // nolint:wrapcheck
		}

		return inquiry, nil
	}

	if inquiry.HostID != user && inquiry.GuestID != user {
		return inquiry, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	return inquiry, nil
}
