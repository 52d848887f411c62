package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nyumba/config"
	"nyumba/infras/kafka"
	"nyumba/infras/otel"
	"nyumba/infras/postgres"
	bookingModel "nyumba/internal/domains/booking/model"
	bookingRepo "nyumba/internal/domains/booking/repository"
	bookingService "nyumba/internal/domains/booking/service"
	"nyumba/internal/domains/payment/model"
	"nyumba/internal/domains/payment/model/dto"
	"nyumba/internal/domains/payment/repository"
	walletModel "nyumba/internal/domains/wallet/model"
	walletRepo "nyumba/internal/domains/wallet/repository"
	walletService "nyumba/internal/domains/wallet/service"
	"nyumba/shared"
	"nyumba/shared/cache"
	"nyumba/shared/constant"
	gDto "nyumba/shared/dto"
	"nyumba/shared/failure"
	gModel "nyumba/shared/model"
	"nyumba/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const TopicBookingPaid = "booking.paid"

type Payment interface {
	Confirm(ctx context.Context, req dto.ConfirmPaymentRequest) (dto.PaymentResponse, error)
	Get(ctx context.Context, bookingID string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	db       *postgres.Connection
	payments repository.Payment
	bookings bookingRepo.Booking
	wallets  walletRepo.Wallet
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(db *postgres.Connection, payments repository.Payment, bookings bookingRepo.Booking, wallets walletRepo.Wallet, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel) Payment {
	return &serviceImpl{
		db:       db,
		payments: payments,
		bookings: bookings,
		wallets:  wallets,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafkaClient,
		otel:     otel,
	}
}

// Confirm settles a booking: the payment axis flips to paid, the host wallet
// is credited with the earnings, and a settlement record is written, all in
// one database transaction. Replays of an already settled booking return the
// existing settlement without crediting again.
func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	check := booking
	if err = check.MarkPaid(); err != nil {
		if errors.Is(err, bookingModel.ErrAlreadyPaid) {
			return s.settled(ctx, booking.ID)
		}

		return res, err // nolint:wrapcheck
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin payment transaction")

		return res, fmt.Errorf("failed to begin payment transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback payment transaction")
		}
	}()

	affected, err := s.bookings.UpdateWhereTx(ctx, tx, map[string]any{
		bookingModel.FieldPaymentStatus: bookingModel.PaymentPaid,
		constant.FieldModifiedAt:        timezone.Now(),
		constant.FieldModifiedBy:        req.Provider,
	}, payableFilter(booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to mark booking paid")

		return res, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	// Zero rows means another confirmation won the race or the lifecycle
	// moved underneath us. Re-read to tell the two apart.
	if affected == 0 {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback payment transaction")
		}

		current, getErr := s.getBooking(ctx, booking.ID)
		if getErr == nil && current.PaymentStatus == bookingModel.PaymentPaid {
			return s.settled(ctx, booking.ID)
		}

		return res, failure.Conflict("booking state changed, please retry") // nolint:wrapcheck
	}

	actor := gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  req.Provider,
		ModifiedBy: req.Provider,
	}

	if err = s.wallets.CreditTx(ctx, tx, walletModel.Wallet{
		HostID:   booking.HostID,
		Balance:  booking.HostEarnings(),
		Metadata: actor,
	}); err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.wallets.InsertTransactionTx(ctx, tx, walletModel.Transaction{
		ID:        uuid.NewString(),
		HostID:    booking.HostID,
		BookingID: booking.ID,
		Amount:    booking.HostEarnings(),
		Type:      walletModel.TransactionCredit,
		Metadata:  actor,
	}); err != nil {
		return res, err // nolint:wrapcheck
	}

	payment := req.ToModel(booking)

	if err = s.payments.InsertTx(ctx, tx, payment); err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit payment transaction")

		return res, fmt.Errorf("failed to commit payment transaction: %w", err)
	}

	res.FromModel(payment)

	s.afterConfirm(ctx, booking, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, bookingID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.payments.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// settled returns the settlement written by an earlier confirmation.
func (s *serviceImpl) settled(ctx context.Context, bookingID string) (res dto.PaymentResponse, err error) {
	payment, err := s.payments.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		log.Error().Str("bookingID", bookingID).Msg("paid booking has no settlement record")

		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func payableFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldPaymentStatus, Operator: gDto.FilterOperatorNotEq, Value: bookingModel.PaymentPaid, Table: bookingModel.TableName},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []bookingModel.Status{bookingModel.StatusConfirmed, bookingModel.StatusCompleted},
				Table:    bookingModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) afterConfirm(ctx context.Context, booking bookingModel.Booking, payload dto.PaymentResponse) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingService.CacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(walletService.CacheGetWallet, booking.HostID)); err != nil {
			log.Error().Err(err).Msg("failed to delete wallet from cache")
		}

		shared.InvalidateCaches(c, s.cache, bookingService.CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, bookingService.CacheCountBooking)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(walletService.CacheGetWalletTransactions, booking.HostID))

		if !s.cfg.Kafka.Enable {
			return
		}

		if err := s.kafka.SendMessages(c, TopicBookingPaid, kafka.Message{Key: booking.ID, Value: payload}); err != nil {
			log.Error().Err(err).Str("topic", TopicBookingPaid).Msg("failed to publish payment event")
		}
	}()
}
