package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nyumba/config"
	"nyumba/infras/otel/mocks"
	"nyumba/infras/postgres"
	bookingMocks "nyumba/internal/domains/booking/mocks"
	bookingModel "nyumba/internal/domains/booking/model"
	paymentMocks "nyumba/internal/domains/payment/mocks"
	"nyumba/internal/domains/payment/model"
	"nyumba/internal/domains/payment/model/dto"
	"nyumba/internal/domains/payment/service"
	walletMocks "nyumba/internal/domains/wallet/mocks"
	walletModel "nyumba/internal/domains/wallet/model"
	cacheMocks "nyumba/shared/cache/mocks"
)

type paymentFixture struct {
	svc      service.Payment
	dbMock   sqlmock.Sqlmock
	payments *paymentMocks.MockPayment
	bookings *bookingMocks.MockBooking
	wallets  *walletMocks.MockWallet
	cache    *cacheMocks.MockRedisCache
}

func newPaymentService(t *testing.T) paymentFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	rawDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })

	db := sqlx.NewDb(rawDB, "sqlmock")
	conn := &postgres.Connection{Read: db, Write: db}

	mockPayments := paymentMocks.NewMockPayment(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockWallets := walletMocks.NewMockWallet(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(conn, mockPayments, mockBookings, mockWallets, cfg, mockCache, nil, mockOtel)

	return paymentFixture{
		svc:      svc,
		dbMock:   dbMock,
		payments: mockPayments,
		bookings: mockBookings,
		wallets:  mockWallets,
		cache:    mockCache,
	}
}

func confirmedBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:               "booking-1",
		HostID:           "host-1",
		GuestID:          "guest-1",
		TotalPrice:       1000,
		CommissionAmount: 150,
		Status:           bookingModel.StatusConfirmed,
		PaymentStatus:    bookingModel.PaymentPending,
	}
}

func TestPaymentService_Confirm(t *testing.T) {
	req := dto.ConfirmPaymentRequest{
		BookingID: "booking-1",
		Provider:  "mobile_money",
	}

	t.Run("successful settlement credits the host once", func(t *testing.T) {
		f := newPaymentService(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmedBooking(), nil)

		f.dbMock.ExpectBegin()

		f.bookings.EXPECT().
			UpdateWhereTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(1), nil)

		f.wallets.EXPECT().
			CreditTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, wallet walletModel.Wallet) error {
				assert.Equal(t, "host-1", wallet.HostID)
				assert.Equal(t, float64(850), wallet.Balance)

				return nil
			})

		f.wallets.EXPECT().
			InsertTransactionTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, trx walletModel.Transaction) error {
				assert.Equal(t, "booking-1", trx.BookingID)
				assert.Equal(t, float64(850), trx.Amount)
				assert.Equal(t, walletModel.TransactionCredit, trx.Type)

				return nil
			})

		f.payments.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, payment model.Payment) error {
				assert.Equal(t, "booking-1", payment.BookingID)
				assert.Equal(t, float64(1000), payment.Amount)
				assert.Equal(t, float64(150), payment.CommissionAmount)
				assert.Equal(t, float64(850), payment.HostEarnings)

				return nil
			})

		f.dbMock.ExpectCommit()

		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.Confirm(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.BookingID)
		assert.Equal(t, float64(850), res.HostEarnings)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("replay returns the existing settlement without crediting", func(t *testing.T) {
		f := newPaymentService(t)

		paid := confirmedBooking()
		paid.PaymentStatus = bookingModel.PaymentPaid

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(paid, nil)

		f.payments.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{
				ID:           "payment-1",
				BookingID:    "booking-1",
				HostID:       "host-1",
				Amount:       1000,
				HostEarnings: 850,
				Provider:     "mobile_money",
			}, nil)

		res, err := f.svc.Confirm(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "payment-1", res.ID)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("pending booking is not payable", func(t *testing.T) {
		f := newPaymentService(t)

		pending := confirmedBooking()
		pending.Status = bookingModel.StatusPending

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		_, err := f.svc.Confirm(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("cancelled booking is not payable", func(t *testing.T) {
		f := newPaymentService(t)

		cancelled := confirmedBooking()
		cancelled.Status = bookingModel.StatusCancelled

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		_, err := f.svc.Confirm(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newPaymentService(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{}, nil)

		_, err := f.svc.Confirm(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("race lost to a concurrent settlement replays it", func(t *testing.T) {
		f := newPaymentService(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmedBooking(), nil)

		f.dbMock.ExpectBegin()

		f.bookings.EXPECT().
			UpdateWhereTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), nil)

		f.dbMock.ExpectRollback()

		paid := confirmedBooking()
		paid.PaymentStatus = bookingModel.PaymentPaid

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(paid, nil)

		f.payments.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: "payment-1", BookingID: "booking-1"}, nil)

		res, err := f.svc.Confirm(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "payment-1", res.ID)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("race lost to a lifecycle change conflicts", func(t *testing.T) {
		f := newPaymentService(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmedBooking(), nil)

		f.dbMock.ExpectBegin()

		f.bookings.EXPECT().
			UpdateWhereTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), nil)

		f.dbMock.ExpectRollback()

		cancelled := confirmedBooking()
		cancelled.Status = bookingModel.StatusCancelled

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		_, err := f.svc.Confirm(context.Background(), req)

		assert.Error(t, err)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("credit failure rolls the settlement back", func(t *testing.T) {
		f := newPaymentService(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmedBooking(), nil)

		f.dbMock.ExpectBegin()

		f.bookings.EXPECT().
			UpdateWhereTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(1), nil)

		f.wallets.EXPECT().
			CreditTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("wallet error"))

		f.dbMock.ExpectRollback()

		_, err := f.svc.Confirm(context.Background(), req)

		assert.Error(t, err)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})
}

func TestPaymentService_Get(t *testing.T) {
	t.Run("returns the settlement for a booking", func(t *testing.T) {
		f := newPaymentService(t)

		f.payments.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: "payment-1", BookingID: "booking-1"}, nil)

		res, err := f.svc.Get(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "payment-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newPaymentService(t)

		f.payments.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{}, nil)

		_, err := f.svc.Get(context.Background(), "booking-1")

		assert.Error(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newPaymentService(t)

		f.payments.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{}, errors.New("database error"))

		_, err := f.svc.Get(context.Background(), "booking-1")

		assert.Error(t, err)
	})
}
