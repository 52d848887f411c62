package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"nyumba/infras/otel"
	"nyumba/infras/postgres"
	"nyumba/internal/domains/wallet/model"
	"nyumba/shared/constant"
	gDto "nyumba/shared/dto"
	"nyumba/shared/logger"
	gRepo "nyumba/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Wallet interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Wallet, error)
	CreditTx(ctx context.Context, sqltx *sqlx.Tx, wallet model.Wallet) error
	InsertTransactionTx(ctx context.Context, sqltx *sqlx.Tx, trx model.Transaction) error
	GetTransactions(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	CountTransactions(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Wallet]
	transactions gRepo.Repository[model.Transaction]
	db           *postgres.Connection
	otel         otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Wallet {
	return &repositoryImpl{
		Repository:   gRepo.NewRepository[model.Wallet](model.EntityName, model.TableName, model.FieldHostID, db, otel),
		transactions: gRepo.NewRepository[model.Transaction](model.TransactionEntityName, model.TransactionTableName, model.FieldID, db, otel),
		db:           db,
		otel:         otel,
	}
}

// CreditTx adds the wallet balance to the host's row, creating the row on
// the first credit. Runs inside the caller's transaction so the credit and
// its ledger entry commit together.
func (repo *repositoryImpl) CreditTx(ctx context.Context, sqltx *sqlx.Tx, wallet model.Wallet) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.CreditTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s) VALUES (:host_id, :balance, :created_by, :modified_by) "+
			"ON CONFLICT (%s) DO UPDATE SET %s = %s.%s + EXCLUDED.%s, %s = NOW(), %s = EXCLUDED.%s",
		model.TableName, model.FieldHostID, model.FieldBalance, constant.FieldCreatedBy, constant.FieldModifiedBy,
		model.FieldHostID, model.FieldBalance, model.TableName, model.FieldBalance, model.FieldBalance,
		constant.FieldModifiedAt, constant.FieldModifiedBy, constant.FieldModifiedBy,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := sqltx.NamedExecContext(ctx, query, wallet)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to credit wallet (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) InsertTransactionTx(ctx context.Context, sqltx *sqlx.Tx, trx model.Transaction) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertTransactionTx", constant.OtelRepositoryScopeName, model.TransactionEntityName))
	defer scope.End()

	return repo.transactions.InsertTx(ctx, sqltx, trx) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetTransactions(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetTransactions", constant.OtelRepositoryScopeName, model.TransactionEntityName))
	defer scope.End()

	return repo.transactions.GetAll(ctx, params, filter, columns...) //nolint:wrapcheck
}

func (repo *repositoryImpl) CountTransactions(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.CountTransactions", constant.OtelRepositoryScopeName, model.TransactionEntityName))
	defer scope.End()

	return repo.transactions.Count(ctx, filter) //nolint:wrapcheck
}
