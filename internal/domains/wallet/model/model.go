package model

import "nyumba/shared/model"

const (
	TableName  = "wallets"
	EntityName = "wallet"

	FieldHostID  = "host_id"
	FieldBalance = "balance"
)

const (
	TransactionTableName  = "wallet_transactions"
	TransactionEntityName = "wallet_transaction"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldType      = "type"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Wallet holds a host's accumulated earnings. One row per host, created
// lazily on the first credit.
type Wallet struct {
	HostID  string  `db:"host_id"`
	Balance float64 `db:"balance"`
	model.Metadata
}

// Transaction is one immutable ledger entry. The wallet balance is always
// the sum of its transactions.
type Transaction struct {
	ID        string          `db:"id"`
	HostID    string          `db:"host_id"`
	BookingID string          `db:"booking_id"`
	Amount    float64         `db:"amount"`
	Type      TransactionType `db:"type"`
	model.Metadata
}
