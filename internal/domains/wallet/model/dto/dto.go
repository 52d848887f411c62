package dto

import (
	"nyumba/internal/domains/wallet/model"
	"nyumba/shared"
	gDto "nyumba/shared/dto"
)

type WalletResponse struct {
	HostID  string  `json:"host_id"`
	Balance float64 `json:"balance"`
	gDto.Metadata
}

func (r *WalletResponse) FromModel(model model.Wallet) {
	r.HostID = model.HostID
	r.Balance = shared.RoundMoney(model.Balance)
	r.Metadata.FromModel(model.Metadata)
}

type TransactionResponse struct {
	ID        string  `json:"id"`
	HostID    string  `json:"host_id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	gDto.Metadata
}

func (r *TransactionResponse) FromModel(model model.Transaction) {
	r.ID = model.ID
	r.HostID = model.HostID
	r.BookingID = model.BookingID
	r.Amount = shared.RoundMoney(model.Amount)
	r.Type = string(model.Type)
	r.Metadata.FromModel(model.Metadata)
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}
