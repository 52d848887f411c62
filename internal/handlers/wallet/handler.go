package wallet

import (
	"net/http"
	"nyumba/infras/otel"
	"nyumba/internal/domains/wallet/service"
	"nyumba/shared/constant"
	gDto "nyumba/shared/dto"
	"nyumba/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Wallet
	otel    otel.Otel
}

func New(service service.Wallet, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/wallets", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetWallet)
		routerGroup.Get("/{id}/transactions", handler.GetWalletTransactions)
	})
}

// GetWallet retrieves a host wallet balance.
// @Summary Get a host wallet
// @Description Retrieve the wallet balance for a host. Wallet owner or admin only.
// @Tags Wallet
// @Accept json
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {object} response.Data[dto.WalletResponse] "Wallet details"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wallets/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWallet")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	wallet, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wallet")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wallet retrieved successfully")

	response.WithJSON(w, http.StatusOK, wallet)
}

// GetWalletTransactions retrieves the ledger for a host wallet.
// @Summary Get wallet transactions
// @Description Retrieve the credit ledger for a host wallet. Wallet owner or admin only.
// @Tags Wallet
// @Accept json
// @Produce json
// @Param id path string true "Host ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetTransactionsResponse] "Wallet transactions"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wallets/{id}/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetWalletTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWalletTransactions")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	transactions, err := handler.service.GetTransactions(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wallet transactions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wallet transactions retrieved successfully")

	response.WithJSON(w, http.StatusOK, transactions)
}
