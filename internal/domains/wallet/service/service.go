package service

import (
	"context"
	"fmt"
	"nyumba/config"
	"nyumba/infras/otel"
	"nyumba/internal/domains/wallet/model"
	"nyumba/internal/domains/wallet/model/dto"
	"nyumba/internal/domains/wallet/repository"
	"nyumba/shared"
	"nyumba/shared/cache"
	"nyumba/shared/constant"
	gDto "nyumba/shared/dto"
	"nyumba/shared/failure"

	"github.com/rs/zerolog/log"
)

// Cache key prefixes are exported so the payment flow can invalidate wallet
// reads after a credit.
const (
	CacheGetWallet             = "wallet:get"
	CacheGetWalletTransactions = "wallet:transactions"
)

type Wallet interface {
	Get(ctx context.Context, hostID string) (dto.WalletResponse, error)
	GetTransactions(ctx context.Context, hostID string, req gDto.QueryParams) (dto.GetTransactionsResponse, error)
}

type serviceImpl struct {
	repo  repository.Wallet
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Wallet, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Wallet {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, hostID string) (res dto.WalletResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, hostID); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(CacheGetWallet, hostID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for wallet")

		return res, nil
	}

	wallet, err := s.repo.Get(ctx, shared.FilterByID(hostID, model.FieldHostID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get wallet")

		return res, fmt.Errorf("failed to get wallet: %w", err)
	}

	// A host with no credits yet still has a wallet, balance zero.
	if wallet.HostID == constant.Empty {
		wallet.HostID = hostID
	}

	res.FromModel(wallet)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save wallet to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetTransactions(ctx context.Context, hostID string, req gDto.QueryParams) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTransactions")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, hostID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(hostID, model.FieldHostID, model.TransactionTableName)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(CacheGetWalletTransactions, hostID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for wallet transactions")

		return res, nil
	}

	total, err := s.repo.CountTransactions(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count wallet transactions")

		return res, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	models, err := s.repo.GetTransactions(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get wallet transactions")

		return res, fmt.Errorf("failed to get wallet transactions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save wallet transactions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) authorize(ctx context.Context, hostID string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if user == constant.Empty {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if user != hostID && role != constant.RoleAdmin {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	return nil
}
