package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"cryptovest/internal/gateway/app/dto"
	"cryptovest/internal/gateway/ports/cache"
	"cryptovest/internal/gateway/ports/directory"
	"cryptovest/internal/gateway/ports/services"
	"cryptovest/internal/gateway/resilience"
	"cryptovest/pkg/logger"
)

const (
	CountriesCacheKey = "directory:countries"
	MarketCacheKey    = "directory:market"

	// MoversLimit - размер списков лидеров роста и падения.
	MoversLimit = 3

	LogServiceCountries = "market service: countries"
	LogServiceMarket    = "market service: market snapshot"

	ErrorCountriesFailed = "failed to fetch countries"
	ErrorMarketFailed    = "failed to fetch market data"
)

// MarketServiceImpl кэширует ответы внешних справочников и вызывает их через resilience.
type MarketServiceImpl struct {
	countries    directory.CountryDirectory
	market       directory.MarketData
	cache        cache.Cache
	countriesTTL time.Duration
	marketTTL    time.Duration

	countriesRes *resilience.ServiceResilience
	marketRes    *resilience.ServiceResilience
	now          func() time.Time
}

// NewMarketService создает сервис справочников.
func NewMarketService(
	countries directory.CountryDirectory,
	market directory.MarketData,
	cache cache.Cache,
	countriesTTL, marketTTL time.Duration,
) services.MarketService {
	return &MarketServiceImpl{
		countries:    countries,
		market:       market,
		cache:        cache,
		countriesTTL: countriesTTL,
		marketTTL:    marketTTL,
		countriesRes: resilience.NewServiceResilience("countries-directory"),
		marketRes:    resilience.NewServiceResilience("market-data"),
		now:          time.Now,
	}
}

// Countries возвращает справочник стран.
func (s *MarketServiceImpl) Countries(ctx context.Context) ([]dto.Country, error) {
	logger.Log(ctx).Info(ctx, LogServiceCountries)

	countries, err := cached(ctx, s.cache, CountriesCacheKey, s.countriesTTL, func(ctx context.Context) ([]dto.Country, error) {
		return resilience.Do(ctx, s.countriesRes, "Countries", s.countries.Countries)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCountriesFailed, err)
	}
	return countries, nil
}

// Market возвращает котировки и лидеров роста и падения за 24 часа.
func (s *MarketServiceImpl) Market(ctx context.Context) (*dto.MarketSnapshot, error) {
	logger.Log(ctx).Info(ctx, LogServiceMarket)

	snapshot, err := cached(ctx, s.cache, MarketCacheKey, s.marketTTL, func(ctx context.Context) (*dto.MarketSnapshot, error) {
		coins, err := resilience.Do(ctx, s.marketRes, "Coins", s.market.Coins)
		if err != nil {
			return nil, err
		}
		return BuildSnapshot(coins, s.now().UTC()), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorMarketFailed, err)
	}
	return snapshot, nil
}

// BuildSnapshot вычисляет лидеров роста и падения по изменению цены за 24 часа.
// Монеты с одинаковым изменением сохраняют исходный порядок в обоих списках.
func BuildSnapshot(coins []dto.Coin, now time.Time) *dto.MarketSnapshot {
	limit := min(MoversLimit, len(coins))

	gainers := sortedByChange(coins, func(a, b float64) bool { return a > b })[:limit]
	losers := sortedByChange(coins, func(a, b float64) bool { return a < b })[:limit]

	return &dto.MarketSnapshot{
		Coins:     coins,
		Gainers:   gainers,
		Losers:    losers,
		UpdatedAt: now,
	}
}

func sortedByChange(coins []dto.Coin, less func(a, b float64) bool) []dto.Coin {
	out := make([]dto.Coin, len(coins))
	copy(out, coins)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i].PriceChange24h, out[j].PriceChange24h)
	})
	return out
}

// cached реализует cache-aside поверх строкового кэша. Ошибки кэша только логируются.
func cached[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	log := logger.Log(ctx).With(zap.String("key", key))

	if raw, err := c.Get(ctx, key); err == nil && raw != "" {
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			log.Debug(ctx, "cache hit")
			return value, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.Set(ctx, key, string(data), ttl); err != nil {
			log.Warn(ctx, "failed to store value in cache", zap.Error(err))
		}
	}
	return value, nil
}
