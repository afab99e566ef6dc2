package directory

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/app/dto"
	ports "cryptovest/internal/gateway/ports/directory"
	"cryptovest/pkg/logger"
)

// TrackedCoins - монеты, отображаемые на витрине.
var TrackedCoins = []string{
	"bitcoin",
	"ethereum",
	"tether",
	"binancecoin",
	"ripple",
	"cardano",
	"solana",
}

const msgCoinDropped = "coin record rejected"

// MarketClient читает котировки CoinGecko.
type MarketClient struct {
	url   string
	coins []string
	cc    *client.Client
}

// NewMarketClient создает клиента котировок для TrackedCoins.
func NewMarketClient(url string, timeout time.Duration) ports.MarketData {
	return &MarketClient{url: url, coins: TrackedCoins, cc: newClient(timeout)}
}

// Coins возвращает котировки в долларах, упорядоченные по капитализации.
func (m *MarketClient) Coins(ctx context.Context) ([]dto.Coin, error) {
	log := logger.Log(ctx).With(zap.String("method", "Coins"))

	params := map[string]string{
		"vs_currency":             "usd",
		"ids":                     strings.Join(m.coins, ","),
		"order":                   "market_cap_desc",
		"per_page":                strconv.Itoa(len(m.coins)),
		"page":                    "1",
		"price_change_percentage": "24h",
	}

	var raw []dto.Coin
	if err := getJSON(ctx, m.cc, m.url, params, &raw); err != nil {
		return nil, err
	}

	coins := raw[:0]
	for _, coin := range raw {
		if err := validate.Struct(coin); err != nil {
			log.Debug(ctx, msgCoinDropped, zap.String("coin", coin.ID), zap.Error(err))
			continue
		}
		coins = append(coins, coin)
	}
	return coins, nil
}
