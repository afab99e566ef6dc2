// Package directory определяет внешние справочники, которые использует шлюз.
package directory

import (
	"context"

	"cryptovest/internal/gateway/app/dto"
)

// CountryDirectory возвращает список стран с валютой и телефонным кодом.
type CountryDirectory interface {
	Countries(ctx context.Context) ([]dto.Country, error)
}

// MarketData возвращает котировки отслеживаемых монет.
type MarketData interface {
	Coins(ctx context.Context) ([]dto.Coin, error)
}
