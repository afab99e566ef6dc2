package services

import (
	"context"

	"cryptovest/internal/gateway/app/dto"
)

// MarketService отдает справочник стран и витрину котировок.
type MarketService interface {
	Countries(ctx context.Context) ([]dto.Country, error)

	Market(ctx context.Context) (*dto.MarketSnapshot, error)
}
