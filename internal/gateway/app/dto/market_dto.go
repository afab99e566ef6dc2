package dto

import "time"

// Country - запись справочника стран для формы регистрации.
type Country struct {
	Name        string `json:"name" validate:"required"`
	Currency    string `json:"currency" validate:"required,len=3,alpha"`
	DialingCode string `json:"dialingCode" validate:"required,startswith=+"`
	FlagURL     string `json:"flagUrl" validate:"omitempty,url"`
}

// Coin - котировка монеты.
type Coin struct {
	ID             string  `json:"id" validate:"required"`
	Symbol         string  `json:"symbol" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Image          string  `json:"image"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_percentage_24h"`
	MarketCap      float64 `json:"market_cap"`
}

// MarketSnapshot - ответ GET /api/market.
type MarketSnapshot struct {
	Coins     []Coin    `json:"coins"`
	Gainers   []Coin    `json:"gainers"`
	Losers    []Coin    `json:"losers"`
	UpdatedAt time.Time `json:"updatedAt"`
}
