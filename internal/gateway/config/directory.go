package config

import "time"

// DirectoryConfig описывает внешние справочники стран и котировок.
type DirectoryConfig struct {
	CountriesURL string        `yaml:"countries_url" env:"GATEWAY_DIRECTORY_COUNTRIES_URL" env-default:"https://restcountries.com/v3.1/all"`
	MarketURL    string        `yaml:"market_url" env:"GATEWAY_DIRECTORY_MARKET_URL" env-default:"https://api.coingecko.com/api/v3/coins/markets"`
	Timeout      time.Duration `yaml:"timeout" env:"GATEWAY_DIRECTORY_TIMEOUT" env-default:"5s"`
	CountriesTTL time.Duration `yaml:"countries_ttl" env:"GATEWAY_DIRECTORY_COUNTRIES_TTL" env-default:"24h"`
	MarketTTL    time.Duration `yaml:"market_ttl" env:"GATEWAY_DIRECTORY_MARKET_TTL" env-default:"60s"`
}
