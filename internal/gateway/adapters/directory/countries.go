package directory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/app/dto"
	ports "cryptovest/internal/gateway/ports/directory"
	"cryptovest/pkg/logger"
)

const (
	countriesFields = "name,currencies,flags,idd"

	msgCountriesFetched = "countries fetched"
	msgCountryDropped   = "country record rejected"
)

type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
	IDD struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
}

// CountriesClient читает справочник restcountries.
type CountriesClient struct {
	url string
	cc  *client.Client
}

// NewCountriesClient создает клиента справочника стран.
func NewCountriesClient(url string, timeout time.Duration) ports.CountryDirectory {
	return &CountriesClient{url: url, cc: newClient(timeout)}
}

// Countries возвращает проверенные записи, отсортированные по названию.
func (c *CountriesClient) Countries(ctx context.Context) ([]dto.Country, error) {
	log := logger.Log(ctx).With(zap.String("method", "Countries"))

	var raw []restCountry
	if err := getJSON(ctx, c.cc, c.url, map[string]string{"fields": countriesFields}, &raw); err != nil {
		return nil, err
	}

	countries := make([]dto.Country, 0, len(raw))
	for _, rc := range raw {
		country := toCountry(rc)
		if err := validate.Struct(country); err != nil {
			log.Debug(ctx, msgCountryDropped, zap.String("country", rc.Name.Common), zap.Error(err))
			continue
		}
		countries = append(countries, country)
	}

	sort.Slice(countries, func(i, j int) bool { return countries[i].Name < countries[j].Name })

	log.Debug(ctx, msgCountriesFetched, zap.Int("received", len(raw)), zap.Int("kept", len(countries)))
	return countries, nil
}

func toCountry(rc restCountry) dto.Country {
	codes := make([]string, 0, len(rc.Currencies))
	for code := range rc.Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var currency string
	if len(codes) > 0 {
		currency = codes[0]
	}

	dialing := rc.IDD.Root
	if len(rc.IDD.Suffixes) == 1 {
		dialing += rc.IDD.Suffixes[0]
	}

	flag := rc.Flags.SVG
	if flag == "" {
		flag = rc.Flags.PNG
	}

	return dto.Country{
		Name:        strings.TrimSpace(rc.Name.Common),
		Currency:    currency,
		DialingCode: dialing,
		FlagURL:     flag,
	}
}
