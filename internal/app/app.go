// Package app wires configuration, clients and services into a runnable application
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/saralwebs/kundli/internal/clients/nominatim"
	"github.com/saralwebs/kundli/internal/clients/prokerala"
	"github.com/saralwebs/kundli/internal/common"
	"github.com/saralwebs/kundli/internal/interfaces"
	"github.com/saralwebs/kundli/internal/services/chart"
	"github.com/saralwebs/kundli/internal/services/geocode"
)

// App holds all initialized clients and services.
// It is the shared core used by cmd/kundli-server and the server tests.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Astrology      interfaces.AstrologyClient
	Geocoder       interfaces.GeocodeClient
	ChartService   interfaces.ChartService
	GeocodeService interfaces.GeocodeService
	StartupTime    time.Time
}

// NewApp initializes configuration, logging, API clients and services.
// configPath may be empty, in which case KUNDLI_CONFIG and defaults apply.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("KUNDLI_CONFIG")
	}
	if configPath == "" {
		configPath = "config/kundli.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	pk := config.Clients.Prokerala
	if pk.ClientID == "" || pk.ClientSecret == "" {
		logger.Warn().Msg("Prokerala credentials not configured - token and chart endpoints will fail")
	}

	astrology := prokerala.NewClient(pk.ClientID, pk.ClientSecret,
		prokerala.WithBaseURL(pk.BaseURL),
		prokerala.WithTokenURL(pk.TokenURL),
		prokerala.WithLogger(logger),
		prokerala.WithRateLimit(pk.RateLimit),
		prokerala.WithTimeout(pk.GetTimeout()),
	)

	nm := config.Clients.Nominatim
	geocoder := nominatim.NewClient(
		nominatim.WithBaseURL(nm.BaseURL),
		nominatim.WithUserAgent(nm.UserAgent),
		nominatim.WithLogger(logger),
		nominatim.WithRateLimit(nm.RateLimit),
		nominatim.WithTimeout(nm.GetTimeout()),
	)

	a := &App{
		Config:         config,
		Logger:         logger,
		Astrology:      astrology,
		Geocoder:       geocoder,
		ChartService:   chart.NewService(astrology, logger),
		GeocodeService: geocode.NewService(geocoder, logger),
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
