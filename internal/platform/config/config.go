package config

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/helvetibooks/fibu_backend/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RateLimit uses the limiter format, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// CORSAllowedOrigins is the comma-separated list of origins allowed by CORS.
	CORSAllowedOrigins []string

	// VatRateSchedule is the effective-dated statutory rate configuration.
	// Historical periods recompute with the rates in force back then.
	VatRateSchedule domain.VatRateSchedule
}

// vatRatePeriodJSON is the wire shape of one rate revision in VAT_RATES_JSON.
type vatRatePeriodJSON struct {
	EffectiveFrom string `json:"effectiveFrom"`
	Standard      string `json:"standard"`
	Reduced       string `json:"reduced"`
	Special       string `json:"special"`
}

// defaultVatRateSchedule covers the Swiss statutory rates: the pre-2024 tiers
// and the revision in force since 2024-01-01.
func defaultVatRateSchedule() domain.VatRateSchedule {
	return domain.VatRateSchedule{
		{
			EffectiveFrom: time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
			VatRates: domain.VatRates{
				Standard: decimal.RequireFromString("0.077"),
				Reduced:  decimal.RequireFromString("0.025"),
				Special:  decimal.RequireFromString("0.037"),
			},
		},
		{
			EffectiveFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			VatRates: domain.VatRates{
				Standard: decimal.RequireFromString("0.081"),
				Reduced:  decimal.RequireFromString("0.026"),
				Special:  decimal.RequireFromString("0.038"),
			},
		},
	}
}

// parseVatRateSchedule decodes the VAT_RATES_JSON override. The schedule must
// be ordered by effectiveFrom ascending.
func parseVatRateSchedule(raw string) (domain.VatRateSchedule, error) {
	var periods []vatRatePeriodJSON
	if err := json.Unmarshal([]byte(raw), &periods); err != nil {
		return nil, fmt.Errorf("invalid VAT_RATES_JSON: %w", err)
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("VAT_RATES_JSON must contain at least one rate period")
	}

	schedule := make(domain.VatRateSchedule, 0, len(periods))
	var prev time.Time
	for _, p := range periods {
		effectiveFrom, err := time.Parse("2006-01-02", p.EffectiveFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid effectiveFrom %q in VAT_RATES_JSON: %w", p.EffectiveFrom, err)
		}
		if !effectiveFrom.After(prev) && len(schedule) > 0 {
			return nil, fmt.Errorf("VAT_RATES_JSON periods must be ordered by effectiveFrom ascending")
		}
		prev = effectiveFrom

		standard, err := decimal.NewFromString(p.Standard)
		if err != nil {
			return nil, fmt.Errorf("invalid standard rate %q in VAT_RATES_JSON: %w", p.Standard, err)
		}
		reduced, err := decimal.NewFromString(p.Reduced)
		if err != nil {
			return nil, fmt.Errorf("invalid reduced rate %q in VAT_RATES_JSON: %w", p.Reduced, err)
		}
		special, err := decimal.NewFromString(p.Special)
		if err != nil {
			return nil, fmt.Errorf("invalid special rate %q in VAT_RATES_JSON: %w", p.Special, err)
		}

		schedule = append(schedule, domain.VatRatePeriod{
			EffectiveFrom: effectiveFrom,
			VatRates: domain.VatRates{
				Standard: standard,
				Reduced:  reduced,
				Special:  special,
			},
		})
	}
	return schedule, nil
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("VAT_RATES_JSON", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	if raw := viper.GetString("VAT_RATES_JSON"); raw != "" {
		schedule, err := parseVatRateSchedule(raw)
		if err != nil {
			return nil, err
		}
		cfg.VatRateSchedule = schedule
	} else {
		cfg.VatRateSchedule = defaultVatRateSchedule()
	}

	return cfg, nil
}
