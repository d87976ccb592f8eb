package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// CompanyConfig is the issuer identity printed on budgets that carry no
// company metadata of their own.
type CompanyConfig struct {
	Name string
	RIF  string
}

type PricingConfig struct {
	TaxRate      float64
	FallbackRate float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Company     CompanyConfig
	Pricing     PricingConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Company: CompanyConfig{
			Name: v.GetString("COMPANY_NAME"),
			RIF:  v.GetString("COMPANY_RIF"),
		},
		Pricing: PricingConfig{
			TaxRate:      v.GetFloat64("TAX_RATE"),
			FallbackRate: v.GetFloat64("EXCHANGE_RATE_FALLBACK"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Company.Name == "" {
		cfg.Company.Name = "EMPRESA VIFORD PRO C.A."
	}
	if cfg.Pricing.TaxRate == 0 {
		cfg.Pricing.TaxRate = 0.16
	}
	if cfg.Pricing.FallbackRate == 0 {
		cfg.Pricing.FallbackRate = 36.5
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.TaxRate >= 1 {
		return fmt.Errorf("TAX_RATE must be in [0, 1)")
	}
	if cfg.Pricing.FallbackRate <= 0 {
		return fmt.Errorf("EXCHANGE_RATE_FALLBACK must be positive")
	}
	return nil
}
