package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=app dbname=budgets")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Environment)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != 7090 {
		t.Errorf("http = %s:%d, want 0.0.0.0:7090", cfg.HTTP.Host, cfg.HTTP.Port)
	}
	if cfg.Company.Name != "EMPRESA VIFORD PRO C.A." {
		t.Errorf("company name = %q", cfg.Company.Name)
	}
	if cfg.Pricing.TaxRate != 0.16 {
		t.Errorf("tax rate = %v, want 0.16", cfg.Pricing.TaxRate)
	}
	if cfg.Pricing.FallbackRate != 36.5 {
		t.Errorf("fallback rate = %v, want 36.5", cfg.Pricing.FallbackRate)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "host=db user=app dbname=budgets")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("TAX_RATE", "0.12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("environment = %q, want production", cfg.Environment)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.HTTP.Port)
	}
	if cfg.Pricing.TaxRate != 0.12 {
		t.Errorf("tax rate = %v, want 0.12", cfg.Pricing.TaxRate)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing dsn",
			env:  map[string]string{"JWT_ACCESS_SECRET": "s"},
		},
		{
			name: "missing secret",
			env:  map[string]string{"DB_DSN": "host=db"},
		},
		{
			name: "tax rate out of range",
			env: map[string]string{
				"DB_DSN":            "host=db",
				"JWT_ACCESS_SECRET": "s",
				"TAX_RATE":          "1.5",
			},
		},
		{
			name: "negative fallback rate",
			env: map[string]string{
				"DB_DSN":                 "host=db",
				"JWT_ACCESS_SECRET":      "s",
				"EXCHANGE_RATE_FALLBACK": "-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_DSN", "")
			t.Setenv("JWT_ACCESS_SECRET", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
