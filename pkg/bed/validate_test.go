package bed

import (
	"math"
	"testing"

	"github.com/matzehuels/bedjig/pkg/errors"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"single runner", func(c *Config) { c.RunnerCount = 1 }, false},
		{"unknown material falls back", func(c *Config) { c.MaterialID = "balsa" }, false},
		{"links", func(c *Config) {
			c.RunnerMaterialLink = "https://example.com/kvh"
			c.SlatMaterialLink = "http://example.com/slat"
		}, false},
		{"clear span", func(c *Config) { c.SpanModel = SpanClear }, false},
		{"empty span model", func(c *Config) { c.SpanModel = "" }, false},
		{"slat count at limit", func(c *Config) { c.BedLength = 1999; c.SlatWidth = 1; c.SlatGap = 1 }, false},

		{"no runners", func(c *Config) { c.RunnerCount = 0 }, true},
		{"negative runners", func(c *Config) { c.RunnerCount = -2 }, true},
		{"negative width", func(c *Config) { c.BedWidth = -1 }, true},
		{"zero slat width", func(c *Config) { c.SlatWidth = 0 }, true},
		{"zero slat height", func(c *Config) { c.SlatHeight = 0 }, true},
		{"negative gap", func(c *Config) { c.SlatGap = -5 }, true},
		{"negative price", func(c *Config) { c.PricePerUnitSlat = -1 }, true},
		{"nan length", func(c *Config) { c.BedLength = math.NaN() }, true},
		{"inf width", func(c *Config) { c.BedWidth = math.Inf(1) }, true},
		{"unknown pricing", func(c *Config) { c.PricingUnit = "per-furlong" }, true},
		{"empty pricing", func(c *Config) { c.PricingUnit = "" }, true},
		{"bad span model", func(c *Config) { c.SpanModel = "diagonal" }, true},
		{"bad link", func(c *Config) { c.RunnerMaterialLink = "javascript:alert(1)" }, true},
		{"hair-thin slats", func(c *Config) { c.SlatWidth = 1e-9; c.SlatGap = 0 }, true},
		{"slat count over limit", func(c *Config) { c.BedLength = 2001; c.SlatWidth = 1; c.SlatGap = 1 }, true},
		{"too many runners", func(c *Config) { c.RunnerCount = MaxPartCount + 1 }, true},
		{"runners wider than bed", func(c *Config) { c.BedWidth = 150; c.RunnerMargin = 30 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestMetricsCheck(t *testing.T) {
	if err := Compute(DefaultConfig()).Metrics.Check(); err != nil {
		t.Errorf("default metrics should be finite: %v", err)
	}

	m := Compute(DefaultConfig()).Metrics
	m.TotalPrice = math.NaN()
	err := m.Check()
	if !errors.Is(err, errors.ErrCodeNonFinite) {
		t.Fatalf("Check() = %v, want NON_FINITE_METRIC", err)
	}
	if got := errors.UserMessage(err); got != "total price is not a number" {
		t.Errorf("UserMessage = %q", got)
	}
}
