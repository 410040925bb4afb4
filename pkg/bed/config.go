package bed

import (
	"fmt"
	"strings"
)

// PricingUnit selects how material prices are applied.
type PricingUnit string

const (
	PricingPerMeter  PricingUnit = "per-meter"  // price × linear metres
	PricingPerVolume PricingUnit = "per-volume" // price × cubic metres
	PricingPerPiece  PricingUnit = "per-piece"  // price × piece count
)

// pricingAliases maps the short unit names used by older saved
// configurations onto the canonical units.
var pricingAliases = map[string]PricingUnit{
	"per-meter":  PricingPerMeter,
	"m":          PricingPerMeter,
	"per-volume": PricingPerVolume,
	"m3":         PricingPerVolume,
	"per-piece":  PricingPerPiece,
	"piece":      PricingPerPiece,
}

// ParsePricingUnit resolves a pricing unit name or alias.
func ParsePricingUnit(s string) (PricingUnit, error) {
	if u, ok := pricingAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return "", fmt.Errorf("unknown pricing unit %q (must be per-meter, per-volume or per-piece)", s)
}

// UnmarshalText accepts canonical names and aliases. Unknown names are kept
// verbatim so that validation can report them.
func (u *PricingUnit) UnmarshalText(text []byte) error {
	if parsed, err := ParsePricingUnit(string(text)); err == nil {
		*u = parsed
		return nil
	}
	*u = PricingUnit(text)
	return nil
}

// SpanModel selects which span enters the deflection formula.
type SpanModel string

const (
	// SpanCenter uses the runner centre-to-centre spacing.
	SpanCenter SpanModel = "center"
	// SpanClear uses the clear distance between adjacent runners.
	SpanClear SpanModel = "clear"
)

// Config describes a bed frame. It is owned by the caller and passed by value.
type Config struct {
	Name string `json:"name" toml:"name"`

	BedWidth  float64 `json:"bedWidth" toml:"bed_width"`   // mm
	BedLength float64 `json:"bedLength" toml:"bed_length"` // mm
	BedHeight float64 `json:"bedHeight" toml:"bed_height"` // mm, top of slats; informational

	RunnerWidth  float64 `json:"runnerWidth" toml:"runner_width"`   // mm
	RunnerHeight float64 `json:"runnerHeight" toml:"runner_height"` // mm
	RunnerCount  int     `json:"runnerCount" toml:"runner_count"`
	RunnerMargin float64 `json:"runnerMargin" toml:"runner_margin"` // mm from bed edge to outer runner

	SlatWidth  float64 `json:"slatWidth" toml:"slat_width"`   // mm
	SlatHeight float64 `json:"slatHeight" toml:"slat_height"` // mm
	SlatGap    float64 `json:"slatGap" toml:"slat_gap"`       // mm between slats

	MaterialID         string      `json:"materialId" toml:"material_id"`
	PricingUnit        PricingUnit `json:"pricingUnit" toml:"pricing_unit"`
	PricePerUnitRunner float64     `json:"pricePerUnitRunner" toml:"price_per_unit_runner"`
	PricePerUnitSlat   float64     `json:"pricePerUnitSlat" toml:"price_per_unit_slat"`

	RunnerMaterialLink string `json:"runnerMaterialLink,omitempty" toml:"runner_material_link,omitempty"`
	SlatMaterialLink   string `json:"slatMaterialLink,omitempty" toml:"slat_material_link,omitempty"`

	SpanModel SpanModel `json:"spanModel,omitempty" toml:"span_model,omitempty"`
}

// DefaultConfig returns a 1400×2000 mm spruce frame with two runners.
func DefaultConfig() Config {
	return Config{
		Name:               "My Custom Bed",
		BedWidth:           1400,
		BedLength:          2000,
		BedHeight:          300,
		RunnerWidth:        100,
		RunnerHeight:       160,
		RunnerCount:        2,
		RunnerMargin:       0,
		SlatWidth:          60,
		SlatHeight:         80,
		SlatGap:            40,
		MaterialID:         DefaultMaterialID,
		PricingUnit:        PricingPerMeter,
		PricePerUnitRunner: 12.00,
		PricePerUnitSlat:   5.00,
		SpanModel:          SpanCenter,
	}
}
