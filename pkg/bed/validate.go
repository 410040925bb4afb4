package bed

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/matzehuels/bedjig/pkg/errors"
)

// MaxPartCount bounds the runners and slats of one frame.
const MaxPartCount = 1000

var (
	finite = validation.By(func(value interface{}) error {
		if v, ok := value.(float64); ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return validation.NewError("validation_finite", "must be a finite number")
		}
		return nil
	})

	positive = validation.By(func(value interface{}) error {
		if v, ok := value.(float64); ok && !(v > 0) {
			return validation.NewError("validation_positive", "must be greater than 0")
		}
		return nil
	})

	optionalURL = validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if err := errors.ValidateURL(s); err != nil {
			return validation.NewError("validation_url", errors.UserMessage(err))
		}
		return nil
	})
)

// Validate checks that c describes a buildable frame. Compute itself accepts
// any input; Validate is for callers that need to reject bad input up front.
// Unknown material IDs are not an error (they fall back to the default).
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.BedWidth, finite, validation.Min(0.0)),
		validation.Field(&c.BedLength, finite, validation.Min(0.0)),
		validation.Field(&c.BedHeight, finite, validation.Min(0.0)),
		validation.Field(&c.RunnerWidth, finite, validation.Min(0.0)),
		validation.Field(&c.RunnerHeight, finite, validation.Min(0.0)),
		validation.Field(&c.RunnerCount, validation.Required, validation.Min(1), validation.Max(MaxPartCount)),
		validation.Field(&c.RunnerMargin, finite, validation.Min(0.0)),
		validation.Field(&c.SlatWidth, finite, positive),
		validation.Field(&c.SlatHeight, finite, positive),
		validation.Field(&c.SlatGap, finite, validation.Min(0.0)),
		validation.Field(&c.PricingUnit, validation.Required,
			validation.In(PricingPerMeter, PricingPerVolume, PricingPerPiece)),
		validation.Field(&c.PricePerUnitRunner, finite, validation.Min(0.0)),
		validation.Field(&c.PricePerUnitSlat, finite, validation.Min(0.0)),
		validation.Field(&c.RunnerMaterialLink, optionalURL),
		validation.Field(&c.SlatMaterialLink, optionalURL),
		validation.Field(&c.SpanModel, validation.In(SpanCenter, SpanClear)),
	)
	if err != nil {
		if _, ok := err.(validation.Errors); ok {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid bed configuration %q", c.Name)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "validate bed configuration")
	}

	if c.RunnerWidth+2*c.RunnerMargin > c.BedWidth {
		return errors.New(errors.ErrCodeInvalidConfig,
			"runners do not fit: runner width %.1f + 2×margin %.1f exceeds bed width %.1f",
			c.RunnerWidth, c.RunnerMargin, c.BedWidth)
	}
	if fit := slatFit(c); fit >= MaxPartCount+1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"too many slats: %.0f fit along %.1f mm (limit %d)", math.Floor(fit), c.BedLength, MaxPartCount)
	}
	return nil
}

// Check reports the first non-finite metric, if any. Compute propagates
// NaN/Inf for degenerate input, so callers check before display.
func (m Metrics) Check() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"total price", m.TotalPrice},
		{"total volume", m.TotalVolumeM3},
		{"runner spacing", m.RunnerSpacingMm},
		{"span", m.SpanMm},
		{"deflection", m.DeflectionMm},
		{"deflection limit", m.DeflectionLimitMm},
	}
	for _, f := range fields {
		if err := errors.ValidateFinite(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}
