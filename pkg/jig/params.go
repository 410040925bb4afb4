package jig

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/matzehuels/bedjig/pkg/errors"
)

// Params are the inputs of the template generator. Lengths are millimetres.
type Params struct {
	RouterBitDiameter float64 `json:"routerBitDiameter" toml:"router_bit_diameter"`
	CopyRingDiameter  float64 `json:"copyRingDiameter" toml:"copy_ring_diameter"`
	MaterialThickness float64 `json:"materialThickness" toml:"material_thickness"`

	RunnerWidth float64 `json:"runnerWidth" toml:"runner_width"`
	RunnerCount int     `json:"runnerCount" toml:"runner_count"` // runners clamped together per pass

	TargetSlotWidth float64 `json:"targetSlotWidth" toml:"target_slot_width"`
	SlotCount       int     `json:"slotCount" toml:"slot_count"`
	SlotPitch       float64 `json:"slotPitch" toml:"slot_pitch"`

	Padding         float64 `json:"padding" toml:"padding"`
	SidePlateHeight float64 `json:"sidePlateHeight" toml:"side_plate_height"`
	CutoutDepth     float64 `json:"cutoutDepth" toml:"cutout_depth"`
}

// DefaultParams returns an 8 mm bit with a 17 mm copy ring on 5 mm sheet,
// cutting three 20 mm slots through a stack of three 40 mm runners.
func DefaultParams() Params {
	return Params{
		RouterBitDiameter: 8,
		CopyRingDiameter:  17,
		MaterialThickness: 5,
		RunnerWidth:       40,
		RunnerCount:       3,
		TargetSlotWidth:   20,
		SlotCount:         3,
		SlotPitch:         100,
		Padding:           20,
		SidePlateHeight:   60,
		CutoutDepth:       40,
	}
}

// Limits on the template size. Compute caps its slot and finger counts at
// these values and Validate rejects parameters that would exceed them.
const (
	MaxSlotCount = 1000
	MaxFingers   = 10000
)

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
)

// Validate reports parameters that would produce an unusable template.
// A copy ring smaller than the bit yields ErrCodeNegativeOffset; every other
// failure yields ErrCodeInvalidParams.
func (p Params) Validate() error {
	if offset := p.CopyRingDiameter - p.RouterBitDiameter; offset < 0 {
		return errors.New(errors.ErrCodeNegativeOffset,
			"copy ring diameter %.2f is smaller than router bit diameter %.2f (offset %.2f)",
			p.CopyRingDiameter, p.RouterBitDiameter, offset)
	}

	err := validation.ValidateStruct(&p,
		validation.Field(&p.RouterBitDiameter, finite, positive),
		validation.Field(&p.CopyRingDiameter, finite, positive),
		validation.Field(&p.MaterialThickness, finite, positive),
		validation.Field(&p.RunnerWidth, finite, positive),
		validation.Field(&p.RunnerCount, validation.Required, validation.Min(1)),
		validation.Field(&p.TargetSlotWidth, finite, positive),
		validation.Field(&p.SlotCount, validation.Required, validation.Min(1), validation.Max(MaxSlotCount)),
		validation.Field(&p.SlotPitch, finite, validation.Min(0.0)),
		validation.Field(&p.Padding, finite, validation.Min(0.0)),
		validation.Field(&p.SidePlateHeight, finite, positive),
		validation.Field(&p.CutoutDepth, finite, validation.Min(0.0)),
	)
	if err == nil {
		if w := topPlateWidth(p); w/FingerModule >= MaxFingers+1 {
			return errors.New(errors.ErrCodeInvalidParams,
				"top plate of %.0f mm needs more than %d fingers", w, MaxFingers)
		}
		return nil
	}
	if _, ok := err.(validation.Errors); ok {
		return errors.Wrap(errors.ErrCodeInvalidParams, err, "invalid template parameters")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "validate template parameters")
}
