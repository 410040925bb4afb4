// Package bed computes the parts list, price and sturdiness of a slatted bed
// frame.
//
// # Overview
//
// A bed frame is a set of runners (long beams along the bed length) carrying
// slats (short cross beams along the bed width). The two are joined with
// symmetric half-lap notches: every runner is notched once per slat and every
// slat once per runner, each notch cut to half the slat height.
//
// [Compute] is the single entry point. It takes a flat [Config] by value and
// returns a [Layout] holding every [Part] with its origin and notch cut list,
// plus aggregate [Metrics]. It holds no state and never fails:
//
//	layout := bed.Compute(bed.DefaultConfig())
//	fmt.Println(layout.Metrics.SlatCount, layout.Metrics.SturdinessScore)
//
// # Coordinate System
//
// Right-handed, millimetres: x runs along the bed width, z along the bed
// length, y is vertical. Runners sit at y = 0; slats sit at
// y = runnerHeight − slatHeight so that the two overlap by the half-lap depth.
//
// # Sturdiness
//
// A slat is modelled as a simply supported beam under a 2000 N point load at
// midspan, shared between the slats that fall inside a 300 mm contact patch.
// Midspan deflection is δ = P·L³ / (48·E·I) with I = b·h³/12, and the frame is
// sturdy when δ ≤ L/300. The span L is the runner centre spacing by default
// ([SpanCenter]); [SpanClear] switches to the clear span between runners.
// Both spans are always reported in [Metrics].
//
// # Degenerate Input
//
// Zero or negative dimensions produce NaN or ±Inf metrics rather than errors.
// Use [Config.Validate] before computing and [Metrics.Check] before display.
package bed
