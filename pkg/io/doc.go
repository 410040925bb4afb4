// Package io reads bed configurations and template parameters from files and
// writes computed layouts back out.
//
// # Input Formats
//
// Configurations are TOML or JSON. The format follows the file extension
// (.toml, .json); [DetectFormat] falls back to TOML for anything else.
// Files are decoded over the defaults, so a file only needs the keys it
// changes:
//
//	# guest-bed.toml
//	name = "Guest bed"
//	bed_width = 900
//	runner_count = 3
//	pricing_unit = "per-volume"
//
// JSON uses the camelCase keys of the browser tool's saved configurations
// ("bedWidth", "pricingUnit", ...). Unknown keys are rejected with an
// INVALID_CONFIG (or INVALID_PARAMS) error so that typos do not silently
// fall back to a default.
//
// Use [ImportBedConfig] and [ImportParams] for paths, or [ReadBedConfig] and
// [ReadParams] for any io.Reader.
//
// # Output
//
// [WriteLayoutJSON] writes a layout with its configuration and cut list.
// Layouts computed from degenerate input contain NaN or Inf, which JSON cannot
// represent; those fail with NON_FINITE_METRIC.
//
// [WriteBedConfigTOML] and [WriteParamsTOML] write starter files for
// "bedjig bed --init" and "bedjig template --init".
package io
