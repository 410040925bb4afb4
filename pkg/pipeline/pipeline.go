// Package pipeline runs the compute → render pipeline for both engines.
//
// The CLI drives everything through a [Runner]: it computes a bed layout
// or template geometry, renders the requested formats and caches each
// artifact under a hash of its inputs. Both engines are pure, so a cached
// artifact is valid for as long as the engine version is unchanged.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.RenderTemplate(ctx, jig.DefaultParams(), pipeline.Options{
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/cache"
	"github.com/matzehuels/bedjig/pkg/errors"
	"github.com/matzehuels/bedjig/pkg/jig"
	"github.com/matzehuels/bedjig/pkg/jig/sink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatTXT  = "txt"
	FormatXLSX = "xlsx"
)

// Artifact kinds, used in cache keys.
const (
	KindTemplate = "template"
	KindBed      = "bed"
)

// TemplateFormats are the outputs of [Runner.RenderTemplate]. The first is
// the default.
var TemplateFormats = []string{FormatSVG, FormatPDF, FormatPNG, FormatJSON}

// BedFormats are the outputs of [Runner.RenderBed]. The first is the default.
var BedFormats = []string{FormatTXT, FormatJSON, FormatPDF, FormatXLSX}

// Options configures rendering. Zero values select the defaults.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // skip cache reads

	// Template options
	NoLabels     bool    `json:"no_labels,omitempty"`
	NoIndexHoles bool    `json:"no_index_holes,omitempty"`
	PlateGap     float64 `json:"plate_gap,omitempty"`
	DPI          float64 `json:"dpi,omitempty"`

	// Bed options
	Date string `json:"date,omitempty"` // printed on reports; may be empty
}

// TemplateResult is the output of a template run.
type TemplateResult struct {
	Geometry  jig.Geometry
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// BedResult is the output of a bed run.
type BedResult struct {
	Layout    bed.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline timing.
type Stats struct {
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	ComputeHit bool // layout or geometry came from cache
	RenderHit  bool // every artifact came from cache
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	if !slices.Contains(allowed, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateFormats checks every format against allowed.
func ValidateFormats(formats, allowed []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f, allowed); err != nil {
			return err
		}
	}
	return nil
}

// withDefaults fills unset options. Formats are deduplicated keeping order.
func (o Options) withDefaults(allowed []string) Options {
	if len(o.Formats) == 0 {
		o.Formats = []string{allowed[0]}
	} else {
		var uniq []string
		for _, f := range o.Formats {
			if !slices.Contains(uniq, f) {
				uniq = append(uniq, f)
			}
		}
		o.Formats = uniq
	}
	if o.PlateGap <= 0 {
		o.PlateGap = sink.DefaultPlateGap
	}
	if o.DPI <= 0 {
		o.DPI = sink.DefaultDPI
	}
	return o
}

// svgOptions maps template options to the SVG renderer.
func (o Options) svgOptions() []sink.SVGOption {
	return []sink.SVGOption{
		sink.WithLabels(!o.NoLabels),
		sink.WithIndexHoles(!o.NoIndexHoles),
		sink.WithPlateGap(o.PlateGap),
	}
}

// artifactKeyOpts returns the cache key options for one artifact. Only the
// options that change the bytes of that format are included.
func (o Options) artifactKeyOpts(kind, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Kind: kind, Format: format}
	switch kind {
	case KindTemplate:
		if format != FormatJSON {
			k.Labels = !o.NoLabels
			k.IndexHoles = !o.NoIndexHoles
			k.PlateGap = o.PlateGap
		}
		if format == FormatPNG {
			k.DPI = o.DPI
		}
	case KindBed:
		if format == FormatPDF || format == FormatTXT || format == FormatXLSX {
			k.Date = o.Date
		}
	}
	return k
}
