// Package pkg provides the core libraries for bedjig, a designer for
// slatted bed frames and the router templates used to build them.
//
// # Overview
//
// A bedjig frame is a set of runners along the bed length with slats laid
// across them in half-lap notches. The pkg directory is organized into two
// engines and the plumbing around them:
//
//  1. [bed] - Frame layout: parts, notch positions, price and a deflection check
//  2. [jig] - Router template geometry for cutting the notches
//  3. [report], [jig/sink] - Output formats for both engines
//  4. [pipeline] - Orchestration (validate → compute → render) with caching
//
// # Architecture
//
// Both engines are pure functions of their input:
//
//	bed.Config                 jig.Params
//	    ↓                          ↓
//	[bed] Compute            [jig] Compute
//	    ↓                          ↓
//	[report] TXT/JSON/PDF/XLSX [jig/sink] SVG/PDF/PNG/JSON
//
// so the [pipeline] keys every stage by a hash of its input and serves
// repeated runs from the [cache].
//
// # Quick Start
//
// Compute a frame and print its cut list:
//
//	cfg := bed.DefaultConfig()
//	cfg.RunnerCount = 3
//	l := bed.Compute(cfg)
//	fmt.Print(report.Text(report.Build(cfg, l, "2025-01-15")))
//
// Draw the matching router template:
//
//	g := jig.Compute(jig.DefaultParams())
//	svg := sink.RenderSVG(g, sink.WithLabels(false))
//
// # Main Packages
//
// ## Engines
//
// [bed] - Frame layout from a [bed.Config]. Places runners and slats,
// computes notch positions, wood length and volume, price under one of three
// pricing units, and the centre deflection of a slat against the L/300
// limit. [bed.Config.Validate] rejects unbuildable frames up front.
//
// [jig] - Template geometry from [jig.Params]: copy ring offset, slot size,
// plate dimensions and the finger joint between the top and side plates.
//
// ## Output
//
// [jig/sink] - Template drawings. SVG is drawn at 1 unit = 1 mm; PDF and PNG
// are converted from it.
//
// [report] - Cut list reports as plain text, PDF (maroto) and XLSX (excelize).
//
// [compare] - Side-by-side comparison of several frame configurations.
//
// [render] - SVG to PDF/PNG conversion via rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - Shared by the CLI and tests. Validates input, computes the
// layout or geometry, and renders each requested format through the cache.
//
// [cache] - Content-addressed byte store (file and no-op backends).
//
// [io] - Configuration files (TOML or JSON) and layout export.
//
// [errors] - Error codes shared by all packages.
//
// [observability] - Optional hooks for pipeline and cache metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/bed/...         # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [bed]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/bed
// [jig]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/jig
// [jig/sink]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/jig/sink
// [report]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/report
// [compare]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/compare
// [render]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/observability
// [bed.Config]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/bed#Config
// [bed.Config.Validate]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/bed#Config.Validate
// [jig.Params]: https://pkg.go.dev/github.com/matzehuels/bedjig/pkg/jig#Params
package pkg
