// Package render converts SVG drawings into other output formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). The jig
// template sink and the pipeline both use them:
//
//	svg := sink.RenderSVG(g)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 300)
//
// When rsvg-convert is missing the functions return an UNSUPPORTED error with
// installation instructions; [Available] lets callers check up front.
package render
