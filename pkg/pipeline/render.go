package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/bedjig/pkg/bed"
	pkgio "github.com/matzehuels/bedjig/pkg/io"
	"github.com/matzehuels/bedjig/pkg/jig"
	"github.com/matzehuels/bedjig/pkg/jig/sink"
	"github.com/matzehuels/bedjig/pkg/report"
)

// RenderTemplateFormat renders one template artifact.
func RenderTemplateFormat(ctx context.Context, g jig.Geometry, format string, opts Options) ([]byte, error) {
	opts = opts.withDefaults(TemplateFormats)
	svgOpts := opts.svgOptions()

	switch format {
	case FormatSVG:
		return sink.RenderSVG(g, svgOpts...), nil
	case FormatPDF:
		return sink.RenderPDF(ctx, g, sink.WithPDFSVGOptions(svgOpts...))
	case FormatPNG:
		return sink.RenderPNG(ctx, g, sink.WithPNGSVGOptions(svgOpts...), sink.WithDPI(opts.DPI))
	case FormatJSON:
		return sink.RenderJSON(g)
	}
	return nil, ValidateFormat(format, TemplateFormats)
}

// RenderBedFormat renders one bed artifact.
func RenderBedFormat(cfg bed.Config, l bed.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteLayoutJSON(cfg, l, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTXT:
		return []byte(report.Text(report.Build(cfg, l, opts.Date))), nil
	case FormatPDF:
		return report.PDF(report.Build(cfg, l, opts.Date))
	case FormatXLSX:
		return report.XLSX(report.Build(cfg, l, opts.Date))
	}
	return nil, ValidateFormat(format, BedFormats)
}
