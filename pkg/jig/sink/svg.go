package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/bedjig/pkg/jig"
)

// Drawing constants in millimetres.
const (
	// DefaultPlateGap separates the stacked plates on the sheet.
	DefaultPlateGap = 10.0
	// IndexHoleRadius is the radius of the engraved registration holes.
	IndexHoleRadius = 2.5
	// IndexHoleSpread is the distance of each index hole from the slot centre line.
	IndexHoleSpread = 25.0

	sheetMargin = 10.0
	labelInset  = 5.0
)

const layerCSS = `
    .cut { fill: none; stroke: black; stroke-width: 0.1mm; vector-effect: non-scaling-stroke; }
    .ref { fill: none; stroke: red; stroke-width: 0.1mm; vector-effect: non-scaling-stroke; stroke-dasharray: 2,2; }
    .engrave { fill: none; stroke: blue; stroke-width: 0.1mm; vector-effect: non-scaling-stroke; }
    .text { font-family: sans-serif; font-size: 5px; fill: red; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	plateGap   float64
	indexHoles bool
}

// WithLabels toggles the plate names and the index label. On by default.
func WithLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

// WithPlateGap sets the spacing between plates in millimetres.
func WithPlateGap(mm float64) SVGOption { return func(r *svgRenderer) { r.plateGap = mm } }

// WithIndexHoles toggles the engraved registration holes. On by default.
func WithIndexHoles(on bool) SVGOption { return func(r *svgRenderer) { r.indexHoles = on } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{labels: true, plateGap: DefaultPlateGap, indexHoles: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws both top plates and the side plate on one sheet. One user
// unit is one millimetre, and the width and height attributes carry mm units
// so the file can go to a cutter unscaled.
func RenderSVG(g jig.Geometry, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	sheetW, sheetH := r.sheetSize(g)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%smm" height="%smm">`+"\n",
		num(-sheetMargin), num(-sheetMargin), num(sheetW), num(sheetH), num(sheetW), num(sheetH))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", layerCSS)

	r.renderTopPlate(&buf, g, 0, "Top Plate 1")
	r.renderTopPlate(&buf, g, g.TopPlateHeight+r.plateGap, "Top Plate 2")
	r.renderSidePlate(&buf, g, 2*(g.TopPlateHeight+r.plateGap))

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// sheetSize is the drawing extent including the margin on every side.
func (r svgRenderer) sheetSize(g jig.Geometry) (w, h float64) {
	content := 2*g.TopPlateHeight + 2*r.plateGap + g.FingerHeight + g.SidePlateHeight
	return g.TopPlateWidth + 2*sheetMargin, content + 2*sheetMargin
}

func (r svgRenderer) renderTopPlate(buf *bytes.Buffer, g jig.Geometry, y0 float64, label string) {
	w, h := g.TopPlateWidth, g.TopPlateHeight
	fmt.Fprintf(buf, `  <path class="cut" d="M 0,%s L %s,%s L %s,%s L 0,%s Z"/>`+"\n",
		num(y0), num(w), num(y0), num(w), num(y0+h), num(y0+h))

	holeY := y0 + g.HoleY()
	for _, s := range g.Segments {
		if !s.TopHole {
			continue
		}
		fmt.Fprintf(buf, `  <rect class="cut" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			num(s.XStart), num(holeY), num(s.XEnd-s.XStart), num(g.Params.MaterialThickness))
	}

	slotTop := y0 + g.TopOverhang + g.SlotStartY
	for _, cx := range g.SlotCenters {
		fmt.Fprintf(buf, `  <rect class="cut" x="%s" y="%s" width="%s" height="%s" rx="%s"/>`+"\n",
			num(cx-g.TemplateSlotWidth/2), num(slotTop), num(g.TemplateSlotWidth), num(g.TemplateSlotLength), num(g.CopyRingRadius))
		fmt.Fprintf(buf, `  <line class="ref" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx), num(slotTop), num(cx), num(slotTop+g.TemplateSlotLength))
	}

	indexY := y0 + g.SlotCenterY()
	if r.indexHoles {
		for _, dy := range []float64{-IndexHoleSpread, IndexHoleSpread} {
			fmt.Fprintf(buf, `  <circle class="engrave" cx="%s" cy="%s" r="%s"/>`+"\n",
				num(g.IndexX), num(indexY+dy), num(IndexHoleRadius))
		}
	}

	if r.labels {
		if r.indexHoles {
			fmt.Fprintf(buf, `  <text x="%s" y="%s" class="text" text-anchor="middle">Index</text>`+"\n",
				num(g.IndexX), num(indexY-4))
		}
		fmt.Fprintf(buf, `  <text x="%s" y="%s" class="text">%s</text>`+"\n",
			num(labelInset), num(y0+h-labelInset), label)
	}
}

// renderSidePlate draws the side plate outline: the finger edge on top, then
// straight down and across the bottom.
func (r svgRenderer) renderSidePlate(buf *bytes.Buffer, g jig.Geometry, y0 float64) {
	shoulderY := y0 + g.FingerHeight
	cutoutY := shoulderY + g.CutoutDepth
	bottomY := shoulderY + g.SidePlateHeight

	var d bytes.Buffer
	fmt.Fprintf(&d, "M 0,%s", num(shoulderY))
	for _, s := range g.Segments {
		y := shoulderY
		switch {
		case s.Cutout:
			y = cutoutY
		case s.SideFinger:
			y = y0
		}
		fmt.Fprintf(&d, " L %s,%s L %s,%s", num(s.XStart), num(y), num(s.XEnd), num(y))
	}
	fmt.Fprintf(&d, " L %s,%s L 0,%s Z", num(g.TopPlateWidth), num(bottomY), num(bottomY))

	fmt.Fprintf(buf, `  <path class="cut" d="%s"/>`+"\n", d.String())
	if r.labels {
		fmt.Fprintf(buf, `  <text x="%s" y="%s" class="text">Side Plate</text>`+"\n",
			num(labelInset), num(bottomY-labelInset))
	}
}

// num formats a coordinate with the shortest exact representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
