// Package report turns a computed bed layout into a workshop cut list.
//
// [Build] collects everything a report shows into a [Report]; [Text],
// [PDF] and [XLSX] render it. Prices and quantities are formatted once in
// Build so the three outputs agree.
package report

import (
	"fmt"

	"github.com/matzehuels/bedjig/pkg/bed"
)

// Row is one line of the cut list: a group of identical parts.
type Row struct {
	Part       string  `json:"part"`
	Qty        int     `json:"qty"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Notches    int     `json:"notches"`
	NotchSize  string  `json:"notchSize"`  // "width x depth"
	NotchStart float64 `json:"notchStart"` // first notch position
	NotchPitch float64 `json:"notchPitch"`
}

// Summary is a labelled value for the totals block.
type Summary struct {
	Label string
	Value string
}

// Report is the display-ready content of a cut list.
type Report struct {
	Title    string
	Date     string
	Material string
	Rows     []Row
	Totals   []Summary
	Sturdy   bool
	Verdict  string
}

// Build assembles the report for cfg and its layout. date is printed as is
// and may be empty.
func Build(cfg bed.Config, l bed.Layout, date string) Report {
	m := l.Metrics
	r := Report{
		Title:    cfg.Name,
		Date:     date,
		Material: m.Material.Name,
		Sturdy:   m.IsSturdy,
	}
	if r.Title == "" {
		r.Title = "Bed frame"
	}

	for _, e := range bed.CutList(l) {
		r.Rows = append(r.Rows, Row{
			Part:       partName(e.Kind),
			Qty:        e.Count,
			Length:     e.Length,
			Width:      e.Width,
			Height:     e.Height,
			Notches:    e.NotchCount,
			NotchSize:  fmt.Sprintf("%s x %s", FormatMM(e.NotchWidth), FormatMM(e.NotchDepth)),
			NotchStart: e.FirstNotch,
			NotchPitch: e.NotchPitch,
		})
	}

	r.Totals = []Summary{
		{"Runner length", FormatMeters(m.TotalRunnerLengthM)},
		{"Slat length", FormatMeters(m.TotalSlatLengthM)},
		{"Wood volume", FormatVolume(m.TotalVolumeM3)},
		{fmt.Sprintf("Price (%s)", cfg.PricingUnit), FormatPrice(m.TotalPrice)},
		{fmt.Sprintf("Span (%s)", m.SpanModel), FormatMM(m.SpanMm) + " mm"},
		{"Deflection", fmt.Sprintf("%s mm (limit %s mm)", FormatDeflection(m.DeflectionMm), FormatDeflection(m.DeflectionLimitMm))},
		{"Sturdiness", fmt.Sprintf("%d/100", m.SturdinessScore)},
	}

	if m.IsSturdy {
		r.Verdict = "Sturdy: deflection is within span/300."
	} else {
		r.Verdict = "Not sturdy: add runners or use taller slats."
	}
	return r
}

func partName(k bed.PartKind) string {
	switch k {
	case bed.KindRunner:
		return "Runner"
	case bed.KindSlat:
		return "Slat"
	default:
		return string(k)
	}
}
