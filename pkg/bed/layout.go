package bed

import (
	"fmt"
	"math"
)

// Load model constants.
const (
	// TotalLoadN is the point load of a person, ~200 kg.
	TotalLoadN = 2000.0
	// ContactPatchMm is the length of bed over which a person's weight spreads.
	ContactPatchMm = 300.0
	// DeflectionRatio is the span/N serviceability limit.
	DeflectionRatio = 300.0
)

// PartKind tags a part as runner or slat.
type PartKind string

const (
	KindRunner PartKind = "runner"
	KindSlat   PartKind = "slat"
)

// Notch is a half-lap cut. Position is measured along the part's length from
// its origin.
type Notch struct {
	Position float64 `json:"x"`
	Width    float64 `json:"width"`
	Depth    float64 `json:"depth"`
}

// Part is a single runner or slat with its origin and cut list.
type Part struct {
	ID      string   `json:"id"`
	Kind    PartKind `json:"type"`
	Length  float64  `json:"length"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Z       float64  `json:"z"`
	Notches []Notch  `json:"cuts"`
}

// Parts groups the computed parts by kind.
type Parts struct {
	Runners []Part `json:"runners"`
	Slats   []Part `json:"slats"`
}

// Metrics are aggregate values derived from a Config.
type Metrics struct {
	TotalPrice         float64 `json:"totalPrice"`
	TotalRunnerLengthM float64 `json:"totalRunnerLengthM"`
	TotalSlatLengthM   float64 `json:"totalSlatLengthM"`
	RunnerVolumeM3     float64 `json:"runnerVolume"`
	SlatVolumeM3       float64 `json:"slatVolume"`
	TotalVolumeM3      float64 `json:"totalVolume"`
	SlatCount          int     `json:"slatCount"`
	RunnerCount        int     `json:"runnerCount"`

	RunnerSpacingMm   float64   `json:"runnerSpacingMm"`
	ClearSpanMm       float64   `json:"clearSpanMm"`
	SpanMm            float64   `json:"spanMm"`
	SpanModel         SpanModel `json:"spanModel"`
	DeflectionMm      float64   `json:"deflectionMm"`
	DeflectionLimitMm float64   `json:"deflectionLimitMm"`
	SturdinessScore   int       `json:"sturdinessScore"`
	IsSturdy          bool      `json:"isSturdy"`

	Material Material `json:"material"`
}

// Layout is the result of Compute.
type Layout struct {
	Parts   Parts   `json:"parts"`
	Metrics Metrics `json:"metrics"`
}

// Compute derives the full layout for cfg. It is a pure function: identical
// input yields identical output, and degenerate input propagates NaN/Inf
// into the metrics instead of failing. Runner and slat counts are capped at
// MaxPartCount; Validate rejects configurations that would exceed it.
func Compute(cfg Config) Layout {
	slatPitch := cfg.SlatWidth + cfg.SlatGap

	slatCount := fitCount(slatFit(cfg))
	totalSlatLength := float64(slatCount)*cfg.SlatWidth + float64(slatCount-1)*cfg.SlatGap
	startOffset := (cfg.BedLength - totalSlatLength) / 2

	availableWidth := cfg.BedWidth - 2*cfg.RunnerMargin
	runnerSpacing := (availableWidth - cfg.RunnerWidth) / float64(max(1, cfg.RunnerCount-1))

	slatZ := make([]float64, slatCount)
	for i := range slatZ {
		slatZ[i] = startOffset + float64(i)*slatPitch
	}
	runnerX := make([]float64, min(max(0, cfg.RunnerCount), MaxPartCount))
	for i := range runnerX {
		runnerX[i] = cfg.RunnerMargin + float64(i)*runnerSpacing
	}

	notchDepth := cfg.SlatHeight / 2

	runners := make([]Part, len(runnerX))
	for i, x := range runnerX {
		runners[i] = Part{
			ID:      fmt.Sprintf("runner-%d", i),
			Kind:    KindRunner,
			Length:  cfg.BedLength,
			Width:   cfg.RunnerWidth,
			Height:  cfg.RunnerHeight,
			X:       x,
			Notches: notches(slatZ, cfg.SlatWidth, notchDepth),
		}
	}

	slats := make([]Part, len(slatZ))
	for i, z := range slatZ {
		slats[i] = Part{
			ID:      fmt.Sprintf("slat-%d", i),
			Kind:    KindSlat,
			Length:  cfg.BedWidth,
			Width:   cfg.SlatWidth,
			Height:  cfg.SlatHeight,
			Y:       cfg.RunnerHeight - cfg.SlatHeight,
			Z:       z,
			Notches: notches(runnerX, cfg.RunnerWidth, notchDepth),
		}
	}

	m := Metrics{
		SlatCount:       len(slats),
		RunnerCount:     len(runners),
		RunnerSpacingMm: runnerSpacing,
	}
	m.TotalRunnerLengthM = float64(len(runners)) * cfg.BedLength / 1000
	m.TotalSlatLengthM = float64(len(slats)) * cfg.BedWidth / 1000
	m.RunnerVolumeM3 = m.TotalRunnerLengthM * (cfg.RunnerWidth / 1000) * (cfg.RunnerHeight / 1000)
	m.SlatVolumeM3 = m.TotalSlatLengthM * (cfg.SlatWidth / 1000) * (cfg.SlatHeight / 1000)
	m.TotalVolumeM3 = m.RunnerVolumeM3 + m.SlatVolumeM3
	m.TotalPrice = price(cfg, m)

	applySturdiness(cfg, &m)

	return Layout{
		Parts:   Parts{Runners: runners, Slats: slats},
		Metrics: m,
	}
}

// slatFit is how many slats fit along the bed length, before flooring.
func slatFit(cfg Config) float64 {
	return (cfg.BedLength + cfg.SlatGap) / (cfg.SlatWidth + cfg.SlatGap)
}

func notches(positions []float64, width, depth float64) []Notch {
	out := make([]Notch, len(positions))
	for i, p := range positions {
		out[i] = Notch{Position: p, Width: width, Depth: depth}
	}
	return out
}

// price applies the configured pricing unit. Unknown units price to zero.
func price(cfg Config, m Metrics) float64 {
	switch cfg.PricingUnit {
	case PricingPerMeter:
		return m.TotalRunnerLengthM*cfg.PricePerUnitRunner + m.TotalSlatLengthM*cfg.PricePerUnitSlat
	case PricingPerVolume:
		return m.RunnerVolumeM3*cfg.PricePerUnitRunner + m.SlatVolumeM3*cfg.PricePerUnitSlat
	case PricingPerPiece:
		return float64(m.RunnerCount)*cfg.PricePerUnitRunner + float64(m.SlatCount)*cfg.PricePerUnitSlat
	default:
		return 0
	}
}

// applySturdiness fills the beam-deflection metrics.
func applySturdiness(cfg Config, m *Metrics) {
	material, _ := LookupMaterial(cfg.MaterialID)
	m.Material = material

	m.ClearSpanMm = m.RunnerSpacingMm - cfg.RunnerWidth
	m.SpanModel = cfg.SpanModel
	if m.SpanModel == "" {
		m.SpanModel = SpanCenter
	}
	m.SpanMm = m.RunnerSpacingMm
	if m.SpanModel == SpanClear {
		m.SpanMm = m.ClearSpanMm
	}

	slatsSharingLoad := math.Max(1, ContactPatchMm/(cfg.SlatWidth+cfg.SlatGap))
	loadPerSlat := TotalLoadN / slatsSharingLoad

	inertia := cfg.SlatWidth * math.Pow(cfg.SlatHeight, 3) / 12
	span := m.SpanMm

	m.DeflectionMm = loadPerSlat * math.Pow(span, 3) / (48 * material.EModulus * inertia)
	m.DeflectionLimitMm = span / DeflectionRatio

	score := 100.0
	if m.DeflectionMm > m.DeflectionLimitMm {
		score = math.Max(0, 100-((m.DeflectionMm-m.DeflectionLimitMm)/m.DeflectionLimitMm)*100)
	}
	m.SturdinessScore = roundScore(score)
	m.IsSturdy = m.DeflectionMm <= m.DeflectionLimitMm
}

// fitCount converts a fractional fit into a part count. Non-finite or
// negative fits yield no parts; larger fits than MaxPartCount are capped.
func fitCount(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Min(math.Floor(f), MaxPartCount))
}

// roundScore rounds half up to an integer score.
func roundScore(s float64) int {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return int(math.Floor(s + 0.5))
}
