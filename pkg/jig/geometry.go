package jig

import "math"

// FingerModule is the nominal width of one finger/hole pair along the joint
// edge. The actual pitch is stretched so an odd segment count fills the plate.
const FingerModule = 20.0

// Segment is one slice of the joint edge, [XStart, XEnd).
type Segment struct {
	Index      int     `json:"index"`
	XStart     float64 `json:"xStart"`
	XEnd       float64 `json:"xEnd"`
	TopHole    bool    `json:"topHole"`    // mortise hole through the top plates
	SideFinger bool    `json:"sideFinger"` // finger standing above the side plate shoulder
	Cutout     bool    `json:"cutout"`     // under a slot; recessed on the side plate
}

// Geometry is the derived template. It is recomputed from Params on demand
// and never mutated.
type Geometry struct {
	Params Params `json:"params"`

	Offset         float64 `json:"offset"`
	RadiusDiff     float64 `json:"radiusDiff"`
	CopyRingRadius float64 `json:"copyRingRadius"`

	TargetSlotLength   float64 `json:"targetSlotLength"`
	TargetSlotWidth    float64 `json:"targetSlotWidth"`
	TemplateSlotLength float64 `json:"templateSlotLength"`
	TemplateSlotWidth  float64 `json:"templateSlotWidth"`

	EdgeMargin  float64   `json:"edgeMargin"`
	FirstSlotX  float64   `json:"firstSlotX"`
	LastSlotX   float64   `json:"lastSlotX"`
	SlotCenters []float64 `json:"slotCenters"`
	IndexX      float64   `json:"indexX"`
	SlotStartY  float64   `json:"slotStartY"`
	SlotEndY    float64   `json:"slotEndY"`
	TopOverhang float64   `json:"topOverhang"`

	TopPlateWidth   float64 `json:"topPlateWidth"`
	TopPlateHeight  float64 `json:"topPlateHeight"`
	SidePlateHeight float64 `json:"sidePlateHeight"`
	FingerHeight    float64 `json:"fingerHeight"`
	// CutoutDepth is how far a cutout segment drops below the side plate
	// shoulder: the requested depth, never past the bottom edge.
	CutoutDepth float64 `json:"cutoutDepth"`

	SegmentCount int       `json:"segmentCount"`
	FingerPitch  float64   `json:"fingerPitch"`
	Segments     []Segment `json:"segments"`
}

// Compute derives the template geometry for p. It accepts any input;
// degenerate parameters produce degenerate (possibly NaN) geometry with
// no slots or a single segment rather than a panic. Slot and finger counts
// are capped at MaxSlotCount and MaxFingers.
func Compute(p Params) Geometry {
	g := Geometry{Params: p}

	g.Offset = p.CopyRingDiameter - p.RouterBitDiameter
	g.RadiusDiff = g.Offset / 2
	g.CopyRingRadius = p.CopyRingDiameter / 2

	g.TargetSlotLength = p.RunnerWidth * float64(p.RunnerCount)
	g.TargetSlotWidth = p.TargetSlotWidth
	g.TemplateSlotLength = g.TargetSlotLength + g.Offset
	g.TemplateSlotWidth = g.TargetSlotWidth + g.Offset

	// Along the joint edge: one pitch of room on the left for the index
	// hole, and a right margin equal to the left one.
	slots := min(max(0, p.SlotCount), MaxSlotCount)
	g.FirstSlotX = firstSlotX(p)
	g.LastSlotX = g.FirstSlotX + float64(slots-1)*p.SlotPitch
	g.TopPlateWidth = g.LastSlotX + g.FirstSlotX
	g.IndexX = g.FirstSlotX - p.SlotPitch
	g.SlotCenters = make([]float64, slots)
	for i := range g.SlotCenters {
		g.SlotCenters[i] = g.FirstSlotX + float64(i)*p.SlotPitch
	}

	// Across the plate, measured from the joint edge. The slot start is
	// pulled back by the radius difference so the enlarged slot still cuts
	// from the inner face of the side plate.
	g.EdgeMargin = p.MaterialThickness
	g.SlotStartY = g.EdgeMargin + p.MaterialThickness - g.RadiusDiff
	g.SlotEndY = g.SlotStartY + g.TemplateSlotLength
	g.TopOverhang = math.Max(0, p.Padding-g.SlotStartY)
	g.TopPlateHeight = g.TopOverhang + g.SlotStartY + g.TemplateSlotLength + p.Padding

	g.SidePlateHeight = p.SidePlateHeight
	g.FingerHeight = 2 * p.MaterialThickness
	g.CutoutDepth = math.Min(p.CutoutDepth, p.SidePlateHeight)

	g.SegmentCount = 2*fingerCount(g.TopPlateWidth) + 1
	g.FingerPitch = g.TopPlateWidth / float64(g.SegmentCount)
	g.Segments = make([]Segment, g.SegmentCount)
	for i := range g.Segments {
		g.Segments[i] = g.segment(i)
	}

	return g
}

func (g Geometry) segment(i int) Segment {
	s := Segment{
		Index:  i,
		XStart: float64(i) * g.FingerPitch,
		XEnd:   float64(i+1) * g.FingerPitch,
	}
	s.Cutout = g.underSlot(s.XStart, s.XEnd)
	if i%2 == 1 && !s.Cutout {
		s.TopHole = true
		s.SideFinger = true
	}
	return s
}

// underSlot reports whether [x0, x1) overlaps the width of any slot.
func (g Geometry) underSlot(x0, x1 float64) bool {
	half := g.TemplateSlotWidth / 2
	for _, cx := range g.SlotCenters {
		if x0 < cx+half && x1 > cx-half {
			return true
		}
	}
	return false
}

// SlotCenterY is the Y coordinate of every slot's centre on a top plate,
// measured from the plate's outer edge.
func (g Geometry) SlotCenterY() float64 {
	return g.TopOverhang + g.SlotStartY + g.TemplateSlotLength/2
}

// HoleY is the Y coordinate of the mortise hole row on a top plate,
// measured from the plate's outer edge.
func (g Geometry) HoleY() float64 {
	return g.TopOverhang + g.EdgeMargin
}

// CutoutCount returns the number of segments recessed under slots.
func (g Geometry) CutoutCount() int {
	n := 0
	for _, s := range g.Segments {
		if s.Cutout {
			n++
		}
	}
	return n
}

// FingerCount returns the number of fingers on the side plate.
func (g Geometry) FingerCount() int {
	n := 0
	for _, s := range g.Segments {
		if s.SideFinger {
			n++
		}
	}
	return n
}

func firstSlotX(p Params) float64 {
	return math.Max(p.Padding, p.SlotPitch+p.Padding)
}

// topPlateWidth is the joint edge length Compute lays out for p.
func topPlateWidth(p Params) float64 {
	slots := min(max(0, p.SlotCount), MaxSlotCount)
	return 2*firstSlotX(p) + float64(slots-1)*p.SlotPitch
}

// fingerCount is the number of finger/hole pairs that fit along width,
// capped at MaxFingers.
func fingerCount(width float64) int {
	f := width / FingerModule
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Min(math.Floor(f), MaxFingers))
}
