package bed

// CutListEntry summarizes a group of identical parts for the workshop.
type CutListEntry struct {
	Kind       PartKind `json:"kind"`
	Count      int      `json:"count"`
	Length     float64  `json:"length"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	NotchCount int      `json:"notchCount"`
	NotchWidth float64  `json:"notchWidth"`
	NotchDepth float64  `json:"notchDepth"`
	FirstNotch float64  `json:"firstNotch"`
	// NotchPitch is the distance between the first two notches; zero when a
	// part has fewer than two notches.
	NotchPitch float64 `json:"notchPitch"`
}

// CutList groups the layout's parts by kind. Every runner is identical and
// so is every slat, so the first part of each group stands for the rest.
// Empty groups are omitted.
func CutList(l Layout) []CutListEntry {
	var entries []CutListEntry
	for _, group := range [][]Part{l.Parts.Runners, l.Parts.Slats} {
		if len(group) == 0 {
			continue
		}
		entries = append(entries, summarize(group))
	}
	return entries
}

func summarize(group []Part) CutListEntry {
	p := group[0]
	e := CutListEntry{
		Kind:       p.Kind,
		Count:      len(group),
		Length:     p.Length,
		Width:      p.Width,
		Height:     p.Height,
		NotchCount: len(p.Notches),
	}
	if len(p.Notches) > 0 {
		e.NotchWidth = p.Notches[0].Width
		e.NotchDepth = p.Notches[0].Depth
		e.FirstNotch = p.Notches[0].Position
	}
	if len(p.Notches) > 1 {
		e.NotchPitch = p.Notches[1].Position - p.Notches[0].Position
	}
	return e
}
