package sink

import (
	"encoding/json"

	"github.com/matzehuels/bedjig/pkg/errors"
	"github.com/matzehuels/bedjig/pkg/jig"
)

type jsonOutput struct {
	Units    string        `json:"units"`
	Geometry jig.Geometry  `json:"geometry"`
	Plates   []jsonPlate   `json:"plates"`
	Summary  jsonJointInfo `json:"joint"`
}

type jsonPlate struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonJointInfo struct {
	Segments int `json:"segments"`
	Fingers  int `json:"fingers"`
	Cutouts  int `json:"cutouts"`
}

// RenderJSON exports the geometry with a plate list as pretty-printed JSON,
// for external CAM tools. Non-finite geometry cannot be encoded and yields
// a NON_FINITE_METRIC error.
func RenderJSON(g jig.Geometry) ([]byte, error) {
	side := g.SidePlateHeight + g.FingerHeight
	out := jsonOutput{
		Units:    "mm",
		Geometry: g,
		Plates: []jsonPlate{
			{Name: "Top Plate 1", Width: g.TopPlateWidth, Height: g.TopPlateHeight},
			{Name: "Top Plate 2", Width: g.TopPlateWidth, Height: g.TopPlateHeight},
			{Name: "Side Plate", Width: g.TopPlateWidth, Height: side},
		},
		Summary: jsonJointInfo{
			Segments: g.SegmentCount,
			Fingers:  g.FingerCount(),
			Cutouts:  g.CutoutCount(),
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) {
			return nil, errors.Wrap(errors.ErrCodeNonFinite, err, "template geometry is not finite")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode template geometry")
	}
	return data, nil
}
