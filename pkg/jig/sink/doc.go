// Package sink renders a computed [jig.Geometry] into output files.
//
// # SVG Output
//
// [RenderSVG] produces a self-contained drawing in absolute millimetres: the
// viewBox is in millimetres and the width and height attributes carry mm
// units, so one user unit is one millimetre on the cutter. Elements use three
// classes by tool action:
//
//   - cut: plate outlines, mortise holes and slots
//   - ref: dashed slot centre lines, not cut
//   - engrave: index registration holes
//
// The two top plates are stacked above the side plate with a fixed gap, and
// the side plate's fingers line up with the top plates' mortise holes.
//
//	svg := sink.RenderSVG(g,
//	    sink.WithLabels(false),
//	    sink.WithPlateGap(6),
//	)
//
// Output is deterministic: the same geometry and options give byte-identical
// files.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] generate the SVG first and convert it with
// [render.ToPDF] and [render.ToPNG]. Both need rsvg-convert on PATH.
//
// # JSON Output
//
// [RenderJSON] exports the geometry and the plate list for CAM tools.
//
// [jig.Geometry]: github.com/matzehuels/bedjig/pkg/jig.Geometry
// [render.ToPDF]: github.com/matzehuels/bedjig/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/bedjig/pkg/render.ToPNG
package sink
