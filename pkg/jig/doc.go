// Package jig computes the geometry of a three-piece router template for
// cutting the slat slots of a bed runner with a guide bushing.
//
// # Overview
//
// A router bit of diameter B cuts the workpiece, but the operator steers a
// copy ring (guide bushing) of diameter C along the template. The cut line
// therefore sits (C−B)/2 inside the template edge, and every template slot
// is enlarged by the full offset C−B in both directions:
//
//	g := jig.Compute(jig.DefaultParams())
//	g.Offset             // 9
//	g.TemplateSlotLength // 129 (3 runners × 40 mm + 9)
//
// # Plates
//
// The template is built from two identical top plates and one side plate.
// The top plates carry the slots and a row of mortise holes along the joint
// edge; the side plate carries matching fingers. The shared edge is split
// into an odd number of equal [Segment]s so that the pattern reads the same
// from either end. Odd segments are mortise holes on the top plates and
// fingers on the side plate.
//
// Segments that lie under a slot are cutouts: the top plate keeps its
// material there, and the side plate is recessed below its shoulder so the
// copy ring and bit clear it.
//
// # Coordinates
//
// All values are millimetres. X runs along the joint edge from the left end
// of the plates; Y runs away from the joint edge across the top plate.
//
// # Validation
//
// [Compute] never fails. A copy ring smaller than the bit gives a negative
// offset and an undersized slot; [Params.Validate] reports that case with
// the NEGATIVE_OFFSET error code, and the CLI validates before computing.
//
// Rendering lives in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/bedjig/pkg/jig/sink
package jig
