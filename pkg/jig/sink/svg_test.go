package sink

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/bedjig/pkg/jig"
)

func TestRenderSVGHeader(t *testing.T) {
	svg := string(RenderSVG(jig.Compute(jig.DefaultParams())))

	// 440 + 2×10 wide; 2×169 + 2×10 + 10 + 60 + 2×10 high.
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-10 -10 460 448" width="460mm" height="448mm">`
	if !strings.HasPrefix(svg, want) {
		t.Errorf("header = %q, want prefix %q", svg[:min(len(svg), len(want))], want)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
}

func TestRenderSVGLayers(t *testing.T) {
	g := jig.Compute(jig.DefaultParams())
	svg := string(RenderSVG(g))

	for _, class := range []string{".cut", ".ref", ".engrave"} {
		if !strings.Contains(svg, class+" {") {
			t.Errorf("style block missing %s", class)
		}
	}

	holes := g.FingerCount()
	slots := len(g.SlotCenters)

	tests := []struct {
		name    string
		pattern string
		want    int
	}{
		{"outlines", `<path class="cut"`, 3},
		{"cut rects", `<rect class="cut"`, 2 * (holes + slots)},
		{"slot corners", `rx="8.5"`, 2 * slots},
		{"reference lines", `<line class="ref"`, 2 * slots},
		{"index holes", `<circle class="engrave"`, 4},
		{"labels", `class="text"`, 5},
	}
	for _, tt := range tests {
		if got := strings.Count(svg, tt.pattern); got != tt.want {
			t.Errorf("%s: count(%q) = %d, want %d", tt.name, tt.pattern, got, tt.want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	g := jig.Compute(jig.DefaultParams())

	svg := string(RenderSVG(g, WithLabels(false), WithIndexHoles(false)))
	if strings.Contains(svg, "<text") {
		t.Error("labels rendered with WithLabels(false)")
	}
	if strings.Contains(svg, "<circle") {
		t.Error("index holes rendered with WithIndexHoles(false)")
	}

	svg = string(RenderSVG(g, WithPlateGap(0)))
	if !strings.Contains(svg, `viewBox="-10 -10 460 428"`) {
		t.Errorf("plate gap not applied: %s", svg[:120])
	}
	// Second top plate starts right below the first.
	if !strings.Contains(svg, `d="M 0,169 L 440,169`) {
		t.Error("second top plate not at y=169")
	}
}

func TestRenderSVGSidePlate(t *testing.T) {
	g := jig.Compute(jig.DefaultParams())
	svg := string(RenderSVG(g))

	re := regexp.MustCompile(`<path class="cut" d="(M 0,[^"]*)"/>`)
	paths := re.FindAllStringSubmatch(svg, -1)
	if len(paths) != 3 {
		t.Fatalf("found %d outlines, want 3", len(paths))
	}
	side := paths[2][1]

	// Side plate origin is 2×(169+10) = 358; shoulder 10 mm lower.
	if !strings.HasPrefix(side, "M 0,368") {
		t.Errorf("side plate starts %q, want shoulder at 368", side[:12])
	}
	if !strings.Contains(side, ",358 L") {
		t.Error("no finger reaches the top of the side plate")
	}
	// Cutouts drop the requested 40 mm below the shoulder.
	if !strings.Contains(side, ",408 L") {
		t.Error("no cutout at 408")
	}
	if strings.Contains(side, ",416.5 ") {
		t.Error("cutout depth must not include the copy ring radius")
	}
	if !strings.HasSuffix(side, "L 440,428 L 0,428 Z") {
		t.Errorf("side plate bottom wrong: %q", side[len(side)-30:])
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	g := jig.Compute(jig.DefaultParams())
	a := RenderSVG(g, WithPlateGap(12))
	b := RenderSVG(jig.Compute(jig.DefaultParams()), WithPlateGap(12))
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG output differs between identical calls")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-10, "-10"},
		{4.5, "4.5"},
		{1.0 / 3, "0.3333333333333333"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
