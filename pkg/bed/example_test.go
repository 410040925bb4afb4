package bed_test

import (
	"fmt"

	"github.com/matzehuels/bedjig/pkg/bed"
)

func ExampleCompute() {
	cfg := bed.DefaultConfig()
	l := bed.Compute(cfg)

	fmt.Println("runners:", len(l.Parts.Runners))
	fmt.Println("slats:", len(l.Parts.Slats))
	fmt.Printf("price: %.2f\n", l.Metrics.TotalPrice)
	fmt.Printf("deflection: %.3f mm (limit %.3f)\n", l.Metrics.DeflectionMm, l.Metrics.DeflectionLimitMm)
	fmt.Println("score:", l.Metrics.SturdinessScore)
	// Output:
	// runners: 2
	// slats: 20
	// price: 188.00
	// deflection: 1.084 mm (limit 4.333)
	// score: 100
}

func ExampleCutList() {
	for _, e := range bed.CutList(bed.Compute(bed.DefaultConfig())) {
		fmt.Printf("%dx %s %.0fx%.0fx%.0f, %d notches %.0fx%.0f\n",
			e.Count, e.Kind, e.Length, e.Width, e.Height, e.NotchCount, e.NotchWidth, e.NotchDepth)
	}
	// Output:
	// 2x runner 2000x100x160, 20 notches 60x40
	// 20x slat 1400x60x80, 2 notches 100x40
}
