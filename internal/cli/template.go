package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bedjig/pkg/errors"
	pkgio "github.com/matzehuels/bedjig/pkg/io"
	"github.com/matzehuels/bedjig/pkg/jig"
	"github.com/matzehuels/bedjig/pkg/pipeline"
	"github.com/matzehuels/bedjig/pkg/render"
	"github.com/matzehuels/bedjig/pkg/report"
)

// defaultParamsFile is written by "template --init" without a path.
const defaultParamsFile = "template.toml"

// templateOpts holds the command-line flags for the template command.
type templateOpts struct {
	output  string
	formats string
	noCache bool
	refresh bool
	init    bool
	force   bool

	noLabels     bool
	noIndexHoles bool
	plateGap     float64
	dpi          float64

	values jig.Params // targets of the parameter flags
}

// paramOverride copies one flag value onto loaded parameters.
type paramOverride struct {
	flag  string
	apply func(dst *jig.Params, src jig.Params)
}

var paramOverrides = []paramOverride{
	{"bit", func(d *jig.Params, s jig.Params) { d.RouterBitDiameter = s.RouterBitDiameter }},
	{"copy-ring", func(d *jig.Params, s jig.Params) { d.CopyRingDiameter = s.CopyRingDiameter }},
	{"thickness", func(d *jig.Params, s jig.Params) { d.MaterialThickness = s.MaterialThickness }},
	{"runner-width", func(d *jig.Params, s jig.Params) { d.RunnerWidth = s.RunnerWidth }},
	{"runners", func(d *jig.Params, s jig.Params) { d.RunnerCount = s.RunnerCount }},
	{"slot-width", func(d *jig.Params, s jig.Params) { d.TargetSlotWidth = s.TargetSlotWidth }},
	{"slots", func(d *jig.Params, s jig.Params) { d.SlotCount = s.SlotCount }},
	{"pitch", func(d *jig.Params, s jig.Params) { d.SlotPitch = s.SlotPitch }},
	{"padding", func(d *jig.Params, s jig.Params) { d.Padding = s.Padding }},
	{"side-height", func(d *jig.Params, s jig.Params) { d.SidePlateHeight = s.SidePlateHeight }},
	{"cutout-depth", func(d *jig.Params, s jig.Params) { d.CutoutDepth = s.CutoutDepth }},
}

// templateCommand creates the template command.
func (c *CLI) templateCommand() *cobra.Command {
	opts := templateOpts{values: jig.DefaultParams()}

	cmd := &cobra.Command{
		Use:   "template [params.toml|params.json]",
		Short: "Generate the router template for the runner half-lap joints",
		Long: `Generate a two-plate router template for cutting the slat notches into a
stack of clamped runners with a copy ring. The top plates carry the enlarged
slots, the side plate registers against the runners and interlocks with the
top plates through finger joints.

Parameters come from a file, from the built-in defaults, or from flags, which
override the file. Output formats:

  svg    cutter-ready drawing, 1 unit = 1 mm (default)
  pdf    1:1 printable drawing (requires rsvg-convert)
  png    raster preview (requires rsvg-convert)
  json   geometry for CAM tools

Install rsvg-convert with 'brew install librsvg' (macOS) or
'apt install librsvg2-bin' (Linux).`,
		Example: `  bedjig template
  bedjig template --bit 6 --copy-ring 17 --slots 4 -f svg,pdf
  bedjig template jig.toml -o cut/jig.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			changed := cmd.Flags().Changed
			if opts.init {
				return runTemplateInit(input, opts, changed)
			}
			return c.runTemplate(cmd.Context(), input, opts, changed)
		},
	}

	d := opts.values
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), pdf, png, json (comma-separated)")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	f.BoolVar(&opts.init, "init", false, "write a default parameter file and exit")
	f.BoolVar(&opts.force, "force", false, "overwrite an existing file with --init")

	f.BoolVar(&opts.noLabels, "no-labels", false, "omit plate labels")
	f.BoolVar(&opts.noIndexHoles, "no-index-holes", false, "omit the engraved index holes")
	f.Float64Var(&opts.plateGap, "plate-gap", 0, "spacing between plates on the sheet in mm (default 10)")
	f.Float64Var(&opts.dpi, "dpi", 0, "PNG resolution (default 300)")

	f.Float64Var(&opts.values.RouterBitDiameter, "bit", d.RouterBitDiameter, "router bit diameter (mm)")
	f.Float64Var(&opts.values.CopyRingDiameter, "copy-ring", d.CopyRingDiameter, "copy ring outer diameter (mm)")
	f.Float64Var(&opts.values.MaterialThickness, "thickness", d.MaterialThickness, "template sheet thickness (mm)")
	f.Float64Var(&opts.values.RunnerWidth, "runner-width", d.RunnerWidth, "width of one runner (mm)")
	f.IntVar(&opts.values.RunnerCount, "runners", d.RunnerCount, "runners clamped together per pass")
	f.Float64Var(&opts.values.TargetSlotWidth, "slot-width", d.TargetSlotWidth, "finished notch width (mm)")
	f.IntVar(&opts.values.SlotCount, "slots", d.SlotCount, "slots per template")
	f.Float64Var(&opts.values.SlotPitch, "pitch", d.SlotPitch, "distance between slot centres (mm)")
	f.Float64Var(&opts.values.Padding, "padding", d.Padding, "plate edge padding (mm)")
	f.Float64Var(&opts.values.SidePlateHeight, "side-height", d.SidePlateHeight, "side plate height below the fingers (mm)")
	f.Float64Var(&opts.values.CutoutDepth, "cutout-depth", d.CutoutDepth, "side plate cutout depth under each slot (mm)")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.TemplateFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyParamOverrides copies every flag that was set onto p.
func applyParamOverrides(p *jig.Params, opts templateOpts, changed func(string) bool) {
	for _, o := range paramOverrides {
		if changed(o.flag) {
			o.apply(p, opts.values)
		}
	}
}

// runTemplateInit writes the default parameters, with any flags applied.
func runTemplateInit(path string, opts templateOpts, changed func(string) bool) error {
	p := jig.DefaultParams()
	applyParamOverrides(&p, opts, changed)
	if err := p.Validate(); err != nil {
		return err
	}
	if path == "" {
		path = defaultParamsFile
	}
	if path != "-" && !opts.force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
		}
	}

	out, err := openOutput(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer out.Close()
	if err := pkgio.WriteParamsTOML(p, out); err != nil {
		return err
	}
	if path == "-" {
		return nil
	}

	printSuccess("Wrote default template parameters")
	printFile(path)
	printNewline()
	printNextStep("Generate", "bedjig template "+path)
	return nil
}

// runTemplate loads the parameters, computes the geometry and writes the
// requested drawings.
func (c *CLI) runTemplate(ctx context.Context, input string, opts templateOpts, changed func(string) bool) error {
	logger := loggerFromContext(ctx)

	p := jig.DefaultParams()
	if input != "" {
		loaded, err := pkgio.ImportParams(input)
		if err != nil {
			return err
		}
		p = loaded
		logger.Debug("loaded template parameters", "path", input)
	}
	applyParamOverrides(&p, opts, changed)

	formats := parseFormats(opts.formats)
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	if err := pipeline.ValidateFormats(formats, pipeline.TemplateFormats); err != nil {
		return err
	}
	if needsConverter(formats) && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported,
			"pdf and png output require %s (brew install librsvg, or apt install librsvg2-bin)", render.ConverterBinary)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Formats:      formats,
		Refresh:      opts.refresh,
		NoLabels:     opts.noLabels,
		NoIndexHoles: opts.noIndexHoles,
		PlateGap:     opts.plateGap,
		DPI:          opts.dpi,
	}
	res, err := withSpinner(ctx, "Rendering template...", func() (*pipeline.TemplateResult, error) {
		return runner.RenderTemplate(ctx, p, pipeOpts)
	})
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   formats,
		input:     input,
		fallback:  "template",
		output:    opts.output,
	})
	if err != nil {
		return err
	}

	printTemplateSummary(res.Geometry)
	for _, path := range paths {
		printFile(path)
	}
	g := res.Geometry
	printStats([]string{
		fmt.Sprintf("%d segments", g.SegmentCount),
		fmt.Sprintf("%d fingers", g.FingerCount()),
		fmt.Sprintf("%d cutouts", g.CutoutCount()),
	}, res.CacheInfo.ComputeHit && res.CacheInfo.RenderHit)
	return nil
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPDF) || slices.Contains(formats, pipeline.FormatPNG)
}

// printTemplateSummary prints the dimensions a maker checks before cutting.
func printTemplateSummary(g jig.Geometry) {
	mm := func(v float64) string { return report.FormatMM(v) + " mm" }

	printSuccess("%s", StyleTitle.Render("Router template"))
	printKeyValue("Offset", fmt.Sprintf("%s (radius difference %s)", mm(g.Offset), mm(g.RadiusDiff)))
	printKeyValue("Notch", fmt.Sprintf("%s × %s", mm(g.TargetSlotLength), mm(g.TargetSlotWidth)))
	printKeyValue("Template slot", fmt.Sprintf("%s × %s", mm(g.TemplateSlotLength), mm(g.TemplateSlotWidth)))
	printKeyValue("Top plates", fmt.Sprintf("2 × %s × %s", mm(g.TopPlateWidth), mm(g.TopPlateHeight)))
	printKeyValue("Side plate", fmt.Sprintf("%s × %s", mm(g.TopPlateWidth), mm(g.SidePlateHeight+g.FingerHeight)))
	printKeyValue("Finger pitch", mm(g.FingerPitch))
	printDetail("Slot centres at %s, index hole at %s", joinMM(g.SlotCenters), mm(g.IndexX))
}

func joinMM(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = report.FormatMM(v)
	}
	return strings.Join(parts, ", ") + " mm"
}
