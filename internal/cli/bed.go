package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/errors"
	pkgio "github.com/matzehuels/bedjig/pkg/io"
	"github.com/matzehuels/bedjig/pkg/pipeline"
	"github.com/matzehuels/bedjig/pkg/report"
)

// defaultBedConfigFile is written by "bed --init" without a path.
const defaultBedConfigFile = "bed.toml"

// bedOpts holds the command-line flags for the bed command.
type bedOpts struct {
	output  string
	formats string
	date    string
	noCache bool
	refresh bool
	init    bool
	force   bool

	values  bed.Config // targets of the dimension flags
	pricing string
	span    string
}

// bedOverride copies one flag value onto a loaded configuration.
type bedOverride struct {
	flag  string
	apply func(dst *bed.Config, src bed.Config)
}

// bedOverrides lists the dimension flags. A flag only overrides the
// configuration file when it was set on the command line.
var bedOverrides = []bedOverride{
	{"name", func(d *bed.Config, s bed.Config) { d.Name = s.Name }},
	{"width", func(d *bed.Config, s bed.Config) { d.BedWidth = s.BedWidth }},
	{"length", func(d *bed.Config, s bed.Config) { d.BedLength = s.BedLength }},
	{"height", func(d *bed.Config, s bed.Config) { d.BedHeight = s.BedHeight }},
	{"runner-width", func(d *bed.Config, s bed.Config) { d.RunnerWidth = s.RunnerWidth }},
	{"runner-height", func(d *bed.Config, s bed.Config) { d.RunnerHeight = s.RunnerHeight }},
	{"runners", func(d *bed.Config, s bed.Config) { d.RunnerCount = s.RunnerCount }},
	{"runner-margin", func(d *bed.Config, s bed.Config) { d.RunnerMargin = s.RunnerMargin }},
	{"slat-width", func(d *bed.Config, s bed.Config) { d.SlatWidth = s.SlatWidth }},
	{"slat-height", func(d *bed.Config, s bed.Config) { d.SlatHeight = s.SlatHeight }},
	{"slat-gap", func(d *bed.Config, s bed.Config) { d.SlatGap = s.SlatGap }},
	{"material", func(d *bed.Config, s bed.Config) { d.MaterialID = s.MaterialID }},
	{"price-runner", func(d *bed.Config, s bed.Config) { d.PricePerUnitRunner = s.PricePerUnitRunner }},
	{"price-slat", func(d *bed.Config, s bed.Config) { d.PricePerUnitSlat = s.PricePerUnitSlat }},
}

// bedCommand creates the bed command.
func (c *CLI) bedCommand() *cobra.Command {
	opts := bedOpts{values: bed.DefaultConfig()}
	opts.pricing = string(opts.values.PricingUnit)
	opts.span = string(opts.values.SpanModel)

	cmd := &cobra.Command{
		Use:   "bed [config.toml|config.json]",
		Short: "Compute a bed frame, its cut list and price",
		Long: `Compute a bed frame layout from a configuration file, or from the built-in
defaults when no file is given. Flags override values from the file.

Without --format the cut list and metrics are printed to stdout. With --format
the requested reports are written to files next to the input:

  txt    plain-text cut list
  json   parts, notches, metrics and cut list
  pdf    printable cut list
  xlsx   spreadsheet cut list

Use --init to write the default configuration as a starting point.`,
		Example: `  bedjig bed --init
  bedjig bed bed.toml
  bedjig bed bed.toml --runners 3 -f pdf,xlsx
  bedjig bed --width 1600 --span clear -f json -o frame.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			changed := cmd.Flags().Changed
			if opts.init {
				return runBedInit(input, opts, changed)
			}
			return c.runBed(cmd.Context(), input, opts, changed)
		},
	}

	d := opts.values
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	f.StringVarP(&opts.formats, "format", "f", "", "write report(s): txt, json, pdf, xlsx (comma-separated)")
	f.StringVar(&opts.date, "date", "", "date printed on reports (default: today)")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	f.BoolVar(&opts.init, "init", false, "write a default configuration file and exit")
	f.BoolVar(&opts.force, "force", false, "overwrite an existing file with --init")

	f.StringVar(&opts.values.Name, "name", d.Name, "configuration name")
	f.Float64Var(&opts.values.BedWidth, "width", d.BedWidth, "bed width (mm)")
	f.Float64Var(&opts.values.BedLength, "length", d.BedLength, "bed length (mm)")
	f.Float64Var(&opts.values.BedHeight, "height", d.BedHeight, "bed height (mm)")
	f.Float64Var(&opts.values.RunnerWidth, "runner-width", d.RunnerWidth, "runner width (mm)")
	f.Float64Var(&opts.values.RunnerHeight, "runner-height", d.RunnerHeight, "runner height (mm)")
	f.IntVar(&opts.values.RunnerCount, "runners", d.RunnerCount, "number of runners")
	f.Float64Var(&opts.values.RunnerMargin, "runner-margin", d.RunnerMargin, "distance from bed edge to outer runner (mm)")
	f.Float64Var(&opts.values.SlatWidth, "slat-width", d.SlatWidth, "slat width (mm)")
	f.Float64Var(&opts.values.SlatHeight, "slat-height", d.SlatHeight, "slat height (mm)")
	f.Float64Var(&opts.values.SlatGap, "slat-gap", d.SlatGap, "gap between slats (mm)")
	f.StringVar(&opts.values.MaterialID, "material", d.MaterialID, "material id (see 'bedjig materials')")
	f.StringVar(&opts.pricing, "pricing-unit", opts.pricing, "pricing unit: per-meter, per-volume, per-piece")
	f.Float64Var(&opts.values.PricePerUnitRunner, "price-runner", d.PricePerUnitRunner, "runner price per unit")
	f.Float64Var(&opts.values.PricePerUnitSlat, "price-slat", d.PricePerUnitSlat, "slat price per unit")
	f.StringVar(&opts.span, "span", opts.span, "deflection span: center (runner spacing) or clear (between runners)")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.BedFormats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("pricing-unit", cobra.FixedCompletions(
		[]string{string(bed.PricingPerMeter), string(bed.PricingPerVolume), string(bed.PricingPerPiece)},
		cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("span", cobra.FixedCompletions(
		[]string{string(bed.SpanCenter), string(bed.SpanClear)}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("material", completeMaterials)

	return cmd
}

// applyBedOverrides copies every flag that was set onto cfg.
func applyBedOverrides(cfg *bed.Config, opts bedOpts, changed func(string) bool) error {
	for _, o := range bedOverrides {
		if changed(o.flag) {
			o.apply(cfg, opts.values)
		}
	}
	if changed("pricing-unit") {
		unit, err := bed.ParsePricingUnit(opts.pricing)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPricingUnit, err, "--pricing-unit")
		}
		cfg.PricingUnit = unit
	}
	if changed("span") {
		cfg.SpanModel = bed.SpanModel(opts.span)
	}
	return nil
}

// runBedInit writes the default configuration, with any flags applied.
func runBedInit(path string, opts bedOpts, changed func(string) bool) error {
	cfg := bed.DefaultConfig()
	if err := applyBedOverrides(&cfg, opts, changed); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if path == "" {
		path = defaultBedConfigFile
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
	if err := pkgio.WriteBedConfigTOML(cfg, out); err != nil {
		return err
	}
	if path == "-" {
		return nil
	}

	printSuccess("Wrote default configuration")
	printFile(path)
	printNewline()
	printNextStep("Compute", "bedjig bed "+path)
	return nil
}

// runBed loads the configuration, computes the layout and prints or writes
// the reports.
func (c *CLI) runBed(ctx context.Context, input string, opts bedOpts, changed func(string) bool) error {
	logger := loggerFromContext(ctx)

	cfg := bed.DefaultConfig()
	if input != "" {
		loaded, err := pkgio.ImportBedConfig(input)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debug("loaded configuration", "path", input, "name", cfg.Name)
	}
	if err := applyBedOverrides(&cfg, opts, changed); err != nil {
		return err
	}
	warnUnknownMaterial(cfg.MaterialID)

	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats, pipeline.BedFormats); err != nil {
		return err
	}
	printReport := len(formats) == 0
	if printReport {
		formats = []string{pipeline.FormatTXT}
	}

	date := opts.date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.RenderBed(ctx, cfg, pipeline.Options{
		Formats: formats,
		Refresh: opts.refresh,
		Date:    date,
	})
	if err != nil {
		return err
	}
	if err := res.Layout.Metrics.Check(); err != nil {
		printWarning("%s", errors.UserMessage(err))
	}

	if printReport {
		fmt.Print(string(res.Artifacts[pipeline.FormatTXT]))
		return nil
	}

	prog := newProgress(logger)
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   formats,
		input:     input,
		fallback:  "bed",
		output:    opts.output,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	printBedSummary(cfg, res.Layout)
	for _, p := range paths {
		printFile(p)
	}
	printStats([]string{
		fmt.Sprintf("%d runners", res.Layout.Metrics.RunnerCount),
		fmt.Sprintf("%d slats", res.Layout.Metrics.SlatCount),
	}, res.CacheInfo.ComputeHit && res.CacheInfo.RenderHit)
	return nil
}

// printBedSummary prints the headline metrics of a layout.
func printBedSummary(cfg bed.Config, l bed.Layout) {
	m := l.Metrics
	title := cfg.Name
	if title == "" {
		title = "Bed frame"
	}

	printSuccess("%s", StyleTitle.Render(title))
	printKeyValue("Material", m.Material.Name)
	printKeyValue("Runners", fmt.Sprintf("%d × %s mm", m.RunnerCount, report.FormatMM(cfg.BedLength)))
	printKeyValue("Slats", fmt.Sprintf("%d × %s mm", m.SlatCount, report.FormatMM(cfg.BedWidth)))
	printKeyValue("Wood", fmt.Sprintf("%s + %s · %s",
		report.FormatMeters(m.TotalRunnerLengthM), report.FormatMeters(m.TotalSlatLengthM), report.FormatVolume(m.TotalVolumeM3)))
	printKeyValue("Price", fmt.Sprintf("%s (%s)", StyleNumber.Render(report.FormatPrice(m.TotalPrice)), cfg.PricingUnit))
	printKeyValue("Deflection", fmt.Sprintf("%s mm of %s mm allowed  %s",
		report.FormatDeflection(m.DeflectionMm), report.FormatDeflection(m.DeflectionLimitMm), verdict(m.IsSturdy)))
	printKeyValue("Sturdiness", fmt.Sprintf("%d/100 (%s span %s mm)", m.SturdinessScore, m.SpanModel, report.FormatMM(m.SpanMm)))
	if cfg.RunnerMaterialLink != "" {
		printKeyValue("Runner stock", StyleLink.Render(cfg.RunnerMaterialLink))
	}
	if cfg.SlatMaterialLink != "" {
		printKeyValue("Slat stock", StyleLink.Render(cfg.SlatMaterialLink))
	}
}

// warnUnknownMaterial reports a material id the catalog does not know.
// Compute falls back to the default material in that case.
func warnUnknownMaterial(id string) {
	if _, ok := bed.LookupMaterial(id); ok {
		return
	}
	fallback, _ := bed.LookupMaterial(bed.DefaultMaterialID)
	printWarning("unknown material %q, using %s", id, fallback.Name)
}
