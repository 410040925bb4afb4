package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/compare"
	"github.com/matzehuels/bedjig/pkg/errors"
	pkgio "github.com/matzehuels/bedjig/pkg/io"
	"github.com/matzehuels/bedjig/pkg/jig"
)

// execute runs the root command with args and a cache under a temp dir.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, want := range []string{"bed", "template", "compare", "materials", "cache", "completion"} {
		found := false
		for _, name := range got {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("root command missing %q (have %v)", want, got)
		}
	}
}

func TestRootAttachesLogger(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetContext(context.Background())

	if err := root.PersistentPreRunE(root, nil); err != nil {
		t.Fatalf("PersistentPreRunE() error = %v", err)
	}
	if got := loggerFromContext(root.Context()); got != c.Logger {
		t.Error("command context should carry the CLI logger")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,PDF", []string{"svg", "pdf"}},
		{" json , , txt ", []string{"json", "txt"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.in)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestApplyBedOverrides(t *testing.T) {
	opts := bedOpts{values: bed.DefaultConfig(), pricing: "m3", span: "clear"}
	opts.values.BedWidth = 1600
	opts.values.RunnerCount = 3
	opts.values.SlatGap = 55

	set := map[string]bool{"width": true, "runners": true, "pricing-unit": true, "span": true}
	cfg := bed.DefaultConfig()
	if err := applyBedOverrides(&cfg, opts, func(name string) bool { return set[name] }); err != nil {
		t.Fatalf("applyBedOverrides() error = %v", err)
	}

	if cfg.BedWidth != 1600 || cfg.RunnerCount != 3 {
		t.Errorf("overrides not applied: width %v, runners %d", cfg.BedWidth, cfg.RunnerCount)
	}
	if cfg.SlatGap != 40 {
		t.Errorf("unset flag overrode slat gap: %v", cfg.SlatGap)
	}
	if cfg.PricingUnit != bed.PricingPerVolume || cfg.SpanModel != bed.SpanClear {
		t.Errorf("pricing %q, span %q", cfg.PricingUnit, cfg.SpanModel)
	}

	opts.pricing = "per-kilo"
	err := applyBedOverrides(&cfg, opts, func(name string) bool { return name == "pricing-unit" })
	if !errors.Is(err, errors.ErrCodeInvalidPricingUnit) {
		t.Errorf("bad pricing unit error = %v, want INVALID_PRICING_UNIT", err)
	}
}

func TestApplyParamOverrides(t *testing.T) {
	opts := templateOpts{values: jig.DefaultParams()}
	opts.values.RouterBitDiameter = 6
	opts.values.SlotCount = 5

	p := jig.DefaultParams()
	applyParamOverrides(&p, opts, func(name string) bool { return name == "bit" })

	if p.RouterBitDiameter != 6 {
		t.Errorf("RouterBitDiameter = %v, want 6", p.RouterBitDiameter)
	}
	if p.SlotCount != 3 {
		t.Errorf("unset flag overrode slot count: %d", p.SlotCount)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		formats  []string
		wantPath string
	}{
		{"derived from input", "", "beds/guest.toml", "pdf", []string{"pdf"}, "beds/guest.pdf"},
		{"fallback name", "", "", "svg", []string{"svg"}, "template.svg"},
		{"explicit single", "out/cut.svg", "", "svg", []string{"svg"}, "out/cut.svg"},
		{"base path", "out/cut", "", "pdf", []string{"svg", "pdf"}, "out/cut.pdf"},
		{"strip known ext", "out/cut.svg", "", "pdf", []string{"svg", "pdf"}, "out/cut.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, "template", tt.format, tt.formats); got != tt.wantPath {
				t.Errorf("outputPath() = %q, want %q", got, tt.wantPath)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		formats:   []string{"svg", "json", "pdf"},
		fallback:  "template",
		output:    filepath.Join(dir, "nested", "jig"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}

	want := []string{filepath.Join(dir, "nested", "jig.svg"), filepath.Join(dir, "nested", "jig.json")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if data, _ := os.ReadFile(want[0]); string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

func TestBedInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bed.toml")

	if err := execute(t, "bed", "--init", "--width", "1600", path); err != nil {
		t.Fatalf("bed --init error = %v", err)
	}
	cfg, err := pkgio.ImportBedConfig(path)
	if err != nil {
		t.Fatalf("ImportBedConfig() error = %v", err)
	}
	if cfg.BedWidth != 1600 || cfg.BedLength != 2000 {
		t.Errorf("written config width %v, length %v", cfg.BedWidth, cfg.BedLength)
	}

	err = execute(t, "bed", "--init", path)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second --init error = %v, want INVALID_PATH", err)
	}
	if err := execute(t, "bed", "--init", "--force", path); err != nil {
		t.Errorf("--init --force error = %v", err)
	}
}

func TestBedCommandWritesReports(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "frame")

	if err := execute(t, "bed", "--runners", "3", "-f", "json,txt", "-o", base, "--date", "2025-01-15"); err != nil {
		t.Fatalf("bed error = %v", err)
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if !bytes.Contains(data, []byte(`"runnerCount": 3`)) {
		t.Errorf("json report does not reflect --runners:\n%s", data)
	}
	txt, err := os.ReadFile(base + ".txt")
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	if !strings.Contains(string(txt), "2025-01-15") {
		t.Errorf("txt report missing date:\n%s", txt)
	}
}

func TestBedCommandErrors(t *testing.T) {
	if err := execute(t, "bed", "-f", "svg"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bed -f svg error = %v, want INVALID_FORMAT", err)
	}
	if err := execute(t, "bed", "--runners", "0"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bed --runners 0 error = %v, want INVALID_CONFIG", err)
	}
	if err := execute(t, "bed", filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestTemplateCommand(t *testing.T) {
	base := filepath.Join(t.TempDir(), "jig")

	if err := execute(t, "template", "--slots", "4", "-f", "svg,json", "-o", base); err != nil {
		t.Fatalf("template error = %v", err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts with %q", svg[:min(len(svg), 20)])
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestTemplateCommandNegativeOffset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "jig.svg")
	err := execute(t, "template", "--bit", "20", "--copy-ring", "17", "-o", out)
	if !errors.Is(err, errors.ErrCodeNegativeOffset) {
		t.Errorf("template error = %v, want NEGATIVE_OFFSET", err)
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("no file should be written for invalid parameters")
	}
}

func TestTemplateInitRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.toml")
	if err := execute(t, "template", "--init", "--slots", "5", path); err != nil {
		t.Fatalf("template --init error = %v", err)
	}
	p, err := pkgio.ImportParams(path)
	if err != nil {
		t.Fatalf("ImportParams() error = %v", err)
	}
	want := jig.DefaultParams()
	want.SlotCount = 5
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func writeConfig(t *testing.T, dir, name string, edit func(*bed.Config)) string {
	t.Helper()
	cfg := bed.DefaultConfig()
	cfg.Name = ""
	edit(&cfg)
	path := filepath.Join(dir, name)
	if err := pkgio.ExportBedConfigTOML(cfg, path); err != nil {
		t.Fatalf("ExportBedConfigTOML() error = %v", err)
	}
	return path
}

func TestLoadComparison(t *testing.T) {
	dir := t.TempDir()
	standard := writeConfig(t, dir, "standard.toml", func(*bed.Config) {})
	thin := writeConfig(t, dir, "thin.toml", func(c *bed.Config) { c.SlatHeight = 20 })

	entries, err := loadComparison([]string{standard, thin})
	if err != nil {
		t.Fatalf("loadComparison() error = %v", err)
	}
	if got := []string{entries[0].Name, entries[1].Name}; got[0] != "standard" || got[1] != "thin" {
		t.Errorf("names = %v, want file names", got)
	}

	out := compareTable(entries, -1)
	for _, want := range []string{"standard", "thin", "188.00", iconBest} {
		if !strings.Contains(out, want) {
			t.Errorf("compare table missing %q:\n%s", want, out)
		}
	}

	bad := writeConfig(t, dir, "bad.toml", func(c *bed.Config) { c.RunnerCount = 0 })
	if _, err := loadComparison([]string{standard, bad}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid config error = %v, want INVALID_CONFIG", err)
	}
}

func TestCompareModel(t *testing.T) {
	standard, thin := bed.DefaultConfig(), bed.DefaultConfig()
	standard.Name, thin.Name = "standard", "thin"
	thin.SlatHeight = 20
	thin.PricePerUnitSlat = 1

	entries := compare.Build([]bed.Config{standard, thin})
	compare.Sort(entries, compare.ByPrice)
	m := NewCompareModel(entries, compare.ByPrice)

	if m.Entries[0].Name != "thin" {
		t.Fatalf("first by price = %s, want thin", m.Entries[0].Name)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(CompareModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}

	// Sorting by sturdiness moves "standard" to the top; the cursor follows it.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = next.(CompareModel)
	if m.Key != compare.BySturdiness {
		t.Errorf("Key = %s, want sturdiness", m.Key)
	}
	if m.Entries[m.Cursor].Name != "standard" || m.Cursor != 0 {
		t.Errorf("cursor on %s at %d, want standard at 0", m.Entries[m.Cursor].Name, m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(CompareModel)
	if !m.Detail || !strings.Contains(m.View(), "Runner") {
		t.Error("enter should show the cut list")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestNextSortKey(t *testing.T) {
	k := compare.ByPrice
	seen := map[compare.SortKey]bool{}
	for range compare.SortKeys {
		seen[k] = true
		k = nextSortKey(k)
	}
	if len(seen) != len(compare.SortKeys) || k != compare.ByPrice {
		t.Errorf("nextSortKey does not cycle through all keys: %v", seen)
	}
}

func TestMaterialsTable(t *testing.T) {
	out := materialsTable(bed.Materials())
	for _, m := range bed.Materials() {
		if !strings.Contains(out, m.ID) || !strings.Contains(out, m.Name) {
			t.Errorf("materials table missing %s:\n%s", m.ID, out)
		}
	}
	if !strings.Contains(out, "11,000") {
		t.Errorf("E-modulus not formatted:\n%s", out)
	}
	if !strings.Contains(out, bed.DefaultMaterialID+" (default)") {
		t.Error("default material not marked")
	}
}

func TestCompletionCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})

	if err := root.Execute(); err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(buf.String(), appName) {
		t.Error("bash completion should mention the command name")
	}
	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	if err := execute(t, "cache", "path"); err != nil {
		t.Errorf("cache path error = %v", err)
	}
	if err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear on empty cache error = %v", err)
	}
}
