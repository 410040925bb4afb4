package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/bedjig/pkg/bed"
)

func defaultReport() Report {
	cfg := bed.DefaultConfig()
	return Build(cfg, bed.Compute(cfg), "2025-01-15")
}

func TestBuild(t *testing.T) {
	r := defaultReport()

	if r.Title != "My Custom Bed" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Material == "" {
		t.Errorf("Material = %q", r.Material)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(r.Rows))
	}
	runner := r.Rows[0]
	if runner.Part != "Runner" || runner.Qty != 2 || runner.Notches != 20 || runner.NotchSize != "60 x 40" {
		t.Errorf("runner row = %+v", runner)
	}
	if !r.Sturdy || !strings.HasPrefix(r.Verdict, "Sturdy") {
		t.Errorf("Sturdy = %v, Verdict = %q", r.Sturdy, r.Verdict)
	}

	var price string
	for _, s := range r.Totals {
		if strings.HasPrefix(s.Label, "Price") {
			price = s.Value
		}
	}
	if price != "188.00" {
		t.Errorf("price = %q, want 188.00", price)
	}
}

func TestBuildUntitled(t *testing.T) {
	cfg := bed.DefaultConfig()
	cfg.Name = ""
	if r := Build(cfg, bed.Compute(cfg), ""); r.Title != "Bed frame" {
		t.Errorf("Title = %q, want fallback", r.Title)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"price", FormatPrice(1234.5), "1,234.50"},
				{"mm", FormatMM(1300), "1,300"},
		{"mm fraction", FormatMM(12.5), "12.5"},
		{"meters", FormatMeters(4), "4 m"},
		{"volume", FormatVolume(0.1984), "0.1984 m³"},
		{"deflection", FormatDeflection(1.08359), "1.084"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	out := Text(defaultReport())

	for _, want := range []string{
		"My Custom Bed",
		"Runner",
		"2000 x 100 x 160",
		"Slat",
		"1400 x 60 x 80",
		"188.00",
		"Sturdy",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("text report contains ANSI escapes")
	}
}

func TestTextNonFinite(t *testing.T) {
	cfg := bed.DefaultConfig()
	cfg.SlatWidth = 0
	out := Text(Build(cfg, bed.Compute(cfg), ""))
	if !strings.Contains(out, "n/a") {
		t.Errorf("non-finite metrics should print n/a:\n%s", out)
	}
}

func TestPDF(t *testing.T) {
	result, err := PDF(defaultReport())
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if len(result) < 5 || string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header")
	}
}

func TestXLSX(t *testing.T) {
	result, err := XLSX(defaultReport())
	if err != nil {
		t.Fatalf("XLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Cut list" {
		t.Errorf("sheets = %v", sheets)
	}
	if v, _ := f.GetCellValue("Cut list", "A6"); v != "Runner" {
		t.Errorf("A6 = %q, want Runner", v)
	}
	if v, _ := f.GetCellValue("Cut list", "B7"); v != "20" {
		t.Errorf("B7 = %q, want 20 slats", v)
	}
}

func TestSanitizeCell(t *testing.T) {
	if got := sanitizeCell("=SUM(A1)"); got != "'=SUM(A1)" {
		t.Errorf("sanitizeCell = %q", got)
	}
	if got := sanitizeCell("Guest bed"); got != "Guest bed" {
		t.Errorf("sanitizeCell = %q", got)
	}
}
