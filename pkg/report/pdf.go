package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/matzehuels/bedjig/pkg/errors"
)

// Column widths on maroto's 12-column grid, in cutListHeaders order.
var pdfColumns = []int{2, 1, 3, 1, 2, 1, 2}

var (
	colorHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorStripe   = &props.Color{Red: 245, Green: 245, Blue: 245}
	colorSummary  = &props.Color{Red: 240, Green: 240, Blue: 240}
	colorMuted    = &props.Color{Red: 80, Green: 80, Blue: 80}
	colorGood     = &props.Color{Red: 40, Green: 140, Blue: 70}
	colorBad      = &props.Color{Red: 190, Green: 60, Blue: 50}
)

// PDF renders r as an A4 portrait cut list.
func PDF(r Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	addHeader(m, r)
	addTableHeader(m)
	for i, rw := range tableRows(r) {
		addTableRow(m, rw, i%2 == 1)
	}
	addTotals(m, r)
	addVerdict(m, r)

	doc, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "generate cut list PDF")
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, r Report) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(r.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	muted := props.Text{Size: 9, Align: align.Left, Color: colorMuted}
	mutedRight := muted
	mutedRight.Align = align.Right
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Material: %s", r.Material), muted)),
			col.New(6).Add(text.New(r.Date, mutedRight)),
		),
	)
	m.AddRows(row.New(4))
}

func addTableHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	cell := &props.Cell{BackgroundColor: colorHeaderBg}

	cols := make([]core.Col, len(cutListHeaders))
	for i, h := range cutListHeaders {
		cols[i] = col.New(pdfColumns[i]).Add(text.New(h, headerText)).WithStyle(cell)
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addTableRow(m core.Maroto, cells []string, striped bool) {
	body := props.Text{Size: 8, Align: align.Center}
	left := body
	left.Align = align.Left

	cols := make([]core.Col, len(cells))
	for i, c := range cells {
		style := body
		if i == 0 {
			style = left
		}
		cols[i] = col.New(pdfColumns[i]).Add(text.New(c, style))
		if striped {
			cols[i] = cols[i].WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addTotals(m core.Maroto, r Report) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: colorSummary}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}

	for _, s := range r.Totals {
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(s.Label, label)).WithStyle(cell),
				col.New(4).Add(text.New(s.Value, value)).WithStyle(cell),
			),
		)
	}
}

func addVerdict(m core.Maroto, r Report) {
	color := colorBad
	if r.Sturdy {
		color = colorGood
	}
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(r.Verdict, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: color,
				}),
			),
		),
	)
}
