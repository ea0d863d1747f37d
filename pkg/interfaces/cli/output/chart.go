package output

import (
	"fmt"
	"html"
	"strings"

	"github.com/vsinha/pharmacy/pkg/application/dto"
	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// BenefitChart plots each drug's benefit per day as an SVG line chart
type BenefitChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	Days         int
}

var lineColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f"}

// NewBenefitChart sizes a chart for the simulation result
func NewBenefitChart(result *dto.SimulationResult) *BenefitChart {
	return &BenefitChart{
		Width:        900,
		Height:       400 + 20*len(result.Initial),
		MarginLeft:   60,
		MarginTop:    50,
		MarginRight:  40,
		MarginBottom: 60 + 20*len(result.Initial),
		Days:         len(result.Snapshots),
	}
}

// GenerateSVG renders the chart
func (bc *BenefitChart) GenerateSVG(result *dto.SimulationResult) string {
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, bc.Width, bc.Height))
	svg.WriteString(`<style>`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.legend { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, bc.Width, bc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title">Benefit by Day</text>`, bc.MarginLeft))

	bc.drawGrid(&svg)

	for i := range result.Initial {
		color := lineColors[i%len(lineColors)]
		points := make([]string, 0, bc.Days+1)
		points = append(points, bc.point(0, result.Initial[i].Benefit))
		for _, snapshot := range result.Snapshots {
			points = append(points, bc.point(snapshot.Day, snapshot.Drugs[i].Benefit))
		}
		svg.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="2" points="%s"/>`,
			color, strings.Join(points, " ")))

		y := bc.Height - bc.MarginBottom + 40 + 20*i
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`, bc.MarginLeft, y-10, color))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="legend">%s (%s)</text>`,
			bc.MarginLeft+18, y, html.EscapeString(result.Initial[i].Name), result.Initial[i].BatchNumber))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (bc *BenefitChart) plotWidth() int {
	return bc.Width - bc.MarginLeft - bc.MarginRight
}

func (bc *BenefitChart) plotHeight() int {
	return bc.Height - bc.MarginTop - bc.MarginBottom
}

func (bc *BenefitChart) point(day, benefit int) string {
	x := bc.MarginLeft
	if bc.Days > 0 {
		x += day * bc.plotWidth() / bc.Days
	}
	return fmt.Sprintf("%d,%d", x, bc.benefitY(benefit))
}

// benefitY maps a benefit to a y coordinate, pinning values outside
// [MinBenefit, MaxBenefit] to the plot edge
func (bc *BenefitChart) benefitY(benefit int) int {
	benefit = min(max(benefit, entities.MinBenefit), entities.MaxBenefit)
	return bc.MarginTop + bc.plotHeight() - benefit*bc.plotHeight()/entities.MaxBenefit
}

// drawGrid draws horizontal benefit lines every 10 points and the day axis
func (bc *BenefitChart) drawGrid(svg *strings.Builder) {
	for benefit := entities.MinBenefit; benefit <= entities.MaxBenefit; benefit += 10 {
		y := bc.benefitY(benefit)
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			bc.MarginLeft, y, bc.Width-bc.MarginRight, y))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label">%d</text>`, bc.MarginLeft-25, y+4, benefit))
	}

	step := 1
	if bc.Days > 20 {
		step = bc.Days / 10
	}
	axisY := bc.MarginTop + bc.plotHeight() + 15
	for day := 0; day <= bc.Days; day += step {
		x := bc.MarginLeft
		if bc.Days > 0 {
			x += day * bc.plotWidth() / bc.Days
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label">%d</text>`, x, axisY, day))
	}
}
