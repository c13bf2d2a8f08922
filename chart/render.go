package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure geometry. 10x5 inches at 100 DPI gives a 1000x500 pixel PNG.
const (
	Width  = 10 * vg.Inch
	Height = 5 * vg.Inch
	DPI    = 100
)

var (
	barColor  = color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	edgeColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	gridColor = color.NRGBA{R: 128, G: 128, B: 128, A: 179} // alpha 0.7
)

// RenderBarChart draws series as vertical bars and returns the PNG bytes.
// An empty series yields axes without bars rather than an error.
func RenderBarChart(series Series, xLabel, yLabel string) ([]byte, error) {
	bp, err := buildBarPlot(series, xLabel, yLabel)
	if err != nil {
		return nil, err
	}

	c := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))
	bp.plot.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// barPlot keeps the pieces of an assembled plot reachable. bars is nil for an
// empty series.
type barPlot struct {
	plot *plot.Plot
	bars *plotter.BarChart
	grid *plotter.Grid
}

func buildBarPlot(series Series, xLabel, yLabel string) (*barPlot, error) {
	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(grid)

	p.Y.Min = 0
	if len(series) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Max = 1
		return &barPlot{plot: p, grid: grid}, nil
	}

	bars, err := plotter.NewBarChart(plotter.Values(series.Values()), barWidth(len(series)))
	if err != nil {
		return nil, fmt.Errorf("build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Color = edgeColor
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)
	p.NominalX(series.Categories()...)

	return &barPlot{plot: p, bars: bars, grid: grid}, nil
}

// barWidth keeps bars roughly 60% of the slot width on a 10 inch figure.
func barWidth(n int) vg.Length {
	w := vg.Points(600 / float64(n) * 0.6)
	switch {
	case w < vg.Points(4):
		return vg.Points(4)
	case w > vg.Points(60):
		return vg.Points(60)
	}
	return w
}
