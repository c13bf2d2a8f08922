package main

import (
	"bytes"
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// renderVisitsChart draws the daily visit counts as a PNG time series.
func renderVisitsChart(days []DailyCount) ([]byte, error) {
	if len(days) < 2 {
		return nil, fmt.Errorf("visits chart needs at least two days, got %d", len(days))
	}

	xs := make([]time.Time, len(days))
	ys := make([]float64, len(days))
	maxY := 1.0
	for i, d := range days {
		xs[i] = d.Day
		ys[i] = float64(d.Visits)
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	st := gochart.Style{
		StrokeColor: gochart.ColorBlue,
		StrokeWidth: 2,
		DotColor:    gochart.ColorBlue,
		DotWidth:    3,
	}
	ch := gochart.Chart{
		Width:      800,
		Height:     300,
		Background: gochart.Style{Padding: gochart.Box{Top: 14, Left: 16, Right: 12, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           "Day",
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name:  "Visits",
			Range: &gochart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: "Visits", XValues: xs, YValues: ys, Style: st},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render visits chart: %w", err)
	}
	return buf.Bytes(), nil
}
