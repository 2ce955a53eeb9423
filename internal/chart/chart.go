package chart

import (
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"streamchart/internal/models"
)

// Renderer draws a time series as a PNG line chart.
type Renderer struct {
	interval time.Duration
	width    int
	height   int
}

// New creates a renderer for series bucketed at the given interval.
func New(interval time.Duration) *Renderer {
	return &Renderer{
		interval: interval,
		width:    1280,
		height:   640,
	}
}

// Render writes the series to a PNG file at path. A single attempt, no retry.
func (r *Renderer) Render(series models.TimeSeries, path string) error {
	if len(series) == 0 {
		return models.ErrNoValidRecords
	}

	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	maxCount := 0
	for i, b := range series {
		xs[i] = b.Start
		ys[i] = float64(b.Count)
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	graph := chart.Chart{
		Title:  r.title(),
		Width:  r.width,
		Height: r.height,
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02 15:04"),
		},
		YAxis: chart.YAxis{
			Name: "Requests",
			// Anchor at zero with headroom so a flat series still renders.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "requests",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(40),
				},
			},
		},
	}

	// A lone bucket has a zero-width x range; widen it by one interval each way.
	if len(series) == 1 {
		start := series[0].Start
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: float64(start.Add(-r.interval).UnixNano()),
			Max: float64(start.Add(r.interval).UnixNano()),
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrOutputUnwritable, err)
	}

	if err := graph.Render(chart.PNG, out); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("render chart: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrOutputUnwritable, err)
	}
	return nil
}

func (r *Renderer) title() string {
	if r.interval == time.Minute {
		return "Requests per Minute"
	}
	return fmt.Sprintf("Requests per %s", r.interval)
}
