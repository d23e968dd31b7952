package render

import (
	"bytes"
	"fmt"

	"wordler/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used by generated charts
type ChartPalette struct {
	Background drawing.Color
	Text       drawing.Color
	Solved     drawing.Color
	Failed     drawing.Color
}

// DefaultPalette matches the leaderboard image colors
var DefaultPalette = ChartPalette{
	Background: drawing.Color{R: 18, G: 20, B: 18, A: 255},
	Text:       drawing.Color{R: 235, G: 235, B: 235, A: 255},
	Solved:     drawing.Color{R: 106, G: 170, B: 100, A: 255},
	Failed:     drawing.Color{R: 120, G: 124, B: 126, A: 255},
}

// GenerateDistributionChart produces a PNG bar chart of a player's guess distribution
func GenerateDistributionChart(title string, stats models.PlayerStats, palette ChartPalette) ([]byte, error) {
	if stats.TotalGames == 0 {
		return renderNoDataPlaceholder("No results yet", palette)
	}

	bars := make([]chart.Value, 0, len(models.AttemptsLabels))
	for _, label := range models.AttemptsLabels {
		fill := palette.Solved
		if label == models.AttemptsFailed {
			fill = palette.Failed
		}
		bars = append(bars, chart.Value{
			Label: string(label),
			Value: float64(stats.Distribution[label]),
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		})
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      600,
		Height:     360,
		BarWidth:   50,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: palette.Text},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(stats)},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render distribution chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// axisMax returns a y-axis ceiling at least one above the tallest bar
func axisMax(stats models.PlayerStats) float64 {
	peak := 0
	for _, count := range stats.Distribution {
		if count > peak {
			peak = count
		}
	}
	return float64(peak + 1)
}

func renderNoDataPlaceholder(msg string, palette ChartPalette) ([]byte, error) {
	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render placeholder chart: %w", err)
	}

	return buffer.Bytes(), nil
}
