package render

import (
	"bytes"
	"fmt"
	"time"

	"wordler/models"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

// TableColumn defines a column in the leaderboard table
type TableColumn struct {
	Header    string
	XPosition int
	ColorRGB  [3]float64
}

// TableRow represents a single row of data
type TableRow struct {
	Rank int
	Data []string
}

// TableStyle defines the visual style of the table
type TableStyle struct {
	Width       int
	MinHeight   int
	Padding     int
	RowHeight   int
	PlaceColors map[int][4]float64 // RGBA row highlight by rank
}

// NameResolver turns a player id into a display name
type NameResolver func(playerID string) string

// LeaderboardImageGenerator renders leaderboards as PNG tables
type LeaderboardImageGenerator struct {
	style TableStyle
}

// NewLeaderboardImageGenerator creates a new image generator with default style
func NewLeaderboardImageGenerator() *LeaderboardImageGenerator {
	return &LeaderboardImageGenerator{
		style: TableStyle{
			Width:     400,
			MinHeight: 120,
			Padding:   15,
			RowHeight: 26,
			PlaceColors: map[int][4]float64{
				1: {1, 0.84, 0, 0.1},
				2: {0.8, 0.8, 0.8, 0.08},
				3: {0.8, 0.5, 0.2, 0.06},
			},
		},
	}
}

// GenerateGameLeaderboard renders one game's ranked results
func (g *LeaderboardImageGenerator) GenerateGameLeaderboard(gameNumber int, ranked []models.RankedResult, names NameResolver) ([]byte, error) {
	p := g.style.Padding
	columns := []TableColumn{
		{Header: "#", XPosition: p, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "Player", XPosition: p + 30, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Tries", XPosition: p + 180, ColorRGB: [3]float64{0.85, 1, 0.85}},
		{Header: "Base", XPosition: p + 235, ColorRGB: [3]float64{0.85, 0.85, 1}},
		{Header: "Bonus", XPosition: p + 285, ColorRGB: [3]float64{1, 0.95, 0.8}},
		{Header: "Total", XPosition: p + 335, ColorRGB: [3]float64{1, 1, 1}},
	}

	rows := make([]TableRow, len(ranked))
	for i, entry := range ranked {
		r := entry.Result
		rows[i] = TableRow{
			Rank: entry.Rank,
			Data: []string{
				fmt.Sprintf("%d", entry.Rank),
				truncate(names(r.PlayerID), 16),
				string(r.AttemptsLabel) + "/6",
				fmt.Sprintf("%d", r.Score.Base),
				fmt.Sprintf("+%d", r.Score.Bonus),
				fmt.Sprintf("%d", r.Score.Total),
			},
		}
	}

	return g.generateTable("Wordle "+models.FormatNumber(gameNumber), columns, rows)
}

// GenerateStandings renders a cross-player standings table
func (g *LeaderboardImageGenerator) GenerateStandings(title string, standings []models.PlayerStanding, names NameResolver) ([]byte, error) {
	p := g.style.Padding
	columns := []TableColumn{
		{Header: "#", XPosition: p, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "Player", XPosition: p + 30, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Games", XPosition: p + 170, ColorRGB: [3]float64{0.85, 0.85, 1}},
		{Header: "Solve%", XPosition: p + 220, ColorRGB: [3]float64{0.85, 1, 0.85}},
		{Header: "Avg", XPosition: p + 285, ColorRGB: [3]float64{1, 0.95, 0.8}},
		{Header: "Total", XPosition: p + 325, ColorRGB: [3]float64{1, 1, 1}},
	}

	rows := make([]TableRow, len(standings))
	for i, standing := range standings {
		avg := "-"
		if standing.Stats.SolvedGames > 0 {
			avg = fmt.Sprintf("%.2f", standing.Stats.AverageAttempts)
		}
		rows[i] = TableRow{
			Rank: standing.Rank,
			Data: []string{
				fmt.Sprintf("%d", standing.Rank),
				truncate(names(standing.PlayerID), 14),
				fmt.Sprintf("%d", standing.Stats.TotalGames),
				fmt.Sprintf("%.0f%%", standing.Stats.SolveRate),
				avg,
				models.FormatNumber(standing.Stats.TotalScore),
			},
		}
	}

	return g.generateTable(title, columns, rows)
}

// generateTable creates the actual image
func (g *LeaderboardImageGenerator) generateTable(title string, columns []TableColumn, rows []TableRow) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"duration_ms": time.Since(start).Milliseconds(),
			"row_count":   len(rows),
		}).Debug("Leaderboard image generation completed")
	}()

	// Title (30px) + header (30px) + rows + bottom padding
	height := 30 + 30 + len(rows)*g.style.RowHeight + g.style.Padding
	if height < g.style.MinHeight {
		height = g.style.MinHeight
	}

	dc := gg.NewContext(g.style.Width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.07+t*0.02, 0.08+t*0.04, 0.07+t*0.02)
		dc.DrawLine(0, float64(i), float64(g.style.Width), float64(i))
		dc.Stroke()
	}

	titleFace, err := loadFont(gobold.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	rankFace, err := loadFont(gobold.TTF, 9)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB(0.42, 0.67, 0.39)
	drawSharpText(dc, title, float64(g.style.Padding), 20)

	y := float64(50)
	dc.SetFontFace(face)

	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(g.style.Width), 20)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for _, col := range columns {
		drawSharpText(dc, col.Header, float64(col.XPosition), y)
	}

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(g.style.Width), y+8)
	dc.Stroke()

	y += 30
	for _, row := range rows {
		if color, ok := g.style.PlaceColors[row.Rank]; ok {
			dc.SetRGBA(color[0], color[1], color[2], color[3])
		} else {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.02)
		}
		dc.DrawRectangle(0, y-15, float64(g.style.Width), float64(g.style.RowHeight))
		dc.Fill()

		if color, ok := g.style.PlaceColors[row.Rank]; ok {
			// Opaque medal circle with the rank inside
			dc.SetRGB(color[0], color[1], color[2])
			dc.DrawCircle(float64(g.style.Padding+3), y-4, 6)
			dc.Fill()

			dc.SetRGB(0, 0, 0)
			dc.SetFontFace(rankFace)
			dc.DrawStringAnchored(row.Data[0], float64(g.style.Padding+3), y-5, 0.5, 0.4)
			dc.SetFontFace(face)
		} else {
			c := columns[0].ColorRGB
			dc.SetRGB(c[0], c[1], c[2])
			drawSharpText(dc, row.Data[0], float64(columns[0].XPosition), y)
		}

		for j := 1; j < len(columns) && j < len(row.Data); j++ {
			c := columns[j].ColorRGB
			dc.SetRGB(c[0], c[1], c[2])
			drawSharpText(dc, row.Data[j], float64(columns[j].XPosition), y)
		}

		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// drawSharpText draws text over a faint offset shadow
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	}), nil
}

func truncate(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-1]) + "…"
}
