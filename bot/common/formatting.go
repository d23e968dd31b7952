package common

import (
	"fmt"
	"strings"

	"wordler/models"

	"github.com/rivo/uniseg"
)

var rankMedals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

// FormatRank returns a medal for the top three places and "#n" otherwise
func FormatRank(rank int) string {
	if medal, ok := rankMedals[rank]; ok {
		return medal
	}
	return fmt.Sprintf("#%d", rank)
}

// FormatPercent formats a 0-100 rate with one decimal
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// FormatAverage formats an average with two decimals, or "-" when there is nothing to average
func FormatAverage(avg float64, samples int) string {
	if samples == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", avg)
}

// FormatPoints formats a score with thousand separators
func FormatPoints(points int) string {
	return models.FormatNumber(points) + " pts"
}

// TruncateName shortens a display name to max user-perceived characters
func TruncateName(name string, max int) string {
	if uniseg.GraphemeClusterCount(name) <= max {
		return name
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(name)
	for n := 0; n < max-1 && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString("…")
	return b.String()
}

// FormatDistributionBars renders one text bar per attempts bucket, scaled to width
func FormatDistributionBars(dist map[models.AttemptsLabel]int, width int) string {
	peak := 0
	for _, label := range models.AttemptsLabels {
		if dist[label] > peak {
			peak = dist[label]
		}
	}

	var b strings.Builder
	for _, label := range models.AttemptsLabels {
		count := dist[label]
		bar := 0
		if peak > 0 {
			bar = count * width / peak
		}
		if count > 0 && bar == 0 {
			bar = 1
		}
		fmt.Fprintf(&b, "%s │%s %d\n", label, strings.Repeat("█", bar), count)
	}
	return strings.TrimRight(b.String(), "\n")
}
