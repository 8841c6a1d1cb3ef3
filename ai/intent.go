package ai

import "strings"

var visualizationKeywords = []string{
	"visualiz", "chart", "graph", "plot", "show", "display",
	"trend", "pattern", "distribution", "comparison", "correlation",
	"create", "generate", "make", "draw", "bar chart", "line chart",
	"pie chart", "scatter", "histogram", "heatmap",
}

// NeedsVisualization reports whether the message asks for a chart. Any
// case-insensitive substring hit counts.
func NeedsVisualization(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range visualizationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
