package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"askcaira/backend/models"
)

var (
	jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)
	codeFenceRe  = regexp.MustCompile("```(?:html)?\\n?")
	analysisRe   = regexp.MustCompile(`\*\*ANALYSIS:\*\*([\s\S]*?)\*\*HTML:\*\*`)
	htmlBlockRe  = regexp.MustCompile("```html\\n([\\s\\S]*?)\\n```")
)

// ParseRecommendations pulls the first brace-delimited span out of text and
// decodes it. Anything unusable yields the single bar chart fallback.
func ParseRecommendations(text string, headers []string) Parsed[models.ChartRecommendations] {
	raw := jsonObjectRe.FindString(text)
	if raw == "" {
		return FallbackTo(FallbackRecommendations(headers), "no JSON object in response")
	}
	var recs models.ChartRecommendations
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return FallbackTo(FallbackRecommendations(headers), "invalid JSON: "+err.Error())
	}
	if len(recs.Recommendations) == 0 {
		return FallbackTo(FallbackRecommendations(headers), "no recommendations in response")
	}
	return Ok(recs)
}

// FallbackRecommendations charts the second column by the first, or the
// first column by itself when there is only one.
func FallbackRecommendations(headers []string) models.ChartRecommendations {
	var x, y string
	if len(headers) > 0 {
		x, y = headers[0], headers[0]
	}
	label := "Values"
	if len(headers) > 1 {
		y = headers[1]
		label = headers[1]
	}
	return models.ChartRecommendations{Recommendations: []models.ChartRecommendation{{
		Type:    "bar",
		XAxis:   x,
		YAxis:   y,
		Title:   label + " by " + x,
		Insight: "Distribution of values across categories",
	}}}
}

// StripCodeFences removes markdown fence markers around generated HTML.
func StripCodeFences(s string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(s, ""))
}

// Analysis is a chat answer split into prose and an optional HTML document.
type Analysis struct {
	Text string
	HTML *string
}

// SplitAnalysisResponse reads the **ANALYSIS:** / **HTML:** layout. Without
// the analysis marker the whole response is the text (Fallback is set);
// without an html fence there is no visualization.
func SplitAnalysisResponse(text string) Parsed[Analysis] {
	var out Analysis
	if m := htmlBlockRe.FindStringSubmatch(text); m != nil {
		if h := strings.TrimSpace(m[1]); h != "" {
			out.HTML = &h
		}
	}
	m := analysisRe.FindStringSubmatch(text)
	if m == nil {
		out.Text = text
		return FallbackTo(out, "analysis marker not found")
	}
	out.Text = strings.TrimSpace(m[1])
	return Ok(out)
}
