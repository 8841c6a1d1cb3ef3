package ai

import (
	"strings"
	"testing"
)

func TestParseRecommendations(t *testing.T) {
	headers := []string{"region", "sales"}

	t.Run("json inside prose", func(t *testing.T) {
		text := "Sure! Here you go:\n```json\n{\"recommendations\":[{\"type\":\"line\",\"xAxis\":\"region\",\"yAxis\":\"sales\",\"title\":\"Sales\",\"insight\":\"trend\"}]}\n```\nHope it helps."
		got := ParseRecommendations(text, headers)
		if got.Fallback {
			t.Fatalf("unexpected fallback: %s", got.Reason)
		}
		if n := len(got.Value.Recommendations); n != 1 {
			t.Fatalf("recommendations: got=%d want=1", n)
		}
		if r := got.Value.Recommendations[0]; r.Type != "line" || r.YAxis != "sales" {
			t.Fatalf("recommendation: got=%+v", r)
		}
	})

	cases := map[string]string{
		"no braces":    "I cannot help with that.",
		"broken json":  "{\"recommendations\": [",
		"empty list":   "{\"recommendations\": []}",
		"wrong shape":  "{\"recommendations\": \"bar\"}",
		"empty string": "",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			got := ParseRecommendations(text, headers)
			if !got.Fallback {
				t.Fatalf("expected fallback for %q", text)
			}
			r := got.Value.Recommendations[0]
			if r.Type != "bar" || r.XAxis != "region" || r.YAxis != "sales" {
				t.Fatalf("fallback: got=%+v", r)
			}
			if r.Title != "sales by region" {
				t.Fatalf("title: got=%q", r.Title)
			}
			if r.Insight != "Distribution of values across categories" {
				t.Fatalf("insight: got=%q", r.Insight)
			}
		})
	}
}

func TestFallbackRecommendationsSingleColumn(t *testing.T) {
	r := FallbackRecommendations([]string{"name"}).Recommendations[0]
	if r.XAxis != "name" || r.YAxis != "name" || r.Title != "Values by name" {
		t.Fatalf("got=%+v", r)
	}
}

func TestStripCodeFences(t *testing.T) {
	in := "```html\n<html><body>x</body></html>\n```\n"
	if got, want := StripCodeFences(in), "<html><body>x</body></html>"; got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
	if got := StripCodeFences("<p>plain</p>"); got != "<p>plain</p>" {
		t.Fatalf("plain: got=%q", got)
	}
}

func TestSplitAnalysisResponse(t *testing.T) {
	t.Run("both parts", func(t *testing.T) {
		text := "**ANALYSIS:**\nSales peak in March.\n\n**HTML:**\n```html\n<div id=\"c\"></div>\n```"
		got := SplitAnalysisResponse(text)
		if got.Fallback {
			t.Fatalf("unexpected fallback: %s", got.Reason)
		}
		if got.Value.Text != "Sales peak in March." {
			t.Fatalf("text: got=%q", got.Value.Text)
		}
		if got.Value.HTML == nil || *got.Value.HTML != "<div id=\"c\"></div>" {
			t.Fatalf("html: got=%v", got.Value.HTML)
		}
	})

	t.Run("no markers", func(t *testing.T) {
		text := "The data has three columns."
		got := SplitAnalysisResponse(text)
		if !got.Fallback {
			t.Fatal("expected fallback")
		}
		if got.Value.Text != text || got.Value.HTML != nil {
			t.Fatalf("got=%+v", got.Value)
		}
	})

	t.Run("analysis without html block", func(t *testing.T) {
		got := SplitAnalysisResponse("**ANALYSIS:** short **HTML:** none available")
		if got.Value.HTML != nil {
			t.Fatalf("html should be nil, got=%q", *got.Value.HTML)
		}
		if !strings.Contains(got.Value.Text, "short") {
			t.Fatalf("text: got=%q", got.Value.Text)
		}
	})
}
