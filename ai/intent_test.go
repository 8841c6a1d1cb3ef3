package ai

import "testing"

func TestNeedsVisualization(t *testing.T) {
	cases := []struct {
		msg  string
		want bool
	}{
		{"Can you plot sales over time?", true},
		{"VISUALIZE the revenue", true},
		{"what's the correlation between price and units", true},
		{"Make a heatmap", true},
		{"How many rows are there?", false},
		{"what is this data about", false},
		{"Can you build a chart?", true},
		{"What is the average price?", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := NeedsVisualization(tc.msg); got != tc.want {
			t.Fatalf("NeedsVisualization(%q): got=%v want=%v", tc.msg, got, tc.want)
		}
	}
}

func TestGeneralResponse(t *testing.T) {
	cases := []struct {
		msg    string
		prefix string
	}{
		{"Hello there", "Hello! I'm Caira"},
		{"hi", "Hello! I'm Caira"},
		{"What are you?", "I'm an AI assistant"},
		{"how does this work", "I work by processing"},
		{"can you read my csv", "I can help you analyze data!"},
		{"tell me a joke", `I understand you're asking about "tell me a joke".`},
	}
	for _, tc := range cases {
		got := GeneralResponse(tc.msg)
		if len(got) < len(tc.prefix) || got[:len(tc.prefix)] != tc.prefix {
			t.Fatalf("GeneralResponse(%q): got=%q want prefix %q", tc.msg, got, tc.prefix)
		}
	}
	// "this" contains "hi" but is not a greeting.
	if got := GeneralResponse("this is odd"); got[:5] == "Hello" {
		t.Fatalf("substring matched greeting: %q", got)
	}
}
