package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"askcaira/backend/models"
)

const historyTurns = 3

// visualTheme is the dark glass look every generated page must follow so it
// blends into the app when embedded.
const visualTheme = `**CRITICAL STYLING REQUIREMENTS** - The HTML MUST match this exact glassmorphic theme:
- Background: Dark gradient from gray-900 via slate-900 to black
- Use glassmorphic effects: rgba(255, 255, 255, 0.05) backgrounds with backdrop-filter: blur(15px)
- Color palette:
  * Primary accent: #00d4ff (cyan)
  * Secondary: #3b82f6 (blue)
  * Success: #10b981 (emerald)
  * Purple: #a855f7
- White text (#ffffff) on dark backgrounds
- Add subtle glow effects: box-shadow: 0 0 20px rgba(0,212,255,0.3)
- Use Inter font family
- Responsive design that works in iframe

**HTML Template Structure:**
` + "```html" + `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <script src="https://cdn.plot.ly/plotly-2.26.0.min.js"></script>
  <style>
    body {
      margin: 0;
      padding: 20px;
      background: linear-gradient(135deg, #111827 0%, #0f172a 50%, #000000 100%);
      color: #ffffff;
      font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      min-height: 100vh;
    }
    .container { max-width: 1200px; margin: 0 auto; }
    .glass-card {
      background: rgba(255, 255, 255, 0.05);
      backdrop-filter: blur(15px);
      -webkit-backdrop-filter: blur(15px);
      border: 1px solid rgba(255, 255, 255, 0.1);
      border-radius: 12px;
      padding: 24px;
      margin-bottom: 20px;
      box-shadow: 0 0 20px rgba(0, 212, 255, 0.1);
    }
    .chart-container {
      width: 100%;
      height: 500px;
      background: rgba(0, 0, 0, 0.2);
      border-radius: 8px;
      border: 1px solid rgba(255, 255, 255, 0.1);
    }
    h1, h2, h3 { color: #ffffff; margin-bottom: 16px; }
    .metric-card {
      background: rgba(255, 255, 255, 0.03);
      border: 1px solid rgba(255, 255, 255, 0.1);
      border-radius: 8px;
      padding: 16px;
      text-align: center;
    }
    .metric-value { font-size: 1.5rem; font-weight: bold; color: #00d4ff; text-shadow: 0 0 10px rgba(0, 212, 255, 0.6); }
    .metric-label { font-size: 0.875rem; color: #94a3b8; margin-top: 4px; }
  </style>
</head>
<body>
  <div class="container">
    <!-- Your visualization content here -->
  </div>
</body>
</html>
` + "```"

func toJSON(v any, indent bool) string {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return "{}"
	}
	return string(b)
}

func firstN(rows []models.Row, n int) []models.Row {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}

func recommendationPrompt(s models.DataSummary) string {
	var b strings.Builder
	b.WriteString("Analyze this dataset and recommend the best chart types to visualize the data effectively.\n\n")
	b.WriteString("Dataset summary:\n")
	fmt.Fprintf(&b, "- File: %s\n", s.FileName)
	fmt.Fprintf(&b, "- Rows: %d\n", s.TotalRows)
	fmt.Fprintf(&b, "- Columns: %d\n", len(s.Columns))
	fmt.Fprintf(&b, "- Column types: %s\n", toJSON(s.ColumnTypes, false))
	fmt.Fprintf(&b, "- Sample data: %s\n\n", toJSON(firstN(s.SampleData, 3), false))
	b.WriteString("Please recommend 3-5 different chart types that would best show insights from this data.\n")
	b.WriteString("For each recommendation, specify:\n")
	b.WriteString("1. Chart type (bar, line, pie, scatter, etc.)\n")
	b.WriteString("2. Which columns to use (x-axis, y-axis, categories)\n")
	b.WriteString("3. What insight this chart would reveal\n")
	b.WriteString("4. Title for the chart\n\n")
	b.WriteString("Respond in JSON format:\n")
	b.WriteString(`{"recommendations": [{"type": "bar", "xAxis": "column_name", "yAxis": "column_name", "title": "Chart Title", "insight": "What this chart shows"}]}`)
	b.WriteString("\n\n**Complete dataset information:**\n")
	b.WriteString(toJSON(s, true))
	return b.String()
}

func uploadVisualizationPrompt(s models.DataSummary, recs models.ChartRecommendations) string {
	var b strings.Builder
	b.WriteString("Create interactive HTML charts using Plotly.js based on these recommendations.\n")
	b.WriteString("Use the uploaded dataset to generate real charts with actual data.\n\n")
	fmt.Fprintf(&b, "Chart recommendations: %s\n\n", toJSON(recs, false))
	b.WriteString("Requirements:\n")
	b.WriteString("1. Create a complete HTML page with multiple charts\n")
	b.WriteString("2. Use Plotly.js CDN for charts\n")
	b.WriteString("3. Make charts responsive and interactive\n")
	b.WriteString("4. Include chart titles and proper styling\n")
	b.WriteString("5. Use actual data from the uploaded file\n\n")
	b.WriteString(visualTheme)
	b.WriteString("\n\nReturn only the complete HTML code that can be displayed in an iframe.\n")
	b.WriteString("The HTML should be self-contained with inline CSS and JavaScript.\n\n")
	b.WriteString("**Complete dataset to use for charts:**\n")
	b.WriteString(toJSON(s, true))
	return b.String()
}

// dataContext describes the file, its earlier recommendations and the last
// few turns of conversation.
func dataContext(f *models.FileRecord, history []models.ChatHistoryEntry) string {
	s := f.DataSummary
	var b strings.Builder
	b.WriteString("**Dataset Information:**\n")
	fmt.Fprintf(&b, "- File: %s\n", f.OriginalFileName)
	if s.TotalRows > 0 {
		fmt.Fprintf(&b, "- Rows: %d\n", s.TotalRows)
	} else {
		b.WriteString("- Rows: Unknown\n")
	}
	if len(s.Columns) > 0 {
		fmt.Fprintf(&b, "- Columns: %s\n", strings.Join(s.Columns, ", "))
	} else {
		b.WriteString("- Columns: Unknown\n")
	}
	fmt.Fprintf(&b, "- Column Types: %s\n", toJSON(s.ColumnTypes, false))
	fmt.Fprintf(&b, "- Sample Data: %s\n\n", toJSON(firstN(s.SampleData, 3), false))
	b.WriteString("**Previous Chart Recommendations:**\n")
	b.WriteString(toJSON(f.ChartRecommendations.Recommendations, false))
	b.WriteString("\n\n**Chat History Context:**\n")
	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}
	if len(history) == 0 {
		b.WriteString("No previous conversation\n")
	}
	for _, h := range history {
		fmt.Fprintf(&b, "%s: %s\n", h.Type, h.Content)
	}
	return b.String()
}

func chatVisualizationPrompt(message, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a data visualization AI. The user has uploaded a dataset and is asking: %q\n\n", message)
	b.WriteString(context)
	b.WriteString("\nPlease provide two things:\n\n")
	b.WriteString("1. **ANALYSIS**: A detailed analysis answering the user's question based on the actual data shown above. Reference specific columns, values, and patterns you can see in the sample data.\n\n")
	b.WriteString("2. **VISUALIZATION**: Create a complete HTML page with interactive charts using Plotly.js that addresses the user's request. Use the actual data from the dataset above.\n\n")
	b.WriteString(visualTheme)
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("- Use actual data from the dataset provided\n")
	b.WriteString("- Create charts that specifically answer the user's question\n")
	b.WriteString("- Include proper titles and labels with glassmorphic styling\n")
	b.WriteString("- Make charts interactive with hover effects\n")
	b.WriteString("- Use the color palette specified above\n")
	b.WriteString("- Ensure responsive design\n\n")
	b.WriteString("Format your response as:\n**ANALYSIS:**\n[Your detailed analysis here]\n\n**HTML:**\n")
	b.WriteString("```html\n[Complete HTML code here matching the glassmorphic theme]\n```\n")
	return b.String()
}

func chatAnalysisPrompt(message, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a data analyst AI. The user has uploaded a dataset and is asking: %q\n\n", message)
	b.WriteString(context)
	b.WriteString("\nPlease provide a detailed analysis answering the user's question based on the actual data shown above. ")
	b.WriteString("Reference specific columns, values, and patterns you can see in the sample data. Be specific about what you observe in their dataset.\n\n")
	b.WriteString("If the question is general (like \"what is this data about\"), describe what you can infer from the column names, data types, and sample values provided.\n\n")
	b.WriteString("Keep your response informative but conversational.\n")
	return b.String()
}
