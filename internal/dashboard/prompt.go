package dashboard

import (
	"fmt"
	"sort"
	"strings"
)

// systemPrompt instructs the model how to use the three tools. The example
// configuration keeps smaller models on the rails.
const systemPrompt = `You are a data visualization expert that creates beautiful and insightful dashboards.
Given a dataset and instructions, you will:
1. Analyze the data to determine appropriate visualizations
2. Create a dashboard configuration with suitable charts
3. Generate an HTML dashboard
4. Ensure the dashboard is responsive and user-friendly

When creating charts, consider:
- The data types of each column
- The relationships between variables
- The story the data is trying to tell
- Best practices in data visualization

You must use the generate_dashboard tool with a configuration that includes:
1. title: The dashboard title
2. charts: A list of chart configurations, where each chart has:
   - chart_type: One of [line, bar, scatter, pie, histogram, box]
   - x_column: The column name for the x-axis
   - y_column: The column name for the y-axis (optional for histogram and pie charts)
   - title: The chart title
3. layout: Either "grid" or "vertical"
4. theme: Either "light" or "dark"

Example configuration:
{
    "title": "Sales Dashboard",
    "charts": [
        {
            "chart_type": "line",
            "x_column": "date",
            "y_column": "sales",
            "title": "Daily Sales Trend"
        },
        {
            "chart_type": "histogram",
            "x_column": "order_value",
            "title": "Order Value Distribution"
        }
    ],
    "layout": "grid",
    "theme": "light"
}
`

// EnhanceInstructions prefixes the user instructions with a dataset summary
// so the model works from exact column names.
func EnhanceInstructions(f *Frame, instructions string) string {
	s := f.Summarize(0)
	kinds := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		kinds = append(kinds, fmt.Sprintf("%s (%s)", c, s.Kinds[c]))
	}
	sort.Strings(kinds)
	var b strings.Builder
	b.WriteString("Dataset Summary:\n")
	fmt.Fprintf(&b, "- Columns: %s\n", strings.Join(s.Columns, ", "))
	fmt.Fprintf(&b, "- Number of rows: %d\n", s.RowCount)
	fmt.Fprintf(&b, "- Data types: %s\n\n", strings.Join(kinds, ", "))
	b.WriteString("Original Instructions:\n")
	b.WriteString(strings.TrimSpace(instructions))
	b.WriteString("\n\nPlease create a dashboard using the available columns shown above.\n")
	b.WriteString("Ensure all column names match exactly with the dataset.\n")
	return b.String()
}
