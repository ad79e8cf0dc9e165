package render

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statlab/domain/analysis"
)

// Markdown renders a report as a markdown document.
func Markdown(report *analysis.Report) string {
	var b strings.Builder

	title := report.SampleName
	if title == "" {
		title = report.ID.String()
	}
	fmt.Fprintf(&b, "# Analysis: %s\n\n", title)

	record := report.Record

	b.WriteString("## Parameters\n\n")
	b.WriteString("| Parameter | Value |\n|---|---|\n")
	for _, p := range paramsNames {
		if value := p.get(record); value != nil {
			fmt.Fprintf(&b, "| %s | %.8f |\n", p.name, *value)
		}
	}

	b.WriteString("\n## Statistics\n\n")
	b.WriteString("| Statistic | Value |\n|---|---|\n")
	for _, p := range statisticsNames {
		if value := p.get(record); value != nil {
			fmt.Fprintf(&b, "| %s | %.8f |\n", p.name, *value)
		}
	}

	if s := report.Summary; s != nil {
		b.WriteString("\n## Summary\n\n")
		b.WriteString("| Order statistic | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Min | %.8f |\n", s.Min)
		fmt.Fprintf(&b, "| Q25 | %.8f |\n", s.Q25)
		fmt.Fprintf(&b, "| Median | %.8f |\n", s.Median)
		fmt.Fprintf(&b, "| Q75 | %.8f |\n", s.Q75)
		fmt.Fprintf(&b, "| Max | %.8f |\n", s.Max)
	}

	if len(report.Intervals) > 0 {
		fmt.Fprintf(&b, "\n## Confidence intervals (confidence = %.2f)\n\n", report.Confidence())
		for _, kind := range analysis.AllIntervalKinds {
			result, ok := report.Intervals[kind]
			if !ok {
				continue
			}
			if result.Failed() {
				fmt.Fprintf(&b, "- **%s**: skipped: %s\n", intervalNames[kind], result.Error)
				continue
			}
			fmt.Fprintf(&b, "- **%s**: (%.8f, %.8f)\n",
				intervalNames[kind], result.Interval.Low, result.Interval.High)
		}
	}

	return b.String()
}

// HTML renders the markdown report to HTML for the API.
func HTML(report *analysis.Report) []byte {
	extensions := parser.CommonExtensions | parser.Tables
	p := parser.NewWithExtensions(extensions)

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(report)), p, renderer)
}
