package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"tase-symbol-finder/internal/table"
)

// Format specifies how the summary is printed
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Reporter renders run summaries
type Reporter struct {
	// Style is the glamour style for markdown output ("auto", "dark", "light", "notty")
	Style string
	Width int
}

// NewReporter creates a reporter with automatic terminal styling
func NewReporter() *Reporter {
	return &Reporter{Style: "auto", Width: 100}
}

// Render formats the summary
func (r *Reporter) Render(s *Summary, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return r.renderText(s), nil
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case FormatMarkdown:
		return r.renderMarkdown(s)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Write renders the summary to w
func (r *Reporter) Write(w io.Writer, s *Summary, format Format) error {
	out, err := r.Render(s, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func (r *Reporter) renderText(s *Summary) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("📊 SYMBOL RESOLUTION SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Run: %s\n", s.RunID))
	sb.WriteString(fmt.Sprintf("Total companies: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("✅ Symbols found: %d\n", s.Found))
	sb.WriteString(fmt.Sprintf("❌ Not found: %d\n", s.NotFound))
	sb.WriteString(fmt.Sprintf("📈 Success rate: %s%%\n", s.SuccessRate))

	if len(s.ByMethod) > 0 {
		sb.WriteString("\nBy search method:\n")
		for _, m := range s.ByMethod {
			sb.WriteString(fmt.Sprintf("  %-22s %d\n", m.Method, m.Count))
		}
	}

	if len(s.FoundSamples) > 0 {
		sb.WriteString(fmt.Sprintf("\n🎯 Found symbols (first %d):\n", len(s.FoundSamples)))
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, smp := range s.FoundSamples {
			sb.WriteString(fmt.Sprintf("  %-30s %-12s %s\n", smp.Name, smp.Symbol, smp.Method))
		}
	}

	if len(s.NotFoundNames) > 0 {
		sb.WriteString(fmt.Sprintf("\n🔍 Not found (first %d):\n", len(s.NotFoundNames)))
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, name := range s.NotFoundNames {
			sb.WriteString(fmt.Sprintf("  %s\n", name))
		}
	}

	if s.OutputPath != "" {
		sb.WriteString(fmt.Sprintf("\n💾 Saved to: %s\n", s.OutputPath))
	}
	return sb.String()
}

// Markdown returns the summary as a markdown document
func (s *Summary) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Symbol Resolution Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Run:** `%s`\n", s.RunID))
	sb.WriteString(fmt.Sprintf("- **Total companies:** %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("- **Found:** %d\n", s.Found))
	sb.WriteString(fmt.Sprintf("- **Not found:** %d\n", s.NotFound))
	sb.WriteString(fmt.Sprintf("- **Success rate:** %s%%\n", s.SuccessRate))

	if len(s.ByMethod) > 0 {
		sb.WriteString("\n## By search method\n\n")
		for _, m := range s.ByMethod {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", m.Method, m.Count))
		}
	}
	if len(s.FoundSamples) > 0 {
		sb.WriteString("\n## Found symbols\n\n")
		for _, smp := range s.FoundSamples {
			sb.WriteString(fmt.Sprintf("- %s → `%s` (%s)\n", smp.Name, smp.Symbol, smp.Method))
		}
	}
	if len(s.NotFoundNames) > 0 {
		sb.WriteString("\n## Not found\n\n")
		for _, name := range s.NotFoundNames {
			sb.WriteString(fmt.Sprintf("- %s\n", name))
		}
	}
	if s.OutputPath != "" {
		sb.WriteString(fmt.Sprintf("\nSaved to `%s`\n", s.OutputPath))
	}
	return sb.String()
}

func (r *Reporter) renderMarkdown(s *Summary) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(r.Width)}
	if r.Style == "" || r.Style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.Style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := tr.Render(s.Markdown())
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Preview writes up to n leading rows of tbl, one line per row
func Preview(w io.Writer, tbl *table.Table, n int) {
	rows := tbl.Head(n)
	fmt.Fprintf(w, "📋 First %d of %d rows:\n", len(rows), tbl.Len())
	fmt.Fprintf(w, "  %s\n", strings.Join(tbl.Header, " | "))
	for i, r := range rows {
		fmt.Fprintf(w, "  %d. %s\n", i+1, strings.Join(r, " | "))
	}
}
