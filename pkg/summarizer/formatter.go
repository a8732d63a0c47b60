package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Recording Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Session\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	fmt.Fprintf(&b, "| ID | %s |\n", s.Session.ID)
	fmt.Fprintf(&b, "| Source | %s |\n", s.Session.Source)
	fmt.Fprintf(&b, "| Output | %s |\n", s.Session.OutputDir)
	fmt.Fprintf(&b, "| FPS | %d |\n", s.Session.FPS)
	fmt.Fprintf(&b, "| Duration | %s |\n", formatDuration(s.Session.Duration()))
	status := "ok"
	if s.Session.Failed {
		status = "failed"
	}
	fmt.Fprintf(&b, "| Status | %s |\n", status)

	if len(s.Cameras) > 0 {
		b.WriteString("\n## Cameras\n\n")
		b.WriteString("| Side | Camera | File | Size | Frames | Dropped | Duration |\n")
		b.WriteString("|------|--------|------|------|--------|---------|----------|\n")
		for _, c := range s.Cameras {
			file, size, dur := "-", "-", "-"
			if c.Filename != "" {
				file = c.Filename
				size = fmt.Sprintf("%dx%d", c.Width, c.Height)
				dur = fmt.Sprintf("%.2fs", c.DurationSecs)
			}
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %d | %d | %s |\n",
				c.Side, c.CameraID, file, size, c.Frames, c.Dropped, dur)
		}
	}

	if len(s.Problems) > 0 {
		b.WriteString("\n## Problems\n\n")
		for _, p := range s.Problems {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	return b.String()
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0.00s"
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
