package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"streamchart/internal/models"
)

// Printer renders the traffic report as a styled terminal summary.
type Printer struct {
	out io.Writer

	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	box     lipgloss.Style
}

// New creates a printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#874BFD")),
		section: lipgloss.NewStyle().Bold(true),
		label:   lipgloss.NewStyle().Faint(true),
		box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1),
	}
}

// Print writes the full summary: processing stats, traffic totals, top IPs,
// bot share, methods, paths, status codes and the busiest interval.
func (p *Printer) Print(rep models.Report, stats models.ParseStats) {
	var sb strings.Builder

	sb.WriteString(p.title.Render("Traffic Analysis"))
	sb.WriteString("\n\n")

	sb.WriteString(p.section.Render("Processing"))
	sb.WriteString("\n")
	p.row(&sb, "Lines scanned", fmt.Sprintf("%d", stats.LinesScanned))
	p.row(&sb, "Valid entries", fmt.Sprintf("%d", stats.Parsed))
	p.row(&sb, "Malformed lines", fmt.Sprintf("%d", stats.Malformed))
	sb.WriteString("\n")

	sb.WriteString(p.section.Render("Traffic"))
	sb.WriteString("\n")
	p.row(&sb, "Total requests", fmt.Sprintf("%d", rep.TotalRequests))
	if rep.UniqueIPs > 0 {
		p.row(&sb, "Unique IPs", fmt.Sprintf("%d", rep.UniqueIPs))
	}
	p.row(&sb, "Potential bot traffic",
		fmt.Sprintf("%d requests (%.1f%%)", rep.BotRequests, rep.BotShare))
	if !rep.Peak.Start.IsZero() {
		p.row(&sb, "Busiest minute",
			fmt.Sprintf("%s with %d requests",
				rep.Peak.Start.Format("2006-01-02 15:04"), rep.Peak.Count))
	}

	p.countSection(&sb, "Top IPs by requests", rep.TopIPs)
	p.countSection(&sb, "HTTP methods", rep.Methods)
	p.countSection(&sb, "Top requested paths", rep.TopPaths)
	p.countSection(&sb, "HTTP status codes", rep.StatusCodes)

	fmt.Fprintln(p.out, p.box.Render(strings.TrimRight(sb.String(), "\n")))
}

func (p *Printer) row(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "  %s %s\n", p.label.Render(label+":"), value)
}

func (p *Printer) countSection(sb *strings.Builder, heading string, entries []models.CountEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(p.section.Render(heading))
	sb.WriteString("\n")
	for _, e := range entries {
		p.row(sb, e.Key, fmt.Sprintf("%d", e.Count))
	}
}

// PrintChartNotice reports where the chart was written and the time range it covers.
func (p *Printer) PrintChartNotice(path string, series models.TimeSeries) {
	if len(series) == 0 {
		return
	}
	first := series[0].Start
	last := series[len(series)-1].Start
	fmt.Fprintf(p.out, "Saved traffic graph to %s (%s .. %s)\n",
		path, first.Format(time.RFC3339), last.Format(time.RFC3339))
}
