// Package ui provides human-readable terminal output for analysis and
// reschedule results: a styled report printer and an ASCII timeline
// renderer for the Gantt view.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/waypointhq/waypoint/internal/advisor"
	"github.com/waypointhq/waypoint/internal/cascade"
	"github.com/waypointhq/waypoint/internal/cpm"
	"github.com/waypointhq/waypoint/internal/model"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer renders reports to a writer, optionally with ANSI color.
type Printer struct {
	Out   io.Writer
	Color bool
}

// New creates a Printer writing to out.
func New(out io.Writer, color bool) *Printer {
	return &Printer{Out: out, Color: color}
}

func (p *Printer) paint(code, s string) string {
	if !p.Color {
		return s
	}
	return code + s + reset
}

// AnalysisReport prints the full CPM report: summary line, timeline, and
// the ordered critical path.
func (p *Printer) AnalysisReport(res *cpm.Result, tasks []model.Task) {
	fmt.Fprintf(p.Out, "%s\n", p.paint(bold, fmt.Sprintf("Project %s", res.ProjectID)))
	fmt.Fprintf(p.Out, "  tasks: %d   duration: %.1f days   health: %s\n",
		len(res.Tasks), res.ProjectDurationDays, p.healthString(res.HealthScore))

	tl := Timeline{Width: 60, Color: p.Color}
	fmt.Fprint(p.Out, tl.Render(res, tasks))

	if len(res.CriticalPath) == 0 {
		fmt.Fprintf(p.Out, "\n%s\n", p.paint(dim, "No critical path (no tasks)."))
		return
	}
	fmt.Fprintf(p.Out, "\n%s %s\n",
		p.paint(bold, "Critical path:"),
		p.paint(red, strings.Join(res.CriticalPath, " → ")))
}

// healthString colors the health score by band: green above 70, yellow
// above 40, red below.
func (p *Printer) healthString(score float64) string {
	s := fmt.Sprintf("%.0f/100", score)
	switch {
	case score >= 70:
		return p.paint(green, s)
	case score >= 40:
		return p.paint(yellow, s)
	default:
		return p.paint(red, s)
	}
}

// Suggestions prints the advisory report.
func (p *Printer) Suggestions(report *advisor.Report) {
	if len(report.Suggestions) == 0 {
		fmt.Fprintf(p.Out, "%s\n", p.paint(dim, "No optimization opportunities found."))
		return
	}
	fmt.Fprintf(p.Out, "%s\n", p.paint(bold, fmt.Sprintf(
		"%d suggestions (%d compression opportunities, est. %.1fh savings)",
		len(report.Suggestions), report.CompressionOpportunities, report.EstimatedSavingsHours)))
	for _, s := range report.Suggestions {
		marker := p.paint(cyan, "•")
		if s.Risk == advisor.RiskMedium {
			marker = p.paint(yellow, "•")
		}
		fmt.Fprintf(p.Out, "  %s [%s] %s", marker, s.Kind, s.Description)
		if s.EstimatedSavingsHours > 0 {
			fmt.Fprintf(p.Out, " %s", p.paint(dim, fmt.Sprintf("(~%.1fh)", s.EstimatedSavingsHours)))
		}
		fmt.Fprintln(p.Out)
	}
}

// CascadeResult prints the outcome of a reschedule operation.
func (p *Printer) CascadeResult(res *cascade.Result) {
	fmt.Fprintf(p.Out, "%s %s → %s\n",
		p.paint(bold, res.Task.ID),
		res.Task.Start.Format("2006-01-02 15:04"),
		res.Task.Finish.Format("2006-01-02 15:04"))
	fmt.Fprintf(p.Out, "  cascaded updates: %d\n", res.CascadedUpdates)
	if len(res.Failed) > 0 {
		sorted := append([]string(nil), res.Failed...)
		sort.Strings(sorted)
		fmt.Fprintf(p.Out, "  %s %s\n",
			p.paint(red, "failed writes:"), strings.Join(sorted, ", "))
	}
	if res.DepthLimited {
		fmt.Fprintf(p.Out, "  %s\n", p.paint(yellow, "propagation stopped at depth limit"))
	}
}
