package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/waypointhq/waypoint/internal/cpm"
	"github.com/waypointhq/waypoint/internal/model"
)

// Timeline renders a CPM result as horizontal schedule bars, one row per
// task, scaled to the project span. Critical tasks draw in red with full
// blocks; non-critical tasks draw in cyan with their float shown as a dim
// tail.
type Timeline struct {
	// Width is the bar area width in columns.
	Width int

	// Color controls whether ANSI escape codes are emitted.
	Color bool
}

// nameColumnWidth is the fixed label gutter before the bars.
const nameColumnWidth = 18

// Render produces the timeline string. Rows are ordered by early start
// with identifier as tiebreaker, so parallel chains interleave naturally.
func (tl Timeline) Render(res *cpm.Result, tasks []model.Task) string {
	if len(res.Tasks) == 0 {
		return ""
	}

	width := tl.Width
	if width <= 0 {
		width = 60
	}

	span := res.ProjectEnd.Sub(res.ProjectStart).Hours()
	if span <= 0 {
		span = 1
	}

	names := make(map[string]string, len(tasks))
	for _, t := range tasks {
		names[t.ID] = t.Name
	}

	ids := make([]string, 0, len(res.Tasks))
	for id := range res.Tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ai, aj := res.Tasks[ids[i]], res.Tasks[ids[j]]
		if !ai.EarlyStart.Equal(aj.EarlyStart) {
			return ai.EarlyStart.Before(aj.EarlyStart)
		}
		return ids[i] < ids[j]
	})

	var b strings.Builder
	for _, id := range ids {
		a := res.Tasks[id]

		label := names[id]
		if label == "" {
			label = id
		}
		label = padName(label, nameColumnWidth)

		offset := int(a.EarlyStart.Sub(res.ProjectStart).Hours() / span * float64(width))
		length := int(a.EarlyFinish.Sub(a.EarlyStart).Hours() / span * float64(width))
		if length < 1 {
			length = 1
		}
		if offset+length > width {
			length = width - offset
			if length < 1 {
				offset, length = width-1, 1
			}
		}
		floatCols := int(a.TotalFloatHours / span * float64(width))
		if offset+length+floatCols > width {
			floatCols = width - offset - length
		}

		bar := strings.Repeat("█", length)
		tail := strings.Repeat("░", floatCols)
		if tl.Color {
			if a.Critical {
				bar = red + bar + reset
			} else {
				bar = cyan + bar + reset
			}
			if tail != "" {
				tail = dim + tail + reset
			}
		}

		fmt.Fprintf(&b, "%s %s%s%s\n",
			label, strings.Repeat(" ", offset), bar, tail)
	}
	return b.String()
}

// padName truncates or pads a label to exactly n columns.
func padName(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(runes))
}
