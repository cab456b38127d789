// Package tui implements the interactive Gantt/timeline viewer: one row
// per task with schedule bars scaled to the project span, critical tasks
// highlighted, and a detail line for the selected task.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/waypointhq/waypoint/internal/cpm"
	"github.com/waypointhq/waypoint/internal/model"
)

// row is one renderable task line.
type row struct {
	id       string
	name     string
	analysis *cpm.Analysis
}

// Model is the bubbletea model for the Gantt viewer.
type Model struct {
	result *cpm.Result
	rows   []row

	cursor   int
	width    int
	height   int
	ready    bool
	viewport viewport.Model
}

// NewModel builds the viewer for one analysis result. Rows are ordered by
// early start with identifier as tiebreaker.
func NewModel(res *cpm.Result, tasks []model.Task) Model {
	names := make(map[string]string, len(tasks))
	for _, t := range tasks {
		names[t.ID] = t.Name
	}

	rows := make([]row, 0, len(res.Tasks))
	for id, a := range res.Tasks {
		name := names[id]
		if name == "" {
			name = id
		}
		rows = append(rows, row{id: id, name: name, analysis: a})
	}
	sortRows(rows)

	return Model{result: res, rows: rows}
}

func sortRows(rows []row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].analysis, rows[j].analysis
		if !a.EarlyStart.Equal(b.EarlyStart) {
			return a.EarlyStart.Before(b.EarlyStart)
		}
		return rows[i].id < rows[j].id
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "g":
			m.cursor = 0
		case "G":
			m.cursor = len(m.rows) - 1
		}
		m.syncViewport()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - 4 // title + summary + detail + help
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.syncViewport()
	}
	return m, nil
}

// syncViewport re-renders the row content and keeps the cursor visible.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderRows())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Project %s — timeline", m.result.ProjectID)))
	b.WriteByte('\n')
	b.WriteString(summaryStyle.Render(fmt.Sprintf("%d tasks · %.1f days · health ", len(m.rows), m.result.ProjectDurationDays)))
	b.WriteString(healthStyle(m.result.HealthScore).Render(fmt.Sprintf("%.0f/100", m.result.HealthScore)))
	b.WriteByte('\n')
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	b.WriteString(m.detailLine())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("↑/↓ select · g/G first/last · q quit"))
	return b.String()
}

// nameWidth is the fixed label gutter before the bars.
const nameWidth = 20

// renderRows draws every task row: label, offset, schedule bar, float tail.
func (m Model) renderRows() string {
	barArea := m.width - nameWidth - 2
	if barArea < 10 {
		barArea = 10
	}
	span := m.result.ProjectEnd.Sub(m.result.ProjectStart).Hours()
	if span <= 0 {
		span = 1
	}

	var b strings.Builder
	for i, r := range m.rows {
		a := r.analysis

		offset := int(a.EarlyStart.Sub(m.result.ProjectStart).Hours() / span * float64(barArea))
		length := int(a.EarlyFinish.Sub(a.EarlyStart).Hours() / span * float64(barArea))
		if length < 1 {
			length = 1
		}
		if offset+length > barArea {
			length = barArea - offset
			if length < 1 {
				offset, length = barArea-1, 1
			}
		}
		floatCols := int(a.TotalFloatHours / span * float64(barArea))
		if offset+length+floatCols > barArea {
			floatCols = barArea - offset - length
		}

		style := normalBarStyle
		if a.Critical {
			style = criticalBarStyle
		}
		bar := style.Render(strings.Repeat("█", length))
		tail := ""
		if floatCols > 0 {
			tail = floatBarStyle.Render(strings.Repeat("░", floatCols))
		}

		mark := " "
		if i == m.cursor {
			mark = selectedRowStyle.Render("▸")
		}
		label := truncate(r.name, nameWidth)
		b.WriteString(fmt.Sprintf("%s %-*s %s%s%s",
			mark, nameWidth, label, strings.Repeat(" ", offset), bar, tail))
		b.WriteByte('\n')
	}
	return b.String()
}

// detailLine describes the selected task's derived schedule.
func (m Model) detailLine() string {
	if len(m.rows) == 0 {
		return summaryStyle.Render("no tasks")
	}
	r := m.rows[m.cursor]
	a := r.analysis
	state := "slack"
	if a.Critical {
		state = "critical"
	}
	return summaryStyle.Render(fmt.Sprintf(
		"%s · ES %s · EF %s · float %.1fh (free %.1fh) · %s",
		r.id,
		a.EarlyStart.Format("Jan 02 15:04"),
		a.EarlyFinish.Format("Jan 02 15:04"),
		a.TotalFloatHours, a.FreeFloatHours, state))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
