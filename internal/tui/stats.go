package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daybook/internal/app"
	"github.com/sadopc/daybook/internal/calendar"
)

type statsModel struct {
	ctrl   *app.Controller
	width  int
	height int

	offset int // weeks back from today (0 = current)
	week   calendar.WeekStats
	days   []dayTotals

	sessionCount int

	chart barchart.Model
}

type dayTotals struct {
	date  time.Time
	stats calendar.DayStats
}

func newStatsModel(c *app.Controller) statsModel {
	m := statsModel{
		ctrl:  c,
		chart: barchart.New(60, 12),
	}
	m.refresh()
	return m
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

// end is the last day of the displayed range.
func (m statsModel) end() time.Time {
	return startOfDay(m.ctrl.Now()).AddDate(0, 0, -7*m.offset)
}

func (m *statsModel) refresh() {
	book := m.ctrl.State().Activities
	end := m.end()
	m.week = book.WeekStats(end)
	m.days = make([]dayTotals, 0, 8)
	for d := end.AddDate(0, 0, -7); !d.After(end); d = d.AddDate(0, 0, 1) {
		m.days = append(m.days, dayTotals{date: d, stats: book.DayStats(d)})
	}
	m.sessionCount = m.ctrl.State().Sessions.Len()
	m.buildChart()
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
				m.refresh()
			}
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := max(m.width-8, 20)
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range m.days {
		bars = append(bars, barchart.BarData{
			Label: d.date.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: "Work", Value: calendar.Hours(d.stats.Work), Style: lipgloss.NewStyle().Foreground(colorSuccess)},
				{Name: "Meetings", Value: calendar.Hours(d.stats.Meeting), Style: lipgloss.NewStyle().Foreground(colorHighlight)},
				{Name: "Breaks", Value: calendar.Hours(d.stats.Break), Style: lipgloss.NewStyle().Foreground(colorWarning)},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	end := m.end()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s - %s", end.AddDate(0, 0, -7).Format("Jan 02"), end.Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Weekly Stats"), "  ", dateLabel)

	legend := strings.Join([]string{
		successStyle.Render("●") + " Work",
		highlightStyle.Render("●") + " Meetings",
		warningStyle.Render("●") + " Breaks",
	}, "  ")

	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", "  "+legend, "", m.renderSummary(w), "", nav,
		),
	)
}

func (m statsModel) renderSummary(w int) string {
	if m.week.Activities == 0 {
		return mutedStyle.Render("  No activities for this period")
	}

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-22s %10s", "", "Hours")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 33))),
		fmt.Sprintf("  %-22s %10.1f", "Total", calendar.Hours(m.week.Total())),
		fmt.Sprintf("  %-22s %10.1f", "Work", calendar.Hours(m.week.Work)),
		fmt.Sprintf("  %-22s %10.1f", "Meetings", calendar.Hours(m.week.Meeting)),
		fmt.Sprintf("  %-22s %10.1f", "Breaks", calendar.Hours(m.week.Break)),
		fmt.Sprintf("  %-22s %10.1f", "Average work per day", m.week.AvgWorkPerDay()),
		"",
		mutedStyle.Render(fmt.Sprintf("  %d activities, %d timer sessions logged", m.week.Activities, m.sessionCount)),
	}
	return strings.Join(rows, "\n")
}
