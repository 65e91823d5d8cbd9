package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/faunadata/fauna/internal/monitor"
)

var feedHeaders = []string{"TIME", "METHOD", "PATH", "CLIENT", "STATUS", "LATENCY"}

const statusColumn = 4

// StatusStyle colours a status cell by its dashboard class.
func StatusStyle(status int) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch monitor.StatusClass(status) {
	case monitor.ClassSuccess:
		return style.Foreground(Green)
	case monitor.ClassClientError:
		return style.Foreground(Amber)
	case monitor.ClassServerError:
		return style.Foreground(Red).Bold(true)
	default:
		return style.Foreground(LightGray)
	}
}

// RenderFeed draws rows, newest first, as a bordered table.
func RenderFeed(rows []monitor.LogEntry) string {
	cells := make([][]string, len(rows))
	for i, e := range rows {
		cells[i] = []string{e.Timestamp, e.Method, e.URL, e.Client, strconv.Itoa(e.Status), e.Latency}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(LightGray)).
		Headers(feedHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true)
			}
			if col == statusColumn && row >= 0 && row < len(rows) {
				return StatusStyle(rows[row].Status).Padding(0, 1)
			}
			return base
		})
	return t.Render()
}
