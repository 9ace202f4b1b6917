package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-client/internal/board"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

var palette = map[string]lipgloss.Color{
	board.ColorX: lipgloss.Color("#F08080"),
	board.ColorO: lipgloss.Color("#6495ED"),
}

var (
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	disabledStyle = cellStyle.Faint(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)

	quadrantStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F5F"))
	openQuadrantStyle = quadrantStyle.BorderForeground(lipgloss.Color("#E4E4E4"))

	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FF5F5F")).
			Padding(0, 1)
)

func (m Model) View() string {
	if !m.ctrl.Built() {
		return "loading board...\n"
	}

	var sb strings.Builder

	indicator := m.ctrl.Indicator()
	sb.WriteString(titleStyle.Render("Next player: "))
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(palette[indicator.Color()]).Render(indicator.Text()))
	if outcome := outcomeText(m.ctrl.Status()); outcome != "" {
		sb.WriteString("   " + titleStyle.Render(outcome))
	}
	if m.inFlight > 0 {
		sb.WriteString(helpStyle.Render(fmt.Sprintf("   (%d pending)", m.inFlight)))
	}
	sb.WriteString("\n")

	rows := make([]string, 0, 3)
	for outer := 0; outer < 3; outer++ {
		quadrants := make([]string, 0, 3)
		for inner := 0; inner < 3; inner++ {
			quadrants = append(quadrants, m.viewQuadrant(m.ctrl.Quadrant(outer*3+inner)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, quadrants...))
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	sb.WriteString("\n")

	if m.notice != "" {
		sb.WriteString(noticeStyle.Render(m.notice + "\n(press any key)"))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("arrows/hjkl move • enter play • " + m.ctrl.ResetControl().Label() + ": r • q quit"))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) viewQuadrant(quadrant *board.Quadrant) string {
	cursorQuad, cursorCell := m.Cursor()

	lines := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cell := quadrant.Cell(row*3 + col)
			focused := quadrant.Index() == cursorQuad && cell.Index() == cursorCell
			cells = append(cells, viewCell(cell, focused))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	style := quadrantStyle
	if quadrant.Interactive() {
		style = openQuadrantStyle
	}
	if color, ok := palette[statusColor(quadrant.Status())]; ok {
		style = style.BorderForeground(color)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func viewCell(cell *board.Cell, focused bool) string {
	style := cellStyle
	if cell.Disabled() {
		style = disabledStyle
	}
	if color, ok := palette[statusColor(cell.Status())]; ok {
		style = style.Foreground(color)
	}
	if focused {
		style = style.Inherit(cursorStyle)
	}

	return style.Render(cell.Text())
}

func statusColor(status entity.Status) string {
	switch status {
	case entity.StatusX:
		return board.ColorX
	case entity.StatusO:
		return board.ColorO
	default:
		return ""
	}
}

func outcomeText(status entity.Status) string {
	switch status {
	case entity.StatusX, entity.StatusO:
		return string(status) + " wins"
	case entity.StatusTied:
		return "Draw"
	default:
		return ""
	}
}
