package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kurobon/gitbttf/internal/git"
)

var (
	appStyle = lipgloss.NewStyle().Margin(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			PaddingLeft(1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// lineStyles colors transcript lines by severity.
var lineStyles = map[git.Severity]lipgloss.Style{
	git.SeverityDefault: lipgloss.NewStyle(),
	git.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#00FA9A")),
	git.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	git.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4C4C")).Bold(true),
	git.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	git.SeverityCommand: lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true),
}

func renderLine(l git.Line) string {
	style, ok := lineStyles[l.Severity]
	if !ok {
		return l.Text
	}
	return style.Render(l.Text)
}
