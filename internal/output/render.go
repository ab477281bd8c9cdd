package output

import (
	"fmt"
	"strings"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Report palette
var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorYellow = lipgloss.Color("#D0A215")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	borderStyle  = lipgloss.NewStyle().Foreground(colorBorder)
	warnStyle    = lipgloss.NewStyle().Foreground(colorOrange)
	goodStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginTop(1)
)

// statusStyles colors utilization cells by tier
var statusStyles = map[domain.UtilizationStatus]lipgloss.Style{
	domain.StatusGood:      lipgloss.NewStyle().Foreground(colorGreen),
	domain.StatusMedium:    lipgloss.NewStyle().Foreground(colorYellow),
	domain.StatusHigh:      lipgloss.NewStyle().Foreground(colorOrange),
	domain.StatusOverLimit: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
}

// table is a bordered text table. The first column is left-aligned, the rest right-aligned.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// renderTitle renders a centered title bar in a bordered box.
func renderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(64).
		Align(lipgloss.Center).
		Render(titleStyle.Render(title))
}

func renderSection(title string) string {
	return sectionStyle.Render(strings.ToUpper(title))
}

func renderTable(t table) string {
	numCols := len(t.Headers)
	if numCols == 0 {
		return ""
	}
	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < numCols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	rule := func(left, mid, right string) string {
		parts := make([]string, numCols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return borderStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(cells []string, style *lipgloss.Style) string {
		var b strings.Builder
		b.WriteString(borderStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = style.Render(cell)
			}
			if i == 0 {
				cell = " " + cell + strings.Repeat(" ", pad) + " "
			} else {
				cell = " " + strings.Repeat(" ", pad) + cell + " "
			}
			b.WriteString(cell)
			b.WriteString(borderStyle.Render("│"))
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	b.WriteString(line(t.Headers, &headerStyle))
	b.WriteString(rule("├", "┼", "┤"))
	for _, row := range t.Rows {
		b.WriteString(line(row, nil))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// styledUtilization renders a utilization percentage in its tier color
func styledUtilization(status domain.UtilizationStatus, text string) string {
	if s, ok := statusStyles[status]; ok {
		return s.Render(text)
	}
	return text
}

func bullet(style lipgloss.Style, prefix, text string) string {
	return fmt.Sprintf("  %s %s\n", style.Render(prefix), text)
}
