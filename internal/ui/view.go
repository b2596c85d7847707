package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/mks/bankboard/internal/board"
	"github.com/mks/bankboard/internal/theme"
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	sections := []string{
		m.viewMarquee(),
		"",
		m.viewHero(),
		"",
		m.viewBoard(),
	}
	if m.panel == panelOpen {
		sections = append(sections, "", m.viewPanel())
	}
	sections = append(sections, "", m.viewFooter())

	page := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Background(theme.Default.Base)
	return page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// geometry describes the fixed screen layout. The mouse handler uses the
// same numbers as the renderer, so hit-testing and drawing cannot drift
// apart.
type geometry struct {
	marqueeRows int
	gridTop     int
	cols        int
	cardW       int
	cardH       int
	gap         int
}

func (m Model) geometry() geometry {
	g := geometry{marqueeRows: 1, cardW: 22, cardH: 5, gap: 1}
	g.cols = (m.width + g.gap) / (g.cardW + g.gap)
	if g.cols < 1 {
		g.cols = 1
	}
	if n := m.board.Len(); n > 0 && g.cols > n {
		g.cols = n
	}
	// marquee + blank + hero + blank
	g.gridTop = g.marqueeRows + 1 + lipgloss.Height(m.viewHero()) + 1
	return g
}

// hitStock maps a click to the stock widget under it, if any.
func (m Model) hitStock(g geometry, x, y int) (string, bool) {
	slots := m.board.Slots()
	if len(slots) == 0 || y < g.gridTop {
		return "", false
	}
	// Integer division truncates toward zero, so the y bound must be
	// checked before computing the row.
	row := (y - g.gridTop) / g.cardH
	col := x / (g.cardW + g.gap)
	if row < 0 || col < 0 || col >= g.cols {
		return "", false
	}
	if x%(g.cardW+g.gap) >= g.cardW {
		return "", false // in the gap between cards
	}
	idx := row*g.cols + col
	if idx >= len(slots) {
		return "", false
	}
	return slots[idx].Symbol, true
}

func (m Model) viewMarquee() string {
	t := theme.Default
	style := lipgloss.NewStyle().
		Background(t.Surface).
		Foreground(t.Accent).
		Width(m.width)
	if m.strip.Empty() {
		return style.Render("")
	}
	return style.Render(m.strip.Window(m.offset, m.width))
}

func (m Model) viewHero() string {
	t := theme.Default

	balFig := renderFiglet("$ " + m.balance)
	balBlock := theme.GradientText(balFig, t.Primary, t.Accent)

	name := m.username
	if name == "" {
		name = "?"
	}
	info := lipgloss.NewStyle().Foreground(t.Text).
		Render(fmt.Sprintf("%s · %s", name, m.timeString))
	if !m.connected {
		info += lipgloss.NewStyle().Foreground(t.Error).Render("  ● offline")
	}

	return lipgloss.JoinVertical(lipgloss.Left, balBlock, "", info)
}

func (m Model) viewBoard() string {
	t := theme.Default
	g := m.geometry()
	slots := m.board.Slots()
	if len(slots) == 0 {
		return ""
	}

	// Total card footprint is cardW wide and cardH tall, border included.
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(g.cardW - 2)
	innerW := g.cardW - 4

	var rows []string
	for start := 0; start < len(slots); start += g.cols {
		end := start + g.cols
		if end > len(slots) {
			end = len(slots)
		}
		var cells []string
		for _, s := range slots[start:end] {
			if len(cells) > 0 {
				cells = append(cells, strings.Repeat(" ", g.gap))
			}
			cells = append(cells, card.Render(renderSlot(s, innerW)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSlot(s board.Slot, innerW int) string {
	t := theme.Default

	sym := lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(s.Symbol)
	name := lipgloss.NewStyle().Foreground(t.Muted).
		Render(ansi.Truncate(s.Name, innerW, "…"))
	price := lipgloss.NewStyle().Foreground(t.Info).Render(s.Price)

	// Two mutually exclusive directional styles; the neutral glyph gets
	// neither.
	chStyle := lipgloss.NewStyle().Foreground(t.Muted)
	switch s.Change.Dir {
	case board.DirUp:
		chStyle = lipgloss.NewStyle().Foreground(t.Success)
	case board.DirDown:
		chStyle = lipgloss.NewStyle().Foreground(t.Error)
	}
	change := chStyle.Render(s.Change.Text)

	line := price + " " + change
	return lipgloss.JoinVertical(lipgloss.Left, sym, name, ansi.Truncate(line, innerW, "…"))
}

func (m Model) viewPanel() string {
	t := theme.Default

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("SEND MONEY")

	var recipients []string
	switch {
	case m.rosterBusy && len(m.roster) == 0:
		recipients = append(recipients, lipgloss.NewStyle().Foreground(t.Muted).Render("Loading players..."))
	case len(m.roster) == 0:
		recipients = append(recipients, lipgloss.NewStyle().Foreground(t.Muted).Render("No one to send to."))
	default:
		for i, r := range m.roster {
			prefix := "  "
			style := lipgloss.NewStyle().Foreground(t.Muted)
			if i == m.cursor {
				prefix = "→ "
				style = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
			}
			recipients = append(recipients, style.Render(prefix+r))
		}
	}

	statusStyle := lipgloss.NewStyle().Foreground(t.Success)
	if m.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(t.Error)
	}

	help := lipgloss.NewStyle().Foreground(t.Muted).Render("enter send · esc close")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(recipients, "\n"),
		"",
		m.amount.View(),
		statusStyle.Render(m.status),
		help,
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 2).
		Render(body)
}

func (m Model) viewFooter() string {
	t := theme.Default
	return lipgloss.NewStyle().Foreground(t.Muted).
		Render("t send money · n news · q quit")
}

// renderFiglet renders text as big type using go-figure's standard font.
func renderFiglet(text string) string {
	fig := figure.NewFigure(text, "", false)
	return strings.Join(fig.Slicify(), "\n")
}
