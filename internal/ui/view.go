package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"webdoggy/internal/doggy"
)

var gameStyles = struct {
	title  lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
	page   lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#767676")),

	page: lipgloss.NewStyle(),
}

const helpText = "F1 summon • F2 dismiss • right-click doggy for commands • ctrl+c quit"

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Bye bye doggy!\n"
	}
	if m.Width == 0 {
		return "Loading page..."
	}

	title := gameStyles.title.Render(doggy.PetEmoji + " Web Doggy " + doggy.PetEmoji)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		gameStyles.page.Render(m.renderPage()),
		m.renderStatus(),
	)
}

func (m Model) renderPage() string {
	cv := newCanvas(m.Width, m.visibleRows())
	sprite := ""
	if m.Doggy.Active() {
		p := m.Doggy.Pet()
		sprite = GetAnimationFrame(p.Activity, m.Animation.Frame(doggy.TimeNow()), p.Flipped)
	}
	paintPage(cv, m.Page, m.projection(), m.Page.Focused(), sprite)
	return cv.String()
}

func (m Model) renderStatus() string {
	var parts []string
	if m.Message != "" && doggy.TimeNow().Before(m.MessageExpires) {
		parts = append(parts, m.Message)
	} else if m.Doggy.Active() {
		p := m.Doggy.Pet()
		s := fmt.Sprintf("%s at (%.0f, %.0f)", p.Activity, p.Position.X, p.Position.Y)
		if p.Mouth != "" {
			s += fmt.Sprintf(" • mouth: %q", p.Mouth)
		}
		parts = append(parts, s)
	} else {
		parts = append(parts, "Doggy is out")
	}

	status := gameStyles.status.Render(strings.Join(parts, " "))
	help := gameStyles.help.Render(helpText)
	return lipgloss.JoinHorizontal(lipgloss.Top, status, "  ", help)
}
