package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/glimpse/internal/submission"
)

// renderHeader renders the status line: logo, phase badge and endpoint.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.ctrl.Snapshot()

	phase := snap.Phase.String()
	if snap.Phase == submission.PhaseDisplayed && snap.Result.IsError() {
		phase = "error"
	}

	parts := []string{
		bg.Render("glimpse", styles.Logo),
		styles.PhaseStyle(phase).Render(strings.ToUpper(phase)),
	}
	if m.endpoint != "" {
		limit := 60
		if m.compact() {
			limit = 30
		}
		parts = append(parts,
			bg.Render("endpoint", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.endpoint, limit), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)

	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		// Predict is shown disabled while a submission is pending.
		descStyle := styles.MutedText
		if m.ctrl.Loading() && binding.Help().Key == m.keys.Predict.Help().Key {
			descStyle = styles.FaintText.Strikethrough(true)
		}
		parts = append(parts, hint(bg, binding, keyStyle, descStyle))
	}
	parts = append(parts, bg.Render("enter select", styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func hint(bg BgStyle, binding key.Binding, keyStyle, descStyle lipgloss.Style) string {
	h := binding.Help()
	return bg.Render("<"+h.Key+">", keyStyle) + bg.Space() + bg.Render(h.Desc, descStyle)
}
