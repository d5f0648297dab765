package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/glimpse/internal/submission"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBody())

	return b.String()
}

// renderBody places the picker next to (or above) the detail pane.
func (m Model) renderBody() string {
	styles := m.theme.Styles()
	height := m.bodyHeight()

	picker := styles.PanelFocus.
		Width(m.pickerWidth() + 2).
		Height(height).
		Render(m.renderPicker())

	detail := styles.Panel.
		Width(m.detailWidth() + 2).
		Height(height).
		Render(m.renderDetail())

	if m.compact() {
		return lipgloss.JoinVertical(lipgloss.Left, picker, detail)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, picker, detail)
}

func (m Model) renderPicker() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Select an Image")
	dir := styles.FaintText.Render(truncateMiddle(m.picker.CurrentDirectory, m.pickerWidth()))
	return title + "\n" + dir + "\n\n" + m.picker.View()
}

// renderDetail shows the selection, its preview and the prediction.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	snap := m.ctrl.Snapshot()
	width := m.detailWidth()

	if !snap.HasFile {
		return styles.MutedText.Render("No image selected.") + "\n\n" +
			styles.FaintText.Render("Browse with the arrow keys and press enter on an image.")
	}

	sections := []string{m.renderSelection(snap, width)}
	sections = append(sections, m.renderPreview(snap))
	if section := m.renderPrediction(snap); section != "" {
		sections = append(sections, section)
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) renderSelection(snap submission.Snapshot, width int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("File "))
	b.WriteString(styles.Text.Bold(true).Render(truncateMiddle(snap.File.Name, maxInt(width-5, 8))))

	var facts []string
	if snap.File.Size > 0 {
		facts = append(facts, humanize.IBytes(uint64(snap.File.Size)))
	}
	if snap.HasPreview {
		if mime := strings.TrimSpace(strings.SplitN(snap.Preview.MIME, ";", 2)[0]); mime != "" {
			facts = append(facts, mime)
		}
		if dims := snap.Preview.Dimensions(); dims != "" {
			facts = append(facts, dims)
		}
	}
	if len(facts) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(strings.Join(facts, " • ")))
	}
	return b.String()
}

func (m Model) renderPreview(snap submission.Snapshot) string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Image Preview")
	switch {
	case !snap.HasPreview:
		return title + "\n" + styles.FaintText.Render("Reading image...")
	case snap.Preview.Art == "":
		return title + "\n" + styles.FaintText.Render("Preview unavailable for this format.")
	default:
		return title + "\n" + snap.Preview.Art
	}
}

func (m Model) renderPrediction(snap submission.Snapshot) string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Prediction")

	if snap.Loading {
		return title + "\n" + m.spinner.View() + " " + styles.WarningText.Render("Predicting...")
	}
	if !snap.HasResult {
		return styles.FaintText.Render("Press p to predict.")
	}

	valueStyle := styles.SuccessText
	if snap.Result.IsError() {
		valueStyle = styles.DangerText
	}
	return fmt.Sprintf("%s\n%s %s\n%s %s",
		title,
		styles.MutedText.Render("Class:"),
		valueStyle.Render(snap.Result.Label()),
		styles.MutedText.Render("Confidence:"),
		valueStyle.Render(snap.Result.Percent()),
	)
}
