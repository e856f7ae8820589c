package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvm/notchtab/internal/config"
)

var (
	headerColor = lipgloss.Color("220") // Yellow
	activeColor = lipgloss.Color("46")  // Green
	errorColor  = lipgloss.Color("196") // Red
	mutedColor  = lipgloss.Color("240") // Gray
	stripColor  = lipgloss.Color("236") // Dark gray background

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(headerColor)

	stripStyle = lipgloss.NewStyle().
			Background(stripColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(20)

	activeStyle = lipgloss.NewStyle().
			Foreground(activeColor)

	offStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

func (m model) View() string {
	var b strings.Builder

	width := m.termWidth
	if width <= 0 {
		width = 80
	}

	b.WriteString(titleStyle.Render("notchtab host simulator"))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabStrip(width))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusTable())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(helpStyle.Render("> " + m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows: resize  1-3: presets  f: fullscreen  n: native fs  p: pipeline marker  +/-: char height  c: copy  q: quit"))

	return b.String()
}

// renderTabStrip draws the simulated tab strip: one tab label on top of the
// engine's blank marker unit, so the strip visibly grows when the engine
// raises the height multiplier.
func (m model) renderTabStrip(width int) string {
	marker := m.sim.eng.RenderMarker(m.sim.window)
	lines := strings.Count(marker, "\n") + 1

	tab := " [1] notchtab "
	rows := make([]string, lines)
	rows[0] = tab + strings.Repeat(" ", max(0, width-len(tab)))
	for i := 1; i < lines; i++ {
		rows[i] = strings.Repeat(" ", width)
	}

	return stripStyle.Render(strings.Join(rows, "\n"))
}

func (m model) renderStatusTable() string {
	win := m.sim.window
	settings := m.sim.settings

	ratio := float64(win.PixelWidth()) / float64(win.PixelHeight())
	notchPx := m.matcher.NotchHeightPixels(win.PixelWidth(), win.PixelHeight())
	multiplier := m.sim.eng.ComputeMultiplier(win)

	onOff := func(on bool, yes, no string) string {
		if on {
			return activeStyle.Render(yes)
		}
		return offStyle.Render(no)
	}

	fullscreen := win.FullscreenState()
	if fullscreen == "" {
		fullscreen = offStyle.Render("off")
	} else {
		fullscreen = activeStyle.Render(fullscreen)
	}

	notchLabel := offStyle.Render("no match")
	if notchPx > 0 {
		notchLabel = activeStyle.Render(fmt.Sprintf("%d px", notchPx))
	}

	handleLabel := mutedColorRender("not created yet")
	if h := win.StyleHandle(); h != nil {
		handleLabel = fmt.Sprintf("%s (height %.3f)", h.Name(), h.Height())
	}

	rows := [][2]string{
		{"Window size", fmt.Sprintf("%d x %d px", win.PixelWidth(), win.PixelHeight())},
		{"Aspect ratio", fmt.Sprintf("%.4f", ratio)},
		{"Char height", fmt.Sprintf("%d px", win.CharHeight())},
		{"Fullscreen", fullscreen},
		{"Native fullscreen", onOff(settings.NativeFullscreen(), "on", "off")},
		{"Pipeline", renderPipeline(settings.TabStripPipeline())},
		{"Notch", notchLabel},
		{"Style handle", handleLabel},
		{"Multiplier", fmt.Sprintf("%.3f lines", multiplier)},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0]))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	return b.String()
}

func renderPipeline(pipeline []string) string {
	parts := make([]string, len(pipeline))
	hasMarker := false
	for i, name := range pipeline {
		if name == config.FeatureMarker {
			parts[i] = activeStyle.Render(name)
			hasMarker = true
		} else {
			parts[i] = name
		}
	}
	out := "[" + strings.Join(parts, ", ") + "]"
	if !hasMarker {
		out += " " + offStyle.Render("(marker absent)")
	}
	return out
}

func mutedColorRender(s string) string {
	return helpStyle.Render(s)
}
