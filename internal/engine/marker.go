package engine

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// markerStyle is the base style for the blank tab-strip unit. Height is set
// per render from the window's style handle.
var markerStyle = lipgloss.NewStyle()

// RenderMarker returns the blank tab-strip unit for a window, sized by the
// window's current style handle. The host's tab-strip layout calls this on
// every redraw.
//
// In a non-graphical context (a text terminal) variable-height units are
// not supported and a plain single blank is returned, unstyled, without
// registering anything.
//
// The first graphical call registers the engine on the host's notification
// channel; subsequent calls never register duplicate listeners.
func (e *Engine) RenderMarker(w Window) string {
	if !e.settings.Graphical() {
		return " "
	}

	e.registerOnce.Do(e.register)
	e.trackWindow(w)

	handle := e.handleFor(w)
	lines := int(math.Round(handle.Height()))
	if lines < 1 {
		lines = 1
	}

	return markerStyle.Height(lines).Render(" ")
}
