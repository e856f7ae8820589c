// Package ui provides an interactive simulator standing in for the host
// windowing system. It drives the height engine the way a real host would:
// geometry changes publish resize notifications, and the tab strip is
// rendered from the engine's marker on every redraw.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.design/x/clipboard"

	"github.com/nvm/notchtab/internal/config"
	"github.com/nvm/notchtab/internal/engine"
	"github.com/nvm/notchtab/internal/events"
	"github.com/nvm/notchtab/internal/notch"
)

// Pixel step for manual window resizing
const resizeStep = 16

// Screen presets reachable with number keys
var presets = []struct {
	Label  string
	Width  int
	Height int
}{
	{"MacBook Pro 14\"", 3024, 1964},
	{"MacBook Pro 16\"", 3456, 2234},
	{"FHD monitor", 1920, 1080},
}

// Simulator owns the simulated host state and runs the bubbletea program.
type Simulator struct {
	window   *SimWindow
	settings *SimSettings
	eng      *engine.Engine
	bus      *events.Bus
	matcher  *notch.Matcher

	program *tea.Program
}

// NewSimulator creates a simulator around an engine and its notification bus.
func NewSimulator(eng *engine.Engine, bus *events.Bus, window *SimWindow, settings *SimSettings, matcher *notch.Matcher) *Simulator {
	return &Simulator{
		window:   window,
		settings: settings,
		eng:      eng,
		bus:      bus,
		matcher:  matcher,
	}
}

// SetMatcher swaps the matcher used for diagnostics after a config reload.
func (s *Simulator) SetMatcher(m *notch.Matcher) {
	if s.program != nil {
		s.program.Send(matcherReloadedMsg{matcher: m})
	}
}

// Run starts the bubbletea program and blocks until the user quits.
func (s *Simulator) Run() error {
	m := model{
		sim:        s,
		matcher:    s.matcher,
		fullscreen: fullscreenStates{"", "maximized", "both"},
	}

	s.program = tea.NewProgram(m, tea.WithAltScreen())
	_, err := s.program.Run()
	return err
}

// matcherReloadedMsg carries the new matcher after a config hot-reload
type matcherReloadedMsg struct {
	matcher *notch.Matcher
}

// fullscreenStates is the cycle of simulated fullscreen attribute values
type fullscreenStates []string

func (f fullscreenStates) next(current string) string {
	for i, state := range f {
		if state == current {
			return f[(i+1)%len(f)]
		}
	}
	return f[0]
}

// bubbletea model
type model struct {
	sim        *Simulator
	matcher    *notch.Matcher
	fullscreen fullscreenStates
	termWidth  int
	termHeight int
	status     string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil

	case matcherReloadedMsg:
		m.matcher = msg.matcher
		m.status = "configuration reloaded"
		m.publishRedraw()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	win := m.sim.window

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left":
		m.resizeBy(-resizeStep, 0)
	case "right":
		m.resizeBy(resizeStep, 0)
	case "up":
		m.resizeBy(0, -resizeStep)
	case "down":
		m.resizeBy(0, resizeStep)

	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		p := presets[idx]
		win.Resize(p.Width, p.Height)
		m.status = fmt.Sprintf("preset: %s (%dx%d)", p.Label, p.Width, p.Height)
		m.publishResize()

	case "f":
		state := m.fullscreen.next(win.FullscreenState())
		win.SetFullscreen(state)
		if state == "" {
			m.status = "fullscreen off"
		} else {
			m.status = fmt.Sprintf("fullscreen: %s", state)
		}
		m.publishResize()

	case "n":
		if m.sim.settings.ToggleNativeFullscreen() {
			m.status = "native fullscreen enabled"
		} else {
			m.status = "native fullscreen disabled"
		}
		m.publishRedraw()

	case "p":
		if m.sim.settings.TogglePipelineMarker(config.FeatureMarker) {
			m.status = "feature marker restored (listener stays dead once deregistered)"
		} else {
			m.status = "feature marker removed from pipeline"
		}
		m.publishRedraw()

	case "+", "=":
		win.SetCharHeight(win.CharHeight() + 1)
		m.status = fmt.Sprintf("char height: %dpx", win.CharHeight())
		m.publishRedraw()

	case "-":
		win.SetCharHeight(win.CharHeight() - 1)
		m.status = fmt.Sprintf("char height: %dpx", win.CharHeight())
		m.publishRedraw()

	case "c":
		if err := clipboard.Init(); err == nil {
			clipboard.Write(clipboard.FmtText, []byte(m.diagnostics()))
			m.status = "diagnostics copied to clipboard"
		} else {
			m.status = fmt.Sprintf("clipboard unavailable: %v", err)
		}
	}

	return m, nil
}

func (m *model) resizeBy(dw, dh int) {
	win := m.sim.window
	width := win.PixelWidth() + dw
	height := win.PixelHeight() + dh
	if width < 64 {
		width = 64
	}
	if height < 64 {
		height = 64
	}
	win.Resize(width, height)
	m.status = fmt.Sprintf("resized to %dx%d", width, height)
	m.publishResize()
}

func (m *model) publishResize() {
	win := m.sim.window
	m.sim.bus.Publish(events.NewResizeEvent(win.Name(), win.PixelWidth(), win.PixelHeight()))
}

func (m *model) publishRedraw() {
	m.sim.bus.Publish(events.NewWindowEvent(events.EventWindowRedrawn, m.sim.window.Name(), nil))
}

// diagnostics builds the one-line summary used for the clipboard copy.
func (m *model) diagnostics() string {
	win := m.sim.window
	ratio := float64(win.PixelWidth()) / float64(win.PixelHeight())
	notchPx := m.matcher.NotchHeightPixels(win.PixelWidth(), win.PixelHeight())
	return fmt.Sprintf("window=%s size=%dx%d ratio=%.4f fullscreen=%q char=%dpx notch=%dpx multiplier=%.3f",
		win.Name(), win.PixelWidth(), win.PixelHeight(), ratio,
		win.FullscreenState(), win.CharHeight(), notchPx,
		m.sim.eng.ComputeMultiplier(win))
}
