package ui

import (
	"sync"

	"github.com/nvm/notchtab/internal/engine"
)

// SimWindow is a simulated host window. It stands in for the windowing
// system's window object: the engine queries its geometry and parks a style
// handle on it, exactly as it would on a real window.
type SimWindow struct {
	mu         sync.Mutex
	name       string
	width      int
	height     int
	charHeight int
	fullscreen string
	handle     *engine.StyleHandle
}

// NewSimWindow creates a simulated window with the given pixel geometry.
func NewSimWindow(name string, width, height, charHeight int) *SimWindow {
	return &SimWindow{
		name:       name,
		width:      width,
		height:     height,
		charHeight: charHeight,
	}
}

func (w *SimWindow) Name() string {
	return w.name
}

func (w *SimWindow) PixelWidth() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *SimWindow) PixelHeight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *SimWindow) CharHeight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.charHeight
}

func (w *SimWindow) FullscreenState() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *SimWindow) StyleHandle() *engine.StyleHandle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.handle
}

func (w *SimWindow) SetStyleHandle(h *engine.StyleHandle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handle = h
}

// Resize sets the window's pixel size.
func (w *SimWindow) Resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width = width
	w.height = height
}

// SetCharHeight sets the pixel height of one text line.
func (w *SimWindow) SetCharHeight(h int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if h >= 1 {
		w.charHeight = h
	}
}

// SetFullscreen sets the opaque fullscreen attribute.
func (w *SimWindow) SetFullscreen(state string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fullscreen = state
}

// SimSettings is the simulated host's global settings.
type SimSettings struct {
	mu        sync.Mutex
	native    bool
	pipeline  []string
	graphical bool
}

// NewSimSettings creates settings with the given pipeline, graphical
// context enabled and native fullscreen disabled.
func NewSimSettings(pipeline []string) *SimSettings {
	return &SimSettings{
		pipeline:  pipeline,
		graphical: true,
	}
}

func (s *SimSettings) NativeFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.native
}

func (s *SimSettings) TabStripPipeline() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.pipeline))
	copy(out, s.pipeline)
	return out
}

func (s *SimSettings) Graphical() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graphical
}

// SetGraphical switches the simulated display context.
func (s *SimSettings) SetGraphical(graphical bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphical = graphical
}

// SetNativeFullscreen sets the native-fullscreen setting.
func (s *SimSettings) SetNativeFullscreen(native bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.native = native
}

// ToggleNativeFullscreen flips the native-fullscreen setting and returns
// the new value.
func (s *SimSettings) ToggleNativeFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.native = !s.native
	return s.native
}

// TogglePipelineMarker removes the marker from the pipeline if present,
// adds it otherwise, and returns whether it is now present.
func (s *SimSettings) TogglePipelineMarker(marker string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, name := range s.pipeline {
		if name == marker {
			s.pipeline = append(s.pipeline[:i:i], s.pipeline[i+1:]...)
			return false
		}
	}
	s.pipeline = append(s.pipeline, marker)
	return true
}

// Compile-time checks to ensure the simulator types implement the engine's
// host contract
var _ engine.Window = (*SimWindow)(nil)
var _ engine.Settings = (*SimSettings)(nil)
