package engine

import (
	"sync"
)

// MockWindow is a mock implementation of Window for testing
type MockWindow struct {
	mu sync.Mutex

	// Window state
	WindowName string
	Width      int
	Height     int
	CharH      int
	Fullscreen string

	handle *StyleHandle

	// Call tracking
	StyleHandleCalls    int
	SetStyleHandleCalls int
}

func NewMockWindow(name string) *MockWindow {
	return &MockWindow{
		WindowName: name,
		Width:      3024,
		Height:     1964,
		CharH:      30,
	}
}

func (m *MockWindow) Name() string {
	return m.WindowName
}

func (m *MockWindow) PixelWidth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Width
}

func (m *MockWindow) PixelHeight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Height
}

func (m *MockWindow) CharHeight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CharH
}

func (m *MockWindow) FullscreenState() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fullscreen
}

func (m *MockWindow) StyleHandle() *StyleHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StyleHandleCalls++
	return m.handle
}

func (m *MockWindow) SetStyleHandle(h *StyleHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetStyleHandleCalls++
	m.handle = h
}

func (m *MockWindow) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Width = width
	m.Height = height
}

func (m *MockWindow) SetFullscreen(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fullscreen = state
}

// MockSettings is a mock implementation of Settings for testing
type MockSettings struct {
	mu sync.Mutex

	Native       bool
	Pipeline     []string
	GraphicalCtx bool

	// Call tracking
	NativeFullscreenCalls int
	TabStripPipelineCalls int
	GraphicalCalls        int
}

func NewMockSettings() *MockSettings {
	return &MockSettings{
		Pipeline:     []string{"notchtab", "title"},
		GraphicalCtx: true,
	}
}

func (m *MockSettings) NativeFullscreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NativeFullscreenCalls++
	return m.Native
}

func (m *MockSettings) TabStripPipeline() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TabStripPipelineCalls++
	return m.Pipeline
}

func (m *MockSettings) Graphical() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GraphicalCalls++
	return m.GraphicalCtx
}

func (m *MockSettings) SetPipeline(pipeline []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pipeline = pipeline
}

func (m *MockSettings) PipelineCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TabStripPipelineCalls
}

func (m *MockSettings) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NativeFullscreenCalls = 0
	m.TabStripPipelineCalls = 0
	m.GraphicalCalls = 0
}

// Compile-time checks to ensure the mocks implement the interfaces
var _ Window = (*MockWindow)(nil)
var _ Settings = (*MockSettings)(nil)
