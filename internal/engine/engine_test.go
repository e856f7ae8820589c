package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvm/notchtab/internal/config"
	"github.com/nvm/notchtab/internal/events"
	"github.com/nvm/notchtab/internal/notch"
)

func testMatcher() *notch.Matcher {
	return notch.NewMatcher([]notch.Entry{
		{Ratio: 1.539, NotchPercent: 3.513},
		{Ratio: 1.547, NotchPercent: 3.088},
	}, 0.001)
}

func testParams() Params {
	return Params{
		FullscreenHeight: 2.0,
		NormalHeight:     1.0,
		MaxHeight:        6.0,
	}
}

// newTestEngine returns an engine with the standard fixture plus its mock
// settings and bus.
func newTestEngine() (*Engine, *MockSettings, *events.Bus) {
	settings := NewMockSettings()
	bus := events.NewBus()
	e := New(testMatcher(), testParams(), settings, bus)
	return e, settings, bus
}

// fullscreenWindow is a MacBook Pro 14" sized window in borderless
// fullscreen: notch 69px, char height 30px, multiplier 2.3.
func fullscreenWindow(name string) *MockWindow {
	w := NewMockWindow(name)
	w.Fullscreen = "maximized"
	return w
}

func TestIsFullscreen(t *testing.T) {
	e, settings, bus := newTestEngine()
	defer bus.Close()

	w := NewMockWindow("main")
	assert.False(t, e.IsFullscreen(w), "no fullscreen attribute")

	// Any non-empty attribute counts, the variant is not distinguished.
	w.Fullscreen = "maximized"
	assert.True(t, e.IsFullscreen(w))
	w.Fullscreen = "fullwidth"
	assert.True(t, e.IsFullscreen(w))

	// Native fullscreen already handles the notch at the OS level.
	settings.Native = true
	assert.False(t, e.IsFullscreen(w))
}

func TestComputeMultiplier_NotFullscreen(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	// Normal height applies regardless of screen geometry.
	for _, size := range [][2]int{{3024, 1964}, {1920, 1080}, {800, 600}} {
		w := NewMockWindow("main")
		w.Width, w.Height = size[0], size[1]
		assert.Equal(t, 1.0, e.ComputeMultiplier(w))
	}
}

func TestComputeMultiplier_FullscreenWithNotch(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	// notch = round(1964 * 3.513 / 100) = 69 px, char height 30 px
	w := fullscreenWindow("main")
	assert.InDelta(t, 69.0/30.0, e.ComputeMultiplier(w), 1e-9)
}

func TestComputeMultiplier_FullscreenNoMatch(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	w.Width, w.Height = 1920, 1080
	assert.Equal(t, 2.0, e.ComputeMultiplier(w))
}

func TestComputeMultiplier_ZeroCharHeight(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	// A zero char height makes the division undefined; fall back to the
	// fullscreen default instead of propagating a fault.
	w := fullscreenWindow("main")
	w.CharH = 0
	assert.Equal(t, 2.0, e.ComputeMultiplier(w))
}

func TestComputeMultiplier_ClampUpper(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	// Tiny text under a tall notch: 69 / 5 = 13.8 lines, capped at 6.
	w := fullscreenWindow("main")
	w.CharH = 5
	assert.Equal(t, 6.0, e.ComputeMultiplier(w))
}

func TestComputeMultiplier_ClampLower(t *testing.T) {
	settings := NewMockSettings()
	bus := events.NewBus()
	defer bus.Close()

	params := testParams()
	params.NormalHeight = 0.25
	e := New(testMatcher(), params, settings, bus)

	w := NewMockWindow("main")
	assert.Equal(t, 1.0, e.ComputeMultiplier(w))
}

func TestComputeMultiplier_ClampInvariant(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	widths := []int{640, 1920, 3024, 3456, 7680}
	heights := []int{480, 1080, 1964, 2234, 4320}
	charHeights := []int{0, 1, 14, 30, 200}
	states := []string{"", "maximized", "both"}

	for _, width := range widths {
		for _, height := range heights {
			for _, charH := range charHeights {
				for _, state := range states {
					w := NewMockWindow("main")
					w.Width, w.Height, w.CharH = width, height, charH
					w.Fullscreen = state

					m := e.ComputeMultiplier(w)
					assert.GreaterOrEqual(t, m, 1.0)
					assert.LessOrEqual(t, m, 6.0)
				}
			}
		}
	}
}

func TestRefresh_CreatesAndUpdatesHandle(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	require.Nil(t, w.handle)

	assert.True(t, e.Refresh(w))
	require.NotNil(t, w.handle)
	assert.InDelta(t, 2.3, w.handle.Height(), 1e-9)
}

func TestRefresh_Idempotent(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	require.True(t, e.Refresh(w))
	handle := w.handle

	// Nudge the stored value by less than the change epsilon: a second
	// refresh with unchanged geometry must not touch the handle.
	nudged := handle.Height() + 5e-7
	handle.SetHeight(nudged)

	require.True(t, e.Refresh(w))
	assert.Equal(t, nudged, handle.Height())
	assert.Same(t, handle, w.handle)
}

func TestRefresh_RespondsToResize(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	require.True(t, e.Refresh(w))
	assert.InDelta(t, 2.3, w.handle.Height(), 1e-9)

	// Moved to a plain FHD screen: no notch, fullscreen default.
	w.Resize(1920, 1080)
	require.True(t, e.Refresh(w))
	assert.Equal(t, 2.0, w.handle.Height())

	// Left fullscreen: normal default.
	w.SetFullscreen("")
	require.True(t, e.Refresh(w))
	assert.Equal(t, 1.0, w.handle.Height())
}

func TestRefresh_InactiveMarker(t *testing.T) {
	e, settings, bus := newTestEngine()
	defer bus.Close()

	settings.SetPipeline([]string{"title"})

	w := fullscreenWindow("main")
	assert.False(t, e.Refresh(w))

	// The liveness check runs before handle resolution; nothing was created.
	assert.Nil(t, w.handle)
}

func TestHandleIdentity(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	first := NewMockWindow("first")
	second := NewMockWindow("second")

	h1 := e.handleFor(first)
	h2 := e.handleFor(second)
	assert.NotEqual(t, h1.ID(), h2.ID(), "distinct windows get distinct handles")

	// The same window keeps its handle.
	assert.Same(t, h1, e.handleFor(first))
	assert.Equal(t, 1, first.SetStyleHandleCalls)
}

func TestNotificationFlow(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	e.RenderMarker(w) // registers the listener and tracks the window

	bus.Publish(events.NewResizeEvent("main", 3024, 1964))
	require.NotNil(t, w.handle)
	assert.InDelta(t, 2.3, w.handle.Height(), 1e-9)

	w.Resize(1920, 1080)
	bus.Publish(events.NewResizeEvent("main", 1920, 1080))
	assert.Equal(t, 2.0, w.handle.Height())
}

func TestNotificationFlow_UnknownWindowIgnored(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	e.RenderMarker(w)

	// No window named "other" is tracked; the event is ignored.
	bus.Publish(events.NewResizeEvent("other", 1920, 1080))
	assert.InDelta(t, 2.3, w.handle.Height(), 1e-9)
}

func TestSelfDeregistration(t *testing.T) {
	e, settings, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	e.RenderMarker(w)

	bus.Publish(events.NewResizeEvent("main", 3024, 1964))
	require.InDelta(t, 2.3, w.handle.Height(), 1e-9)

	// Remove the feature from the pipeline: the next notification makes
	// the listener remove itself.
	settings.SetPipeline([]string{"title"})
	bus.Publish(events.NewResizeEvent("main", 3024, 1964))

	// Even after the feature is re-enabled, the listener is gone; this is
	// a one-way disable switch.
	settings.SetPipeline([]string{"notchtab"})
	settings.ResetCalls()
	w.SetFullscreen("")
	bus.Publish(events.NewResizeEvent("main", 3024, 1964))

	assert.InDelta(t, 2.3, w.handle.Height(), 1e-9, "height untouched after deregistration")
	assert.Equal(t, 0, settings.PipelineCalls(), "listener no longer consulted")
}

func TestWindowClosedStopsTracking(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	e.RenderMarker(w)

	bus.Publish(events.NewWindowEvent(events.EventWindowClosed, "main", nil))

	// A refresh here would raise the height to 2.3; a closed window is
	// no longer tracked, so nothing happens.
	bus.Publish(events.NewResizeEvent("main", 3024, 1964))
	assert.InDelta(t, 1.0, w.handle.Height(), 1e-9, "closed window no longer refreshed")
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.ParseConfig([]byte(`
screenRatios:
  - ratio: 1.539
    notchPercent: 3.513
tolerance: 0.001
fullscreenHeight: 3.0
normalHeight: 1.5
maxHeight: 4.0
`))
	require.NoError(t, err)

	matcher, params := FromConfig(cfg)
	assert.Equal(t, 0.001, matcher.Tolerance())
	assert.Equal(t, 69, matcher.NotchHeightPixels(3024, 1964))
	assert.Equal(t, Params{FullscreenHeight: 3.0, NormalHeight: 1.5, MaxHeight: 4.0}, params)
}

func TestSetConfig_HotReload(t *testing.T) {
	e, _, bus := newTestEngine()
	defer bus.Close()

	w := fullscreenWindow("main")
	w.Width, w.Height = 1920, 1080
	assert.Equal(t, 2.0, e.ComputeMultiplier(w))

	// Reload with a table that now covers FHD screens.
	e.SetConfig(
		notch.NewMatcher([]notch.Entry{{Ratio: 1.778, NotchPercent: 5}}, 0.001),
		Params{FullscreenHeight: 2.0, NormalHeight: 1.0, MaxHeight: 6.0},
	)

	// notch = round(1080 * 5 / 100) = 54 px, char height 30 px
	assert.InDelta(t, 54.0/30.0, e.ComputeMultiplier(w), 1e-9)
}

func BenchmarkComputeMultiplier(b *testing.B) {
	settings := NewMockSettings()
	bus := events.NewBus()
	defer bus.Close()
	e := New(testMatcher(), testParams(), settings, bus)

	w := fullscreenWindow("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.ComputeMultiplier(w)
	}
}
