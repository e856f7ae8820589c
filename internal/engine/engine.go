// Package engine computes the tab-strip height that hides a display notch
// behind the strip when a window fills the screen in non-native fullscreen.
//
// The engine is driven by host resize/redraw notifications: each one
// recomputes the affected window's height multiplier and writes it into the
// window's style handle only when it actually changed, so redundant events
// cause no re-renders.
package engine

import (
	"math"
	"sync"

	"github.com/nvm/notchtab/internal/config"
	"github.com/nvm/notchtab/internal/events"
	"github.com/nvm/notchtab/internal/logger"
	"github.com/nvm/notchtab/internal/notch"
)

// heightEpsilon is the change threshold below which a computed multiplier
// is considered unchanged and the style handle is left alone. Independent
// of the aspect-ratio tolerance.
const heightEpsilon = 1e-6

// Params are the engine's configured height parameters, read-only inputs.
type Params struct {
	// FullscreenHeight is used when fullscreen but no ratio entry matches.
	FullscreenHeight float64
	// NormalHeight is used outside fullscreen.
	NormalHeight float64
	// MaxHeight caps every computed multiplier.
	MaxHeight float64
}

// FromConfig derives the engine inputs from a validated configuration.
func FromConfig(cfg *config.Config) (*notch.Matcher, Params) {
	matcher := notch.NewMatcher(cfg.ScreenRatios, cfg.GetToleranceOrDefault())
	params := Params{
		FullscreenHeight: cfg.GetFullscreenHeightOrDefault(),
		NormalHeight:     cfg.GetNormalHeightOrDefault(),
		MaxHeight:        cfg.GetMaxHeightOrDefault(),
	}
	return matcher, params
}

// Engine computes and applies per-window tab-strip heights.
type Engine struct {
	mu      sync.RWMutex
	matcher *notch.Matcher
	params  Params
	windows map[string]Window

	settings Settings
	bus      *events.Bus

	registerOnce sync.Once
	resizeSub    *events.Subscription
	redrawSub    *events.Subscription
	closeSub     *events.Subscription
}

// New creates an Engine. The bus is the host's notification channel; the
// engine registers itself on it lazily, on the first marker render.
func New(matcher *notch.Matcher, params Params, settings Settings, bus *events.Bus) *Engine {
	return &Engine{
		matcher:  matcher,
		params:   params,
		windows:  make(map[string]Window),
		settings: settings,
		bus:      bus,
	}
}

// SetConfig swaps the ratio matcher and height parameters, used on config
// hot-reload. Existing style handles keep their values until the next
// refresh recomputes them.
func (e *Engine) SetConfig(matcher *notch.Matcher, params Params) {
	e.mu.Lock()
	e.matcher = matcher
	e.params = params
	e.mu.Unlock()
}

// IsFullscreen reports whether a window is in non-native fullscreen.
//
// This is a heuristic, not an OS query: native fullscreen needs no
// adjustment (the OS lays content out around the notch), so it always
// reports false; otherwise any non-empty fullscreen attribute counts. A
// window maximized on a notch-less monitor also reports true here and is
// filtered out by the ratio table instead.
func (e *Engine) IsFullscreen(w Window) bool {
	if e.settings.NativeFullscreen() {
		return false
	}
	return w.FullscreenState() != ""
}

// ComputeMultiplier returns the tab-strip height in text lines for the
// window's current geometry, clamped to [1, MaxHeight].
func (e *Engine) ComputeMultiplier(w Window) float64 {
	e.mu.RLock()
	matcher := e.matcher
	params := e.params
	e.mu.RUnlock()

	var multiplier float64
	if !e.IsFullscreen(w) {
		multiplier = params.NormalHeight
	} else {
		notchPx := matcher.NotchHeightPixels(w.PixelWidth(), w.PixelHeight())
		if notchPx > 0 && w.CharHeight() > 0 {
			multiplier = float64(notchPx) / float64(w.CharHeight())
		} else {
			// No notch, or the host reported a zero char height and no
			// meaningful multiplier can be computed.
			multiplier = params.FullscreenHeight
		}
	}

	return clamp(multiplier, 1.0, params.MaxHeight)
}

// Refresh recomputes the window's multiplier and writes it into the style
// handle when it changed by more than heightEpsilon. The return value is
// the liveness signal: false means the feature marker has been removed
// from the tab-strip pipeline and the caller should stop invoking the
// engine for future notifications.
//
// Safe to call redundantly; unchanged geometry causes no writes.
func (e *Engine) Refresh(w Window) bool {
	if !e.markerActive() {
		return false
	}

	handle := e.handleFor(w)
	current := handle.Height()
	next := e.ComputeMultiplier(w)

	if math.Abs(next-current) > heightEpsilon {
		handle.SetHeight(next)
		logger.Debug("tab strip height updated", map[string]interface{}{
			"window": w.Name(),
			"handle": handle.Name(),
			"height": next,
		})
	}

	return true
}

// markerActive reports whether this feature is still part of the host's
// active tab-strip pipeline.
func (e *Engine) markerActive() bool {
	for _, name := range e.settings.TabStripPipeline() {
		if name == config.FeatureMarker {
			return true
		}
	}
	return false
}

// handleFor returns the window's style handle, creating and parking one on
// first use.
func (e *Engine) handleFor(w Window) *StyleHandle {
	if h := w.StyleHandle(); h != nil {
		return h
	}
	h := NewStyleHandle()
	w.SetStyleHandle(h)
	return h
}

// register subscribes the engine to the host's notification channel.
// Called at most once per Engine.
func (e *Engine) register() {
	handler := func(ev events.Event) {
		e.handleNotification(ev)
	}
	e.resizeSub = e.bus.Subscribe(events.EventWindowResized, handler)
	e.redrawSub = e.bus.Subscribe(events.EventWindowRedrawn, handler)
	e.closeSub = e.bus.Subscribe(events.EventWindowClosed, func(ev events.Event) {
		e.forgetWindow(ev.Window)
	})
}

// handleNotification refreshes the named window. When Refresh reports the
// feature as disabled, the engine removes its own subscriptions: a one-way
// transition, no other teardown call exists.
func (e *Engine) handleNotification(ev events.Event) {
	w := e.windowByName(ev.Window)
	if w == nil {
		return
	}

	if !e.Refresh(w) {
		e.resizeSub.Cancel()
		e.redrawSub.Cancel()
		e.closeSub.Cancel()
		logger.Info("feature removed from tab-strip pipeline, listener deregistered")
	}
}

func (e *Engine) trackWindow(w Window) {
	e.mu.Lock()
	e.windows[w.Name()] = w
	e.mu.Unlock()
}

func (e *Engine) forgetWindow(name string) {
	e.mu.Lock()
	delete(e.windows, name)
	e.mu.Unlock()
}

func (e *Engine) windowByName(name string) Window {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.windows[name]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
