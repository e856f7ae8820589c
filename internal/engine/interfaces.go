package engine

// Window is the engine's view of a host window. The host owns the window;
// the engine only queries its geometry and parks a style handle on it.
// This allows for mocking in tests.
type Window interface {
	// Name identifies the window in host notifications.
	Name() string

	// PixelWidth and PixelHeight are the window's current size in pixels.
	PixelWidth() int
	PixelHeight() int

	// CharHeight is the height of one text line in pixels.
	CharHeight() int

	// FullscreenState is the host's opaque fullscreen attribute. Empty
	// means the window is not fullscreen; any other value counts as
	// fullscreen regardless of the variant.
	FullscreenState() string

	// StyleHandle returns the handle previously parked on this window,
	// or nil if none exists yet.
	StyleHandle() *StyleHandle

	// SetStyleHandle parks a handle on this window. The handle's
	// lifetime is bound to the window's.
	SetStyleHandle(*StyleHandle)
}

// Settings is the engine's view of the host's global settings.
// This allows for mocking in tests.
type Settings interface {
	// NativeFullscreen reports whether the host uses OS-level fullscreen,
	// which already accounts for the notch.
	NativeFullscreen() bool

	// TabStripPipeline lists the active tab-strip rendering features.
	TabStripPipeline() []string

	// Graphical reports whether the display context supports per-window
	// variable-height rendering units. False in a text terminal.
	Graphical() bool
}
