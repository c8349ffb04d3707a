package webview

import (
	"errors"

	"github.com/glasshost/glasshost/internal/platform"
)

var (
	// ErrNotInitialized is returned by operations that need a live view.
	ErrNotInitialized = errors.New("webview: not initialized")
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("webview: already initialized")
)

// Bounds is the view's position and size in logical units, relative to the
// host window's drawable surface.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Config fixes the view's construction-time parameters. Bounds remain
// updatable after construction; everything else is immutable.
type Config struct {
	// URL loaded when the engine comes up. Empty means about:blank.
	URL string
	// Bounds is the initial placement.
	Bounds Bounds
	// DevTools enables the platform inspector where available.
	DevTools bool
	// Transparent requests a transparent background.
	Transparent bool
	// UserAgent overrides the engine default when non-empty.
	UserAgent string
}

// AboutBlank is the URL a surface shows before any content is loaded.
const AboutBlank = "about:blank"

// Engine is the platform browser binding behind a View. Calls are
// fire-and-forget: no response channel, errors only report submission
// failure.
type Engine interface {
	Navigate(url string) error
	Eval(script string) error
	SetBounds(b Bounds) error
	SetVisible(visible bool) error
	// Close tears the platform view down. Must be idempotent.
	Close() error
}

// EngineFactory builds an Engine anchored as a child of the native handle.
// Raw messages posted by hosted content are delivered through onMessage.
type EngineFactory func(h platform.Handle, cfg Config, onMessage func(raw string)) (Engine, error)

// NativeFactory builds the platform engine for this OS. On platforms with
// no native binding it fails with platform.ErrUnsupportedPlatform.
func NativeFactory() EngineFactory {
	return newNativeEngine
}
