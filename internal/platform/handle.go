package platform

import "errors"

var (
	// ErrNoWindow means no top-level window exists yet.
	ErrNoWindow = errors.New("platform: no window available")
	// ErrNotOnMainThread means Acquire ran off the GUI thread.
	ErrNotOnMainThread = errors.New("platform: must be called from the main thread")
	// ErrUnsupportedPlatform means this OS has no handle provider.
	ErrUnsupportedPlatform = errors.New("platform: unsupported platform")
)

// Handle is an opaque pointer to a native drawable surface: an NSView on
// macOS, an HWND on Windows.
type Handle struct {
	ptr uintptr
}

// Pointer exposes the raw native pointer for the webview engine.
func (h Handle) Pointer() uintptr { return h.ptr }

// IsZero reports whether the handle was never acquired.
func (h Handle) IsZero() bool { return h.ptr == 0 }

// Acquire resolves the current window's surface handle.
//
// When several windows exist the focused window wins, then the designated
// main window, then the first window in creation order. Fails with
// ErrNoWindow when none exist and ErrUnsupportedPlatform on platforms
// without a provider.
func Acquire() (Handle, error) {
	return acquire()
}
