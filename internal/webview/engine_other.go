//go:build !darwin

package webview

import "github.com/glasshost/glasshost/internal/platform"

// No native browser binding on this platform; hosts fall back to the
// headless engine or report the surface as unavailable.
func newNativeEngine(platform.Handle, Config, func(string)) (Engine, error) {
	return nil, platform.ErrUnsupportedPlatform
}
