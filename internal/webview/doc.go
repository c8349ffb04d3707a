// Package webview manages one embedded browser view.
//
// A View is constructed uninitialized, then anchored to a native surface
// handle with Initialize. After that, navigation, script evaluation, bounds
// updates, and host→content sends are forwarded synchronously to the
// underlying Engine; every operation before initialization fails with
// ErrNotInitialized.
//
// The Engine interface isolates the platform browser binding. The darwin
// engine drives a WKWebView through purego objc calls; HeadlessEngine runs
// the same script surface inside a goja interpreter for tests and platforms
// without a native binding.
//
// Immediately after the engine comes up the View injects a bootstrap script
// that defines window.__glass_ipc: hosted content calls
// __glass_ipc.send(channel, data) to reach the host, and registers
// __glass_ipc.on(channel, cb) to receive host pushes, which arrive as
// evaluated __glass_ipc.receive(channel, data) calls.
package webview
