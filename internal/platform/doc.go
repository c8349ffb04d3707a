// Package platform acquires an opaque handle to the drawable surface of the
// current top-level window.
//
// Acquisition is a read-only query and must run on the thread that owns the
// GUI event loop. The handle is consumed immediately by the webview engine
// and is never retained across initialization attempts.
package platform
