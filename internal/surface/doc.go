// Package surface drives the frame-by-frame lifecycle of one embedded view.
//
// A Controller is a small state machine ticked once per host frame. It
// defers the first initialization attempt until the host window has had a
// few frames to materialize, retries failed attempts on a fixed interval up
// to a hard cap, and goes permanently Exhausted after the final failure —
// the surface stays blank and the failure is reported exactly once.
//
// Bounds changes are cached and forwarded to the view only while the
// surface is active and initialized, and only when they actually differ
// from the last synced rect. Deactivating a surface hides the view and
// freezes the machine without resetting the attempt counter.
//
// Controllers are confined to the GUI thread: every method is expected to
// run inside the host's per-frame event dispatch, so there is no internal
// locking.
package surface
