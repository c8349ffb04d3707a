// Package shell ties the host together: named embedded browser surfaces,
// the plugin supervisor, and the frame-driven pump connecting them.
//
// The Shell is the explicit host context. Everything a surface or plugin
// operation needs hangs off it; there is no package-level state. The host
// UI loop calls Tick once per frame, which advances every surface's
// lifecycle machine, and OpenPlugin to start a provider and point a surface
// at it once the provider answers HTTP.
//
// The Shell is confined to the GUI thread, like the surface controllers it
// owns.
package shell
