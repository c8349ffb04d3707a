//go:build darwin

package platform

import (
	"github.com/ebitengine/purego/objc"
)

var (
	selIsMainThread      = objc.RegisterName("isMainThread")
	selSharedApplication = objc.RegisterName("sharedApplication")
	selKeyWindow         = objc.RegisterName("keyWindow")
	selMainWindow        = objc.RegisterName("mainWindow")
	selWindows           = objc.RegisterName("windows")
	selCount             = objc.RegisterName("count")
	selObjectAtIndex     = objc.RegisterName("objectAtIndex:")
	selContentView       = objc.RegisterName("contentView")
)

// acquire returns the content NSView of the key window, falling back to the
// main window and then the first window in the application's window list.
func acquire() (Handle, error) {
	if objc.ID(objc.GetClass("NSThread")).Send(selIsMainThread) == 0 {
		return Handle{}, ErrNotOnMainThread
	}

	app := objc.ID(objc.GetClass("NSApplication")).Send(selSharedApplication)
	if app == 0 {
		return Handle{}, ErrNoWindow
	}

	win := app.Send(selKeyWindow)
	if win == 0 {
		win = app.Send(selMainWindow)
	}
	if win == 0 {
		windows := app.Send(selWindows)
		if windows != 0 && windows.Send(selCount) > 0 {
			win = windows.Send(selObjectAtIndex, 0)
		}
	}
	if win == 0 {
		return Handle{}, ErrNoWindow
	}

	view := win.Send(selContentView)
	if view == 0 {
		return Handle{}, ErrNoWindow
	}
	return Handle{ptr: uintptr(view)}, nil
}
