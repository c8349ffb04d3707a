//go:build windows

package platform

import "golang.org/x/sys/windows"

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	getForegroundWindow = user32.NewProc("GetForegroundWindow")
	getActiveWindow     = user32.NewProc("GetActiveWindow")
)

// acquire returns the foreground window's HWND, falling back to the active
// window of the calling thread.
func acquire() (Handle, error) {
	hwnd, _, _ := getForegroundWindow.Call()
	if hwnd == 0 {
		hwnd, _, _ = getActiveWindow.Call()
	}
	if hwnd == 0 {
		return Handle{}, ErrNoWindow
	}
	return Handle{ptr: hwnd}, nil
}
