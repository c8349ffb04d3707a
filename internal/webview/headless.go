package webview

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"

	"github.com/glasshost/glasshost/internal/platform"
)

// HeadlessEngine implements Engine on a goja interpreter instead of a native
// browser. The bootstrap script and the bridge behave exactly as they do
// against a real view, which makes the engine the backend of choice for
// tests and for platforms without a native binding.
//
// The interpreter persists across Navigate calls; only the recorded URL
// changes. No content is fetched.
type HeadlessEngine struct {
	mu        sync.Mutex
	vm        *goja.Runtime
	onMessage func(string)
	url       string
	bounds    Bounds
	visible   bool
	closed    bool
}

// HeadlessFactory adapts NewHeadlessEngine to the EngineFactory signature.
// The native handle is ignored.
func HeadlessFactory() EngineFactory {
	return func(_ platform.Handle, cfg Config, onMessage func(string)) (Engine, error) {
		return NewHeadlessEngine(cfg, onMessage)
	}
}

// NewHeadlessEngine builds a headless engine with window, console, history,
// and location stubs plus the window.ipc.postMessage primitive wired to
// onMessage.
func NewHeadlessEngine(cfg Config, onMessage func(string)) (*HeadlessEngine, error) {
	e := &HeadlessEngine{
		vm:        goja.New(),
		onMessage: onMessage,
		url:       cfg.URL,
		bounds:    cfg.Bounds,
		visible:   true,
	}
	if e.url == "" {
		e.url = AboutBlank
	}

	global := e.vm.GlobalObject()
	if err := global.Set("window", global); err != nil {
		return nil, fmt.Errorf("webview: headless setup: %w", err)
	}

	ipc := e.vm.NewObject()
	_ = ipc.Set("postMessage", func(raw string) {
		if e.onMessage != nil {
			e.onMessage(raw)
		}
	})
	_ = global.Set("ipc", ipc)

	console := e.vm.NewObject()
	noop := func(call goja.FunctionCall) goja.Value { return goja.Undefined() }
	_ = console.Set("log", noop)
	_ = console.Set("error", noop)
	_ = console.Set("warn", noop)
	_ = global.Set("console", console)

	history := e.vm.NewObject()
	_ = history.Set("back", noop)
	_ = history.Set("forward", noop)
	_ = global.Set("history", history)

	location := e.vm.NewObject()
	_ = location.Set("reload", noop)
	_ = location.Set("href", e.url)
	_ = global.Set("location", location)

	return e, nil
}

// Navigate records the URL; headless views fetch nothing.
func (e *HeadlessEngine) Navigate(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrNotInitialized
	}
	e.url = url
	location := e.vm.GlobalObject().Get("location")
	if obj, ok := location.(*goja.Object); ok {
		_ = obj.Set("href", url)
	}
	return nil
}

// Eval runs the script inside the interpreter. The interpreter lock is not
// held during execution: scripts post messages whose callbacks may evaluate
// further scripts, and frame-driven scheduling keeps everything on one
// goroutine anyway.
func (e *HeadlessEngine) Eval(script string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrNotInitialized
	}
	vm := e.vm
	e.mu.Unlock()

	if _, err := vm.RunString(script); err != nil {
		return fmt.Errorf("webview: headless eval: %w", err)
	}
	return nil
}

// SetBounds records the bounds.
func (e *HeadlessEngine) SetBounds(b Bounds) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bounds = b
	return nil
}

// SetVisible records visibility.
func (e *HeadlessEngine) SetVisible(visible bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = visible
	return nil
}

// Close releases the interpreter.
func (e *HeadlessEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// URL reports the last navigated URL.
func (e *HeadlessEngine) URL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.url
}

// CurrentBounds reports the last applied bounds.
func (e *HeadlessEngine) CurrentBounds() Bounds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds
}

// Visible reports the visibility flag.
func (e *HeadlessEngine) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}
