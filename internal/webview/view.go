package webview

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/glasshost/glasshost/internal/bridge"
	"github.com/glasshost/glasshost/internal/jsonlite"
	"github.com/glasshost/glasshost/internal/platform"
)

// View owns one embedded browser view instance: the engine (absent until
// initialized), the construction config, the shared message bridge, and the
// visibility flag.
type View struct {
	mu      sync.Mutex
	cfg     Config
	engine  Engine
	bridge  *bridge.Handler
	factory EngineFactory
	visible bool
	log     *zap.Logger
}

// Option customizes a View at construction.
type Option func(*View)

// WithEngineFactory replaces the native engine factory. Used by tests and by
// hosts that run the headless engine.
func WithEngineFactory(f EngineFactory) Option {
	return func(v *View) { v.factory = f }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(v *View) { v.log = log }
}

// NewView creates an uninitialized view.
func NewView(cfg Config, opts ...Option) *View {
	if cfg.URL == "" {
		cfg.URL = AboutBlank
	}
	v := &View{
		cfg:     cfg,
		bridge:  bridge.NewHandler(),
		factory: NativeFactory(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Initialize constructs the platform view as a child surface of handle and
// injects the bootstrap script. Fails with ErrAlreadyInitialized on a second
// call; on engine construction failure the view stays uninitialized and may
// be retried with a fresh handle.
func (v *View) Initialize(handle platform.Handle) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.engine != nil {
		return ErrAlreadyInitialized
	}

	engine, err := v.factory(handle, v.cfg, v.bridge.HandleRaw)
	if err != nil {
		return fmt.Errorf("webview: engine construction: %w", err)
	}

	if err := engine.Eval(bootstrapScript); err != nil {
		// The view is usable without the bridge; content just cannot talk
		// back. Matches the reference behavior of warning and carrying on.
		v.log.Warn("bootstrap injection failed", zap.Error(err))
	}

	v.engine = engine
	v.visible = true
	v.log.Info("webview initialized", zap.String("url", v.cfg.URL))
	return nil
}

// IsInitialized reports whether a platform view exists.
func (v *View) IsInitialized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine != nil
}

// currentEngine snapshots the engine so forwarding calls run outside the
// view lock; a bridge callback fired during Eval may legally re-enter the
// view.
func (v *View) currentEngine() (Engine, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.engine == nil {
		return nil, ErrNotInitialized
	}
	return v.engine, nil
}

// SetBounds repositions and resizes the view. Callers get ErrNotInitialized
// before initialization so they can skip redundant work.
func (v *View) SetBounds(b Bounds) error {
	engine, err := v.currentEngine()
	if err != nil {
		return err
	}
	if err := engine.SetBounds(b); err != nil {
		return err
	}
	v.mu.Lock()
	v.cfg.Bounds = b
	v.mu.Unlock()
	return nil
}

// Bounds returns the last bounds applied to the view.
func (v *View) Bounds() Bounds {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cfg.Bounds
}

// LoadURL navigates the view.
func (v *View) LoadURL(url string) error {
	engine, err := v.currentEngine()
	if err != nil {
		return err
	}
	return engine.Navigate(url)
}

// Eval executes a script inside the hosted content, fire-and-forget.
func (v *View) Eval(script string) error {
	engine, err := v.currentEngine()
	if err != nil {
		return err
	}
	return engine.Eval(script)
}

// SendToJS delivers a message to hosted content on the given channel. Data
// must be pre-serialized JSON; it is spliced into the dispatch call verbatim.
func (v *View) SendToJS(channel, data string) error {
	script := fmt.Sprintf(
		"if (window.__glass_ipc && window.__glass_ipc.receive) { window.__glass_ipc.receive(%s, %s); }",
		jsonlite.StringValue(channel).Serialize(), data,
	)
	return v.Eval(script)
}

// GoBack walks the content's history back one entry.
func (v *View) GoBack() error { return v.Eval("history.back()") }

// GoForward walks the content's history forward one entry.
func (v *View) GoForward() error { return v.Eval("history.forward()") }

// Reload reloads the current page.
func (v *View) Reload() error { return v.Eval("location.reload()") }

// SetVisible shows or hides the view.
func (v *View) SetVisible(visible bool) error {
	engine, err := v.currentEngine()
	if err != nil {
		return err
	}
	if err := engine.SetVisible(visible); err != nil {
		return err
	}
	v.mu.Lock()
	v.visible = visible
	v.mu.Unlock()
	return nil
}

// IsVisible reports the visibility flag.
func (v *View) IsVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Bridge exposes the shared message bridge for callback registration and
// polling.
func (v *View) Bridge() *bridge.Handler { return v.bridge }

// Close tears down the platform view. Safe to call when never initialized
// and safe to call twice.
func (v *View) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.engine == nil {
		return nil
	}
	err := v.engine.Close()
	v.engine = nil
	v.visible = false
	return err
}
