package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/glasshost/glasshost/internal/config"
	"github.com/glasshost/glasshost/internal/plugins"
	"github.com/glasshost/glasshost/internal/surface"
	"github.com/glasshost/glasshost/internal/webview"
)

// ErrNoSurface: no surface registered under that name.
var ErrNoSurface = errors.New("shell: no such surface")

// ReadyFunc probes a provider URL until it answers or the context expires.
type ReadyFunc func(ctx context.Context, url string, timeout time.Duration) error

// Shell is the host context: named surfaces plus the plugin supervisor.
type Shell struct {
	cfg      *config.Config
	sup      *plugins.Supervisor
	surfaces map[string]*surface.Controller
	ready    ReadyFunc
	log      *zap.Logger

	viewOpts    []webview.Option
	surfaceOpts []surface.Option
}

// Option customizes a Shell.
type Option func(*Shell)

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Shell) { s.log = log }
}

// WithReadyFunc replaces the provider readiness probe. Used by tests.
func WithReadyFunc(f ReadyFunc) Option {
	return func(s *Shell) { s.ready = f }
}

// WithViewOptions sets options applied to every view the shell creates.
func WithViewOptions(opts ...webview.Option) Option {
	return func(s *Shell) { s.viewOpts = opts }
}

// WithSurfaceOptions sets options applied to every controller the shell
// creates.
func WithSurfaceOptions(opts ...surface.Option) Option {
	return func(s *Shell) { s.surfaceOpts = opts }
}

// New builds the host context from configuration. The plugin supervisor is
// rooted at cfg.PluginsDir() and an initial discovery pass runs immediately.
func New(cfg *config.Config, opts ...Option) *Shell {
	s := &Shell{
		cfg:      cfg,
		surfaces: make(map[string]*surface.Controller),
		ready:    plugins.WaitReady,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sup = plugins.NewSupervisor(cfg.PluginsDir(),
		plugins.WithInterpreter(plugins.ResolveInterpreter(cfg.Plugins.Interpreter)),
		plugins.WithLogger(s.log))
	s.sup.Discover()
	return s
}

// Supervisor exposes the plugin supervisor.
func (s *Shell) Supervisor() *plugins.Supervisor { return s.sup }

// AddSurface registers a named surface and returns its controller. The view
// inherits the shell's webview configuration. Registering an existing name
// returns the existing controller.
func (s *Shell) AddSurface(name string) *surface.Controller {
	if c, ok := s.surfaces[name]; ok {
		return c
	}
	viewOpts := append([]webview.Option{
		webview.WithLogger(s.log.Named(name)),
	}, s.viewOpts...)
	view := webview.NewView(webview.Config{
		DevTools:    s.cfg.WebView.DevTools,
		Transparent: s.cfg.WebView.Transparent,
		UserAgent:   s.cfg.WebView.UserAgent,
	}, viewOpts...)

	ctrlOpts := append([]surface.Option{
		surface.WithLogger(s.log.Named(name)),
	}, s.surfaceOpts...)
	c := surface.NewController(view, ctrlOpts...)
	s.surfaces[name] = c
	return c
}

// Surface returns a registered controller by name.
func (s *Shell) Surface(name string) (*surface.Controller, bool) {
	c, ok := s.surfaces[name]
	return c, ok
}

// SurfaceNames lists registered surfaces, sorted.
func (s *Shell) SurfaceNames() []string {
	names := make([]string, 0, len(s.surfaces))
	for name := range s.surfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tick advances every surface by one host frame.
func (s *Shell) Tick() {
	for _, name := range s.SurfaceNames() {
		s.surfaces[name].Tick()
	}
}

// OpenPlugin starts the provider for id, waits for it to answer HTTP, and
// points the named surface at it. Before the surface initializes the URL is
// parked on the controller and loaded on first success.
func (s *Shell) OpenPlugin(ctx context.Context, surfaceName, id string) error {
	c, ok := s.surfaces[surfaceName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSurface, surfaceName)
	}

	if _, err := s.sup.Start(id); err != nil {
		return err
	}
	url, ok := s.sup.URLFor(id)
	if !ok {
		return fmt.Errorf("%w: %s", plugins.ErrNotFound, id)
	}

	if err := s.ready(ctx, url, s.cfg.Plugins.ReadyTimeout); err != nil {
		// The process may still come up; leave it running but report.
		return err
	}

	s.log.Info("opening plugin",
		zap.String("surface", surfaceName),
		zap.String("plugin", id),
		zap.String("url", url))
	return c.LoadURL(url)
}

// Close tears down every surface and stops every provider.
func (s *Shell) Close() error {
	var firstErr error
	for _, name := range s.SurfaceNames() {
		if err := s.surfaces[name].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.sup.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
