package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Supervisor owns the id→plugin map, the discovery root, and the resolved
// interpreter command used to launch providers.
type Supervisor struct {
	mu          sync.RWMutex
	root        string
	interpreter string
	plugins     map[string]*Plugin
	log         *zap.Logger
}

// SupervisorOption customizes a Supervisor.
type SupervisorOption func(*Supervisor)

// WithInterpreter overrides the resolved interpreter command.
func WithInterpreter(cmd string) SupervisorOption {
	return func(s *Supervisor) { s.interpreter = cmd }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) SupervisorOption {
	return func(s *Supervisor) { s.log = log }
}

// NewSupervisor creates a supervisor rooted at dir. The directory is created
// when missing so first runs discover an empty set instead of failing.
func NewSupervisor(root string, opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		root:    root,
		plugins: make(map[string]*Plugin),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.interpreter == "" {
		s.interpreter = ResolveInterpreter("")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		s.log.Warn("plugins root not creatable", zap.String("root", root), zap.Error(err))
	}
	return s
}

// Root returns the discovery directory.
func (s *Supervisor) Root() string { return s.root }

// Discover scans the immediate subdirectories of the root and returns the
// ids registered by this pass, in directory order. A directory qualifies
// only if it holds a manifest file; malformed manifests are logged and
// skipped. Within one pass the first directory claiming an id wins; across
// passes an already-registered id keeps its existing plugin (and any
// running process) rather than being replaced.
func (s *Supervisor) Discover() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.log.Warn("plugin scan failed", zap.String("root", s.root), zap.Error(err))
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	s.mu.Lock()
	defer s.mu.Unlock()

	var loaded []string
	seen := make(map[string]string) // id → directory, this pass
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		manifestPath := filepath.Join(dir, ManifestFile)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}

		m, err := LoadManifest(manifestPath)
		if err != nil {
			s.log.Warn("skipping plugin with bad manifest",
				zap.String("dir", dir), zap.Error(err))
			continue
		}

		if prev, dup := seen[m.ID]; dup {
			s.log.Warn("duplicate plugin id",
				zap.String("id", m.ID),
				zap.String("kept", prev),
				zap.String("ignored", dir))
			continue
		}
		seen[m.ID] = dir

		if _, exists := s.plugins[m.ID]; !exists {
			s.plugins[m.ID] = newPlugin(m, dir, s.log)
			s.log.Info("plugin discovered",
				zap.String("id", m.ID),
				zap.String("name", m.Name),
				zap.String("version", m.Version))
		}
		loaded = append(loaded, m.ID)
	}
	return loaded
}

// Get returns a plugin by id.
func (s *Supervisor) Get(id string) (*Plugin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plugins[id]
	return p, ok
}

// List returns all plugins sorted by id.
func (s *Supervisor) List() []*Plugin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Plugin, 0, len(s.plugins))
	for _, p := range s.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Manifest.ID < out[j].Manifest.ID })
	return out
}

// Sidebar returns enabled plugins that asked to be shown in the sidebar,
// sorted by id.
func (s *Supervisor) Sidebar() []*Plugin {
	var out []*Plugin
	for _, p := range s.List() {
		if p.Enabled() && p.Manifest.ShowInSidebar {
			out = append(out, p)
		}
	}
	return out
}

// Count reports how many plugins are registered.
func (s *Supervisor) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plugins)
}

// Start launches the provider process for id and returns its port.
// Idempotent while the provider runs.
func (s *Supervisor) Start(id string) (int, error) {
	p, ok := s.Get(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.Start(s.interpreter)
}

// Stop terminates the provider for id. No-op for unknown or not-running
// plugins.
func (s *Supervisor) Stop(id string) {
	if p, ok := s.Get(id); ok {
		p.Stop()
	}
}

// StopAll stops every running provider.
func (s *Supervisor) StopAll() {
	for _, p := range s.List() {
		p.Stop()
	}
}

// URLFor returns the provider URL while the plugin runs.
func (s *Supervisor) URLFor(id string) (string, bool) {
	p, ok := s.Get(id)
	if !ok {
		return "", false
	}
	return p.URL()
}

// Close stops every provider. Closing the supervisor on every exit path is
// the sole mechanism preventing orphaned child processes.
func (s *Supervisor) Close() error {
	s.StopAll()
	return nil
}
