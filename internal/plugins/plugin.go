package plugins

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound: no plugin with that id.
	ErrNotFound = errors.New("plugins: plugin not found")
	// ErrEntryNotFound: the manifest's entry script does not exist.
	ErrEntryNotFound = errors.New("plugins: entry script not found")
	// ErrNotServable: the plugin kind has no server process.
	ErrNotServable = errors.New("plugins: not a webview plugin")
)

// Plugin is a discovered plugin plus its runtime state. The process handle
// and bound port exist only while the provider runs.
type Plugin struct {
	Manifest Manifest
	// Dir is the plugin directory; also the provider's working directory.
	Dir string

	mu      sync.Mutex
	cmd     *exec.Cmd
	port    int
	enabled bool
	log     *zap.Logger
}

func newPlugin(m Manifest, dir string, log *zap.Logger) *Plugin {
	return &Plugin{
		Manifest: m,
		Dir:      dir,
		enabled:  true,
		log:      log.With(zap.String("plugin", m.ID)),
	}
}

// Enabled reports whether the plugin participates in the host UI.
func (p *Plugin) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// SetEnabled toggles host UI participation. It does not stop a running
// provider.
func (p *Plugin) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Running reports whether a provider process is alive for this plugin.
func (p *Plugin) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// Port returns the bound port while running.
func (p *Plugin) Port() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil {
		return 0, false
	}
	return p.port, true
}

// URL returns http://127.0.0.1:<port> while running.
func (p *Plugin) URL() (string, bool) {
	port, ok := p.Port()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("http://127.0.0.1:%d", port), true
}

// Start spawns the provider process and returns its port. Idempotent: a
// running plugin returns its existing port without spawning a second
// process. On any failure the plugin stays not-running.
func (p *Plugin) Start(interpreter string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Manifest.Kind != KindWebView {
		return 0, ErrNotServable
	}
	if p.cmd != nil {
		return p.port, nil
	}

	port, err := allocatePort()
	if err != nil {
		return 0, fmt.Errorf("plugins: allocate port: %w", err)
	}

	entry := filepath.Join(p.Dir, p.Manifest.EntryScript())
	if _, err := os.Stat(entry); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEntryNotFound, entry)
	}

	cmd := exec.Command(interpreter, entry, strconv.Itoa(port))
	cmd.Dir = p.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runID := uuid.New().String()
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("plugins: spawn %q: %w", interpreter, err)
	}

	p.cmd = cmd
	p.port = port
	p.log.Info("provider started",
		zap.String("run_id", runID),
		zap.Int("pid", cmd.Process.Pid),
		zap.Int("port", port),
		zap.String("entry", entry))
	return port, nil
}

// Stop terminates and reaps the provider. No-op when not running. A hung
// child hangs the wait; there is deliberately no timeout beyond the OS's.
func (p *Plugin) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Plugin) stopLocked() {
	if p.cmd == nil {
		return
	}
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	_ = p.cmd.Wait()
	p.log.Info("provider stopped", zap.Int("port", p.port))
	p.cmd = nil
	p.port = 0
}

// allocatePort binds an ephemeral port, reads it back, and releases the
// listener so the provider can bind it. Another process can claim the port
// between release and reuse; the provider's bind failure surfaces that.
func allocatePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		return 0, err
	}
	return port, nil
}
