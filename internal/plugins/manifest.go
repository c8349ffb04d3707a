package plugins

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// ManifestFile is the per-plugin descriptor file name.
const ManifestFile = "manifest.json"

// Kind distinguishes how a plugin renders.
type Kind string

const (
	// KindWebView plugins run an external HTTP server shown in an embedded
	// browser surface.
	KindWebView Kind = "webview"
	// KindNative plugins ship compiled host UI and have no server process.
	KindNative Kind = "native"
)

// Manifest describes one plugin. Immutable once loaded; plugins are
// identified uniquely by ID.
type Manifest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Kind        Kind   `json:"type,omitempty"`

	// Icon is a file path relative to the plugin directory.
	Icon string `json:"icon,omitempty"`
	// Entry is the serving entry script, relative to the plugin directory.
	Entry string `json:"python_entry,omitempty"`
	// StaticDir holds static assets, relative to the plugin directory.
	StaticDir string `json:"static_dir,omitempty"`

	ShowInSidebar bool `json:"show_in_sidebar"`

	// MinHostVersion is the minimum host version the plugin requires.
	MinHostVersion string `json:"min_version,omitempty"`
	Homepage       string `json:"homepage,omitempty"`
	Repository     string `json:"repository,omitempty"`
}

// DefaultEntry is used when the manifest names no entry script.
const DefaultEntry = "python/app.py"

// DefaultStaticDir is used when the manifest names no static directory.
const DefaultStaticDir = "static"

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	// Absent fields keep their defaults.
	m := Manifest{Kind: KindWebView, ShowInSidebar: true}
	if err := sonic.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func (m Manifest) validate() error {
	switch {
	case m.ID == "":
		return fmt.Errorf("manifest: missing required field %q", "id")
	case m.Name == "":
		return fmt.Errorf("manifest: missing required field %q", "name")
	case m.Version == "":
		return fmt.Errorf("manifest: missing required field %q", "version")
	}
	if m.Kind != KindWebView && m.Kind != KindNative {
		return fmt.Errorf("manifest: unknown plugin type %q", m.Kind)
	}
	return nil
}

// EntryScript returns the entry script path relative to the plugin
// directory, defaulted.
func (m Manifest) EntryScript() string {
	if m.Entry != "" {
		return m.Entry
	}
	return DefaultEntry
}

// StaticPath returns the static assets directory relative to the plugin
// directory, defaulted.
func (m Manifest) StaticPath() string {
	if m.StaticDir != "" {
		return m.StaticDir
	}
	return DefaultStaticDir
}
