package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addPlugin lays out <root>/<dirName>/manifest.json plus a sleeping shell
// script as the entry so Start has a real process to supervise.
func addPlugin(t *testing.T, root, dirName, id string) {
	t.Helper()
	dir := filepath.Join(root, dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeManifest(t, dir, fmt.Sprintf(
		`{"id":%q,"name":"Plugin %s","version":"1.0.0","python_entry":"run.sh"}`, id, id))
	script := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0o755))
}

func newTestSupervisor(t *testing.T, root string) *Supervisor {
	t.Helper()
	s := NewSupervisor(root, WithInterpreter("/bin/sh"))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDiscoverRegistersPlugins(t *testing.T) {
	root := t.TempDir()
	addPlugin(t, root, "alpha", "alpha")
	addPlugin(t, root, "beta", "beta")
	// Directories without a manifest are ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "stray"), 0o755))
	// Plain files at the root are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.txt"), []byte("x"), 0o644))

	s := newTestSupervisor(t, root)
	ids := s.Discover()
	assert.Equal(t, []string{"alpha", "beta"}, ids)
	assert.Equal(t, 2, s.Count())

	p, ok := s.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "alpha"), p.Dir)
}

func TestDiscoverSkipsMalformedManifest(t *testing.T) {
	root := t.TempDir()
	addPlugin(t, root, "good", "good")
	bad := filepath.Join(root, "bad")
	require.NoError(t, os.MkdirAll(bad, 0o755))
	writeManifest(t, bad, `{"name":"no id"}`)

	s := newTestSupervisor(t, root)
	assert.Equal(t, []string{"good"}, s.Discover())
	_, ok := s.Get("bad")
	assert.False(t, ok)
}

func TestDiscoverDuplicateIDFirstWins(t *testing.T) {
	root := t.TempDir()
	addPlugin(t, root, "a-dir", "twin")
	addPlugin(t, root, "b-dir", "twin")

	s := newTestSupervisor(t, root)
	assert.Equal(t, []string{"twin"}, s.Discover())

	p, ok := s.Get("twin")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a-dir"), p.Dir)
}

func TestDiscoverKeepsExistingAcrossScans(t *testing.T) {
	root := t.TempDir()
	addPlugin(t, root, "alpha", "alpha")

	s := newTestSupervisor(t, root)
	s.Discover()
	first, _ := s.Get("alpha")

	s.Discover()
	second, _ := s.Get("alpha")
	assert.Same(t, first, second)
}

func TestDiscoverMissingRootReturnsNil(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")
	s := newTestSupervisor(t, root)
	// NewSupervisor created the root; an empty scan is fine.
	assert.Nil(t, s.Discover())

	require.NoError(t, os.RemoveAll(root))
	assert.Nil(t, s.Discover())
}

func TestStartStopLifecycle(t *testing.T) {
	root := t.TempDir()
	addPlugin(t, root, "alpha", "alpha")
	s := newTestSupervisor(t, root)
	s.Discover()

	port, err := s.Start("alpha")
	require.NoError(t, err)
	assert.Greater(t, port, 0)

	p, _ := s.Get("alpha")
	assert.True(t, p.Running())

	url, ok := s.URLFor("alpha")
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d", port), url)

	// Starting again reuses the running process and its port.
	again, err := s.Start("alpha")
	require.NoError(t, err)
	assert.Equal(t, port, again)

	s.Stop("alpha")
	assert.False(t, p.Running())
	_, ok = s.URLFor("alpha")
	assert.False(t, ok)

	// Stop when not running is a no-op.
	s.Stop("alpha")
}

func TestStartUnknownPlugin(t *testing.T) {
	s := newTestSupervisor(t, t.TempDir())
	_, err := s.Start("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	s.Stop("ghost")
}

func TestStartMissingEntryScript(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "hollow")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeManifest(t, dir,
		`{"id":"hollow","name":"Hollow","version":"1.0","python_entry":"gone.sh"}`)

	s := newTestSupervisor(t, root)
	s.Discover()
	_, err := s.Start("hollow")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	p, _ := s.Get("hollow")
	assert.False(t, p.Running())
}

func TestStartNativePlugin(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "nat")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeManifest(t, dir, `{"id":"nat","name":"Nat","version":"1.0","type":"native"}`)

	s := newTestSupervisor(t, root)
	s.Discover()
	_, err := s.Start("nat")
	assert.ErrorIs(t, err, ErrNotServable)
}

func TestCloseStopsAllProviders(t *testing.T) {
	root := t.TempDir()
	addPlugin(t, root, "one", "one")
	addPlugin(t, root, "two", "two")
	s := NewSupervisor(root, WithInterpreter("/bin/sh"))
	s.Discover()

	_, err := s.Start("one")
	require.NoError(t, err)
	_, err = s.Start("two")
	require.NoError(t, err)

	require.NoError(t, s.Close())
	for _, id := range []string{"one", "two"} {
		p, _ := s.Get(id)
		assert.False(t, p.Running(), id)
	}
}

func TestSidebarFiltersDisabledAndHidden(t *testing.T) {
	root := t.TempDir()
	addPlugin(t, root, "shown", "shown")
	addPlugin(t, root, "toggled", "toggled")
	hidden := filepath.Join(root, "hidden")
	require.NoError(t, os.MkdirAll(hidden, 0o755))
	writeManifest(t, hidden,
		`{"id":"hidden","name":"Hidden","version":"1.0","show_in_sidebar":false}`)

	s := newTestSupervisor(t, root)
	s.Discover()
	p, _ := s.Get("toggled")
	p.SetEnabled(false)

	bar := s.Sidebar()
	require.Len(t, bar, 1)
	assert.Equal(t, "shown", bar[0].Manifest.ID)
}

func TestResolveInterpreterOverride(t *testing.T) {
	assert.Equal(t, "/usr/bin/env", ResolveInterpreter("/usr/bin/env"))
	assert.NotEmpty(t, ResolveInterpreter(""))
}
