package webview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasshost/glasshost/internal/platform"
)

// fakeEngine records forwarded calls.
type fakeEngine struct {
	evals     []string
	navs      []string
	bounds    []Bounds
	visible   []bool
	closed    int
	onMessage func(string)
}

func (f *fakeEngine) Navigate(url string) error { f.navs = append(f.navs, url); return nil }
func (f *fakeEngine) Eval(script string) error  { f.evals = append(f.evals, script); return nil }
func (f *fakeEngine) SetBounds(b Bounds) error  { f.bounds = append(f.bounds, b); return nil }
func (f *fakeEngine) SetVisible(v bool) error   { f.visible = append(f.visible, v); return nil }
func (f *fakeEngine) Close() error              { f.closed++; return nil }

func fakeFactory(f *fakeEngine) EngineFactory {
	return func(_ platform.Handle, _ Config, onMessage func(string)) (Engine, error) {
		f.onMessage = onMessage
		return f, nil
	}
}

func TestOperationsBeforeInitialize(t *testing.T) {
	v := NewView(Config{})

	assert.ErrorIs(t, v.LoadURL("http://127.0.0.1:1234"), ErrNotInitialized)
	assert.ErrorIs(t, v.Eval("1+1"), ErrNotInitialized)
	assert.ErrorIs(t, v.SendToJS("ch", `"x"`), ErrNotInitialized)
	assert.ErrorIs(t, v.SetBounds(Bounds{Width: 10, Height: 10}), ErrNotInitialized)
	assert.ErrorIs(t, v.SetVisible(true), ErrNotInitialized)
	assert.False(t, v.IsInitialized())

	// Closing a never-initialized view is safe.
	require.NoError(t, v.Close())
}

func TestInitializeIsIdempotentFailure(t *testing.T) {
	f := &fakeEngine{}
	v := NewView(Config{URL: "http://127.0.0.1:9999"}, WithEngineFactory(fakeFactory(f)))

	require.NoError(t, v.Initialize(platform.Handle{}))
	assert.True(t, v.IsInitialized())
	assert.ErrorIs(t, v.Initialize(platform.Handle{}), ErrAlreadyInitialized)
}

func TestInitializeInjectsBootstrap(t *testing.T) {
	f := &fakeEngine{}
	v := NewView(Config{}, WithEngineFactory(fakeFactory(f)))

	require.NoError(t, v.Initialize(platform.Handle{}))
	require.Len(t, f.evals, 1)
	assert.Contains(t, f.evals[0], "window.__glass_ipc")
	assert.Contains(t, f.evals[0], "send: function(channel, data)")
	assert.True(t, v.IsVisible())
}

func TestInitializeFailureLeavesUninitialized(t *testing.T) {
	boom := errors.New("no native view")
	v := NewView(Config{}, WithEngineFactory(
		func(platform.Handle, Config, func(string)) (Engine, error) {
			return nil, boom
		},
	))

	err := v.Initialize(platform.Handle{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, v.IsInitialized())

	// A later attempt may succeed.
	f := &fakeEngine{}
	v2 := NewView(Config{}, WithEngineFactory(fakeFactory(f)))
	require.NoError(t, v2.Initialize(platform.Handle{}))
}

func TestForwarding(t *testing.T) {
	f := &fakeEngine{}
	v := NewView(Config{}, WithEngineFactory(fakeFactory(f)))
	require.NoError(t, v.Initialize(platform.Handle{}))

	require.NoError(t, v.LoadURL("http://127.0.0.1:4321"))
	assert.Equal(t, []string{"http://127.0.0.1:4321"}, f.navs)

	b := Bounds{X: 5, Y: 10, Width: 640, Height: 480}
	require.NoError(t, v.SetBounds(b))
	assert.Equal(t, []Bounds{b}, f.bounds)
	assert.Equal(t, b, v.Bounds())

	require.NoError(t, v.SetVisible(false))
	assert.False(t, v.IsVisible())
	require.NoError(t, v.SetVisible(true))
	assert.True(t, v.IsVisible())
}

func TestSendToJS(t *testing.T) {
	f := &fakeEngine{}
	v := NewView(Config{}, WithEngineFactory(fakeFactory(f)))
	require.NoError(t, v.Initialize(platform.Handle{}))

	require.NoError(t, v.SendToJS("the\"me", `{"dark":true}`))
	last := f.evals[len(f.evals)-1]
	// Channel is quoted as a JS string, data spliced verbatim.
	assert.Contains(t, last, `__glass_ipc.receive("the\"me", {"dark":true})`)
}

func TestIncomingMessagesReachBridge(t *testing.T) {
	f := &fakeEngine{}
	v := NewView(Config{}, WithEngineFactory(fakeFactory(f)))
	require.NoError(t, v.Initialize(platform.Handle{}))

	f.onMessage(`{"channel":"demo","data":"hello"}`)

	msgs := v.Bridge().Poll()
	require.Len(t, msgs, 1)
	assert.Equal(t, "demo", msgs[0].Channel)
	assert.Equal(t, `"hello"`, msgs[0].Payload)
}

func TestCloseTearsDownOnce(t *testing.T) {
	f := &fakeEngine{}
	v := NewView(Config{}, WithEngineFactory(fakeFactory(f)))
	require.NoError(t, v.Initialize(platform.Handle{}))

	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
	assert.Equal(t, 1, f.closed)
	assert.False(t, v.IsInitialized())
	assert.ErrorIs(t, v.Eval("1"), ErrNotInitialized)
}
