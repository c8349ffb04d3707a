package surface

import (
	"go.uber.org/zap"

	"github.com/glasshost/glasshost/internal/platform"
	"github.com/glasshost/glasshost/internal/webview"
)

const (
	// MaxInitAttempts caps native initialization attempts per surface.
	MaxInitAttempts = 10
	// RetryInterval is the minimum number of frames between failed attempts.
	RetryInterval = 30
	// InitialDelay is the number of frames to wait before the first attempt,
	// giving the host window time to materialize.
	InitialDelay = 10
)

// State is the lifecycle phase of a surface.
type State int

const (
	// Inactive: the surface is gated off; nothing happens until activation.
	Inactive State = iota
	// PendingInitialAttempt: active, waiting out the initial delay.
	PendingInitialAttempt
	// Retrying: at least one attempt failed; waiting for the retry window.
	Retrying
	// Initialized: the view is up; ticks only re-assert visibility.
	Initialized
	// Exhausted: every attempt failed; permanent for this surface.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case PendingInitialAttempt:
		return "pending"
	case Retrying:
		return "retrying"
	case Initialized:
		return "initialized"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// AcquireFunc resolves a fresh native handle for an initialization attempt.
type AcquireFunc func() (platform.Handle, error)

// Controller runs the lifecycle state machine for one surface.
type Controller struct {
	view    *webview.View
	acquire AcquireFunc
	log     *zap.Logger

	active           bool
	attempts         uint32
	frameCount       uint32
	lastAttemptFrame uint32

	cachedBounds *webview.Bounds
	syncedBounds *webview.Bounds

	pendingURL string
	notes      []Notification
}

// Option customizes a Controller.
type Option func(*Controller)

// WithAcquire replaces the native handle provider. Used by tests and by
// hosts embedding a non-default window system.
func WithAcquire(f AcquireFunc) Option {
	return func(c *Controller) { c.acquire = f }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// NewController wraps a view in a lifecycle controller. The surface starts
// inactive; the host must call SetActive(true) to arm it.
func NewController(view *webview.View, opts ...Option) *Controller {
	c := &Controller{
		view:    view,
		acquire: platform.Acquire,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View exposes the managed view for direct host access (script evaluation,
// bridge registration).
func (c *Controller) View() *webview.View { return c.view }

// Tick advances the state machine by one host frame.
func (c *Controller) Tick() {
	c.frameCount++

	// Deliver inbound bridge traffic regardless of lifecycle phase.
	for _, msg := range c.view.Bridge().Poll() {
		c.notes = append(c.notes, ipcNote(msg))
	}

	if !c.active {
		return
	}

	if c.view.IsInitialized() {
		// Re-assert visibility; redundant native calls are cheap here and
		// the engine treats them as idempotent.
		_ = c.view.SetVisible(true)
		c.syncBounds()
		return
	}

	if c.attempts >= MaxInitAttempts {
		return
	}

	due := false
	if c.attempts == 0 {
		due = c.frameCount >= InitialDelay
	} else {
		due = c.frameCount >= c.lastAttemptFrame+RetryInterval
	}
	if due {
		c.attempt()
	}
}

func (c *Controller) attempt() {
	c.attempts++
	c.lastAttemptFrame = c.frameCount
	c.log.Debug("initialization attempt",
		zap.Uint32("attempt", c.attempts),
		zap.Uint32("max", MaxInitAttempts))

	handle, err := c.acquire()
	if err == nil {
		err = c.view.Initialize(handle)
	}
	if err != nil {
		c.log.Warn("initialization failed", zap.Uint32("attempt", c.attempts), zap.Error(err))
		if c.attempts >= MaxInitAttempts {
			// Reported once; the machine never attempts again.
			c.notes = append(c.notes, failedNote(err))
			c.log.Error("surface exhausted initialization attempts", zap.Error(err))
		}
		return
	}

	c.notes = append(c.notes, Notification{Kind: NoteInitialized})

	// Bounds may have moved while the view was coming up.
	c.syncedBounds = nil
	c.syncBounds()

	if c.pendingURL != "" {
		url := c.pendingURL
		c.pendingURL = ""
		if err := c.view.LoadURL(url); err == nil {
			c.notes = append(c.notes, urlNote(url))
		} else {
			c.log.Warn("deferred navigation failed", zap.String("url", url), zap.Error(err))
		}
	}
}

// SetBounds caches the surface rect from host layout. The rect reaches the
// native view only while active and initialized, and only when it differs
// from the last synced rect.
func (c *Controller) SetBounds(b webview.Bounds) {
	c.cachedBounds = &b
	if c.active && c.view.IsInitialized() {
		c.syncBounds()
	}
}

func (c *Controller) syncBounds() {
	if c.cachedBounds == nil {
		return
	}
	b := *c.cachedBounds
	if c.syncedBounds != nil && *c.syncedBounds == b {
		return
	}
	if err := c.view.SetBounds(b); err != nil {
		c.log.Warn("bounds sync failed", zap.Error(err))
		return
	}
	c.syncedBounds = &b
}

// SetActive gates the machine. Deactivation hides an initialized view and
// freezes attempts and bounds syncing; reactivation re-arms without
// resetting the attempt counter, so an exhausted surface stays exhausted.
func (c *Controller) SetActive(active bool) {
	if c.active == active {
		return
	}
	c.active = active
	if !active && c.view.IsInitialized() {
		_ = c.view.SetVisible(false)
	}
}

// IsActive reports the gate.
func (c *Controller) IsActive() bool { return c.active }

// LoadURL navigates the surface. Before initialization the URL is parked
// and loaded on the first successful attempt.
func (c *Controller) LoadURL(url string) error {
	if !c.view.IsInitialized() {
		c.pendingURL = url
		return nil
	}
	if err := c.view.LoadURL(url); err != nil {
		return err
	}
	c.notes = append(c.notes, urlNote(url))
	return nil
}

// State derives the current lifecycle phase.
func (c *Controller) State() State {
	switch {
	case c.view.IsInitialized():
		return Initialized
	case c.attempts >= MaxInitAttempts:
		return Exhausted
	case !c.active:
		return Inactive
	case c.attempts == 0:
		return PendingInitialAttempt
	default:
		return Retrying
	}
}

// Attempts reports how many initialization attempts have been made.
func (c *Controller) Attempts() uint32 { return c.attempts }

// Poll drains queued notifications, oldest first.
func (c *Controller) Poll() []Notification {
	notes := c.notes
	c.notes = nil
	return notes
}

// Close releases the underlying view.
func (c *Controller) Close() error {
	return c.view.Close()
}
