package bridge

import (
	"sync"

	"github.com/glasshost/glasshost/internal/jsonlite"
)

// DefaultChannel receives messages that fail to parse as {channel, data}.
const DefaultChannel = "default"

// Message is one unit of traffic from hosted content to the host.
type Message struct {
	// Channel is the topic the content addressed.
	Channel string
	// Payload is the pre-serialized textual body. The bridge never looks
	// inside it.
	Payload string
}

// Callback handles messages arriving on a subscribed channel.
type Callback func(Message)

// Handler routes inbound messages to per-channel callbacks and queues them
// for polling. A Handler is shared between the embedded view (producer) and
// host code (consumer); all mutation is mutex-guarded because native view
// callbacks are not guaranteed to arrive on the polling goroutine.
type Handler struct {
	mu        sync.Mutex
	callbacks map[string][]Callback
	pending   []Message
}

// NewHandler creates an empty handler.
func NewHandler() *Handler {
	return &Handler{callbacks: make(map[string][]Callback)}
}

// On registers a callback for a channel. Callbacks run synchronously during
// dispatch, in registration order.
func (h *Handler) On(channel string, cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks[channel] = append(h.callbacks[channel], cb)
}

// HandleRaw decodes raw text from the view and dispatches the result.
//
// A well-formed payload is an object with a string "channel" and any "data"
// value; the data is re-serialized verbatim. Anything else falls back to the
// default channel with the raw text as payload.
func (h *Handler) HandleRaw(raw string) {
	h.Handle(decode(raw))
}

// Handle dispatches a message to registered callbacks and appends it to the
// pending queue.
func (h *Handler) Handle(msg Message) {
	h.mu.Lock()
	cbs := h.callbacks[msg.Channel]
	h.pending = append(h.pending, msg)
	h.mu.Unlock()

	// Invoke outside the lock so a callback may register further channels.
	for _, cb := range cbs {
		cb(msg)
	}
}

// Poll drains and returns the pending queue. Repeated polls without new
// traffic return nil.
func (h *Handler) Poll() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.pending
	h.pending = nil
	return msgs
}

// HasPending reports whether Poll would return messages.
func (h *Handler) HasPending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending) > 0
}

func decode(raw string) Message {
	v, err := jsonlite.Parse(raw)
	if err == nil {
		if ch, ok := v.Get("channel"); ok {
			if name, ok := ch.AsString(); ok {
				if data, ok := v.Get("data"); ok {
					return Message{Channel: name, Payload: data.Serialize()}
				}
			}
		}
	}
	return Message{Channel: DefaultChannel, Payload: raw}
}
