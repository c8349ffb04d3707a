package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRawWellFormed(t *testing.T) {
	h := NewHandler()
	h.HandleRaw(`{"channel":"demo","data":"hello"}`)

	msgs := h.Poll()
	require.Len(t, msgs, 1)
	assert.Equal(t, "demo", msgs[0].Channel)
	// String data stays quoted: the payload is the re-serialized value.
	assert.Equal(t, `"hello"`, msgs[0].Payload)
}

func TestHandleRawObjectData(t *testing.T) {
	h := NewHandler()
	h.HandleRaw(`{"channel":"notes","data":{"title":"x","count":2}}`)

	msgs := h.Poll()
	require.Len(t, msgs, 1)
	assert.Equal(t, "notes", msgs[0].Channel)
	assert.Equal(t, `{"count":2,"title":"x"}`, msgs[0].Payload)
}

func TestHandleRawFallback(t *testing.T) {
	cases := []string{
		"not json",
		`{"data":"missing channel"}`,
		`{"channel":42,"data":"non-string channel"}`,
		`{"channel":"demo"}`,
		`["channel","data"]`,
	}
	for _, raw := range cases {
		h := NewHandler()
		h.HandleRaw(raw)
		msgs := h.Poll()
		require.Len(t, msgs, 1, "input %q", raw)
		assert.Equal(t, DefaultChannel, msgs[0].Channel, "input %q", raw)
		assert.Equal(t, raw, msgs[0].Payload, "input %q", raw)
	}
}

func TestCallbackOrderAndQueue(t *testing.T) {
	h := NewHandler()
	var order []string
	h.On("demo", func(m Message) { order = append(order, "first:"+m.Payload) })
	h.On("demo", func(m Message) { order = append(order, "second:"+m.Payload) })
	h.On("other", func(m Message) { order = append(order, "other") })

	h.HandleRaw(`{"channel":"demo","data":1}`)

	assert.Equal(t, []string{"first:1", "second:1"}, order)

	// Dispatched messages still land in the queue.
	require.True(t, h.HasPending())
	msgs := h.Poll()
	require.Len(t, msgs, 1)
	assert.Equal(t, Message{Channel: "demo", Payload: "1"}, msgs[0])
}

func TestPollDrains(t *testing.T) {
	h := NewHandler()
	h.HandleRaw(`{"channel":"a","data":null}`)
	h.HandleRaw(`{"channel":"b","data":true}`)

	msgs := h.Poll()
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].Channel)
	assert.Equal(t, "b", msgs[1].Channel)

	assert.Empty(t, h.Poll())
	assert.False(t, h.HasPending())
}

func TestCallbackMayRegister(t *testing.T) {
	h := NewHandler()
	h.On("boot", func(Message) {
		h.On("late", func(Message) {})
	})
	// Must not deadlock.
	h.HandleRaw(`{"channel":"boot","data":null}`)
}
