package surface

import "github.com/glasshost/glasshost/internal/bridge"

// NoteKind discriminates Notification variants.
type NoteKind int

const (
	// NoteInitialized: the view came up.
	NoteInitialized NoteKind = iota
	// NoteInitFailed: initialization attempts are exhausted. Emitted once.
	NoteInitFailed
	// NoteURLChanged: the surface navigated.
	NoteURLChanged
	// NoteIPCMessage: hosted content sent a bridge message.
	NoteIPCMessage
)

// Notification is one host-facing lifecycle event. Only the fields matching
// Kind are set.
type Notification struct {
	Kind NoteKind
	// URL for NoteURLChanged.
	URL string
	// Reason for NoteInitFailed.
	Reason string
	// Message for NoteIPCMessage.
	Message bridge.Message
}

func urlNote(url string) Notification {
	return Notification{Kind: NoteURLChanged, URL: url}
}

func failedNote(err error) Notification {
	return Notification{Kind: NoteInitFailed, Reason: err.Error()}
}

func ipcNote(msg bridge.Message) Notification {
	return Notification{Kind: NoteIPCMessage, Message: msg}
}
