// Package bridge carries channel-addressed messages between hosted web
// content and host logic.
//
// The bridge only handles the inbound direction: raw text arriving from the
// embedded view is decoded into a Message, dispatched synchronously to the
// callbacks registered for its channel, and appended to a pending queue that
// the host drains once per frame with Poll. Outbound delivery is script
// evaluation and belongs to the view manager.
//
// Payloads are opaque: the "data" field of a well-formed message is
// re-serialized exactly as received (a JSON string stays quoted) and never
// interpreted. Text that does not parse, or parses to the wrong shape, is
// delivered on the "default" channel rather than dropped.
package bridge
