package core

import "github.com/shivsh94/Video-backend/internal/domain"

// Frame is a raw outbound payload, already encoded for the wire.
type Frame []byte

// SignalConnection abstracts the messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PeerDirectory resolves a connection id to its live transport endpoint.
// This is transport-level state, separate from room presence: the
// negotiation relay addresses peers through it without consulting the
// presence registry.
type PeerDirectory interface {
	Get(id domain.ConnID) (SignalConnection, bool)
}
