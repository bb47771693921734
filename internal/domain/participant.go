// Package domain contains entities without logic, just meta-data.
package domain

// ConnID is the transport-assigned handle of one open connection.
// Unique for the lifetime of that connection; the only address usable
// for direct (non-broadcast) delivery.
type ConnID string

// Participant is the membership record stored per (room, connection) pair.
// Email is a caller-supplied label; it is not verified and not inspected
// beyond the "latest connection wins" bookkeeping in the registry.
type Participant struct {
	ID    ConnID `json:"id"`
	Email string `json:"email"`
}

// NewParticipant avoids raw struct literals in adapters and keeps
// construction obvious.
func NewParticipant(id ConnID, email string) Participant {
	return Participant{ID: id, Email: email}
}
