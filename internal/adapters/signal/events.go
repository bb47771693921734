package signal

import (
	"encoding/json"

	"github.com/shivsh94/Video-backend/internal/domain"
)

// Event names on the wire. Inbound frames carry "type" plus the event's
// own fields flattened alongside it; outbound frames use the same shape.
const (
	evRoomJoin     = "room:join"
	evUserCall     = "user:call"
	evCallAccepted = "call:accepted"
	evNegoNeeded   = "peer:nego:needed"
	evNegoDone     = "peer:nego:done"

	evRoomUsers    = "room:users"
	evIncomingCall = "incoming:call"
	evNegoFinal    = "peer:nego:final"
	evUserJoined   = "user:joined"
	evUserLeft     = "user:left"
	evError        = "error"
)

type joinPayload struct {
	Type   string `json:"type"`
	Email  string `json:"email" validate:"required"`
	RoomID string `json:"roomId" validate:"required"`
}

// Offers and answers are opaque blobs of the external negotiation
// protocol; they stay json.RawMessage end to end and are never parsed.
type offerPayload struct {
	Type  string          `json:"type"`
	To    domain.ConnID   `json:"to" validate:"required"`
	Offer json.RawMessage `json:"offer"`
}

type answerPayload struct {
	Type   string          `json:"type"`
	To     domain.ConnID   `json:"to" validate:"required"`
	Answer json.RawMessage `json:"answer"`
}

type roomUsersEvent struct {
	Type  string               `json:"type"`
	Users []domain.Participant `json:"users"`
}

type roomJoinEvent struct {
	Type    string        `json:"type"`
	Message string        `json:"message"`
	RoomID  domain.RoomID `json:"roomId"`
	Email   string        `json:"email"`
}

// presenceEvent announces one participant arriving or leaving
// (user:joined / user:left).
type presenceEvent struct {
	Type  string        `json:"type"`
	Email string        `json:"email"`
	ID    domain.ConnID `json:"id"`
}

type offerEvent struct {
	Type  string          `json:"type"`
	From  domain.ConnID   `json:"from"`
	Offer json.RawMessage `json:"offer"`
}

type answerEvent struct {
	Type   string          `json:"type"`
	From   domain.ConnID   `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
