package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shivsh94/Video-backend/internal/app"
	"github.com/shivsh94/Video-backend/internal/core"
	"github.com/shivsh94/Video-backend/internal/domain"
)

// handleJoin runs the room:join protocol. Notification order matters:
// the joiner gets the pre-join snapshot first so it can start outbound
// negotiation toward each existing member, then each existing member is
// told about the newcomer, then the human-readable announcement goes to
// the room (sender excluded).
func (ctl *SignalWSController) handleJoin(sid domain.ConnID, conn core.SignalConnection, data []byte) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		return
	}
	// A join with a missing email or roomId is dropped outright: no
	// state change, no outbound events.
	if err := ctl.validate.Struct(p); err != nil {
		log.Error().Err(err).Str("module", "signal").
			Str("conn", string(sid)).
			Str("email", p.Email).
			Str("room", p.RoomID).
			Msg("missing email or roomId")
		return
	}

	room := domain.RoomID(p.RoomID)
	existing, evicted, err := ctl.Registry.Join(room, sid, p.Email)
	if err != nil {
		if errors.Is(err, app.ErrAlreadyJoined) {
			ctl.sendJSON(conn, errorEvent{Type: evError, Error: "already joined"})
			return
		}
		log.Error().Err(err).Str("module", "signal").Str("conn", string(sid)).Msg("join rejected")
		return
	}

	// Same identity arrived on a new connection: the old one lost its
	// membership, tell its former room mates and the connection itself.
	if evicted != nil {
		ctl.notifyLeft(*evicted)
		ctl.sendTo(evicted.Participant.ID, errorEvent{Type: evError, Error: "session replaced"})
	}

	log.Info().Str("module", "signal").
		Str("conn", string(sid)).
		Str("email", p.Email).
		Str("room", string(room)).
		Msg("join")

	ctl.sendJSON(conn, roomUsersEvent{Type: evRoomUsers, Users: existing})
	ctl.sendJSON(conn, roomJoinEvent{
		Type:    evRoomJoin,
		Message: fmt.Sprintf("You joined room %s", room),
		RoomID:  room,
		Email:   p.Email,
	})

	for _, m := range existing {
		ctl.sendTo(m.ID, presenceEvent{Type: evUserJoined, Email: p.Email, ID: sid})
	}

	announce := roomJoinEvent{
		Type:    evRoomJoin,
		Message: fmt.Sprintf("%s has joined the room", p.Email),
		RoomID:  room,
		Email:   p.Email,
	}
	for _, m := range existing {
		ctl.sendTo(m.ID, announce)
	}
}

// onDisconnect releases the connection's presence exactly once. A
// connection that never joined has nothing in the registry, so the
// lookup-miss is a no-op beyond logging.
func (ctl *SignalWSController) onDisconnect(sid domain.ConnID) {
	ctl.Peers.Unregister(sid)

	dep, ok := ctl.Registry.Leave(sid)
	if !ok {
		log.Info().Str("module", "signal").Str("conn", string(sid)).Msg("user disconnected (never joined)")
		return
	}
	log.Info().Str("module", "signal").
		Str("conn", string(sid)).
		Str("email", dep.Participant.Email).
		Str("room", string(dep.Room)).
		Msg("user disconnected")
	ctl.notifyLeft(dep)
}

func (ctl *SignalWSController) notifyLeft(dep app.Departure) {
	ev := presenceEvent{Type: evUserLeft, Email: dep.Participant.Email, ID: dep.Participant.ID}
	for _, m := range dep.Remaining {
		ctl.sendTo(m.ID, ev)
	}
}
