package app

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shivsh94/Video-backend/internal/domain"
)

var (
	ErrEmptyRoom     = errors.New("empty room id")
	ErrEmptyIdentity = errors.New("empty identity")
	ErrAlreadyJoined = errors.New("already joined")
)

// Departure is the membership released by a leave: who left which room,
// and who is still there after the removal.
type Departure struct {
	Participant domain.Participant
	Room        domain.RoomID
	Remaining   []domain.Participant
}

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
}

// Registry is the authoritative in-memory presence state: room -> member
// set (in join order), identity <-> connection maps, and the
// connection -> room side table. It is the sole mutator of this state;
// join and leave are atomic under one mutex because both are
// check-then-mutate sequences.
type Registry struct {
	mu          sync.Mutex
	rooms       map[domain.RoomID][]domain.Participant
	roomOf      map[domain.ConnID]domain.RoomID
	connByEmail map[string]domain.ConnID
	emailByConn map[domain.ConnID]string
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:       make(map[domain.RoomID][]domain.Participant),
		roomOf:      make(map[domain.ConnID]domain.RoomID),
		connByEmail: make(map[string]domain.ConnID),
		emailByConn: make(map[domain.ConnID]string),
	}
}

// Join adds the connection to the room and returns a snapshot of the
// members that were present before it, so the caller can notify them
// separately from the joiner.
//
// A connection may hold at most one membership: a second Join for a live
// connection fails with ErrAlreadyJoined and mutates nothing. If the
// identity is already bound to another live connection, that connection
// is evicted first (latest connection wins) and its Departure is returned
// so the caller can fan out the leave notifications.
func (r *Registry) Join(room domain.RoomID, id domain.ConnID, email string) ([]domain.Participant, *Departure, error) {
	if room == "" {
		return nil, nil, ErrEmptyRoom
	}
	if email == "" {
		return nil, nil, ErrEmptyIdentity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomOf[id]; ok {
		return nil, nil, ErrAlreadyJoined
	}

	var evicted *Departure
	if old, ok := r.connByEmail[email]; ok {
		if dep, ok := r.leaveLocked(old); ok {
			evicted = &dep
			log.Info().Str("module", "app.registry").
				Str("email", email).
				Str("old_conn", string(old)).
				Str("new_conn", string(id)).
				Msg("identity rebound, old connection evicted")
		}
	}

	members := r.rooms[room]
	existing := make([]domain.Participant, len(members))
	copy(existing, members)

	r.rooms[room] = append(members, domain.NewParticipant(id, email))
	r.roomOf[id] = room
	r.connByEmail[email] = id
	r.emailByConn[id] = email

	log.Info().Str("module", "app.registry").
		Str("conn", string(id)).
		Str("email", email).
		Str("room", string(room)).
		Msg("member joined")
	return existing, evicted, nil
}

// Leave removes the connection's membership and both identity-map
// entries. The second call for the same connection reports not found, so
// duplicate disconnect events release nothing twice. The returned
// Departure carries the post-removal member set (possibly empty); an
// empty room is deleted outright.
func (r *Registry) Leave(id domain.ConnID) (Departure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaveLocked(id)
}

func (r *Registry) leaveLocked(id domain.ConnID) (Departure, bool) {
	email, ok := r.emailByConn[id]
	if !ok {
		return Departure{}, false
	}
	room := r.roomOf[id]

	members := r.rooms[room]
	for i, m := range members {
		if m.ID == id {
			members = append(members[:i], members[i+1:]...)
			break
		}
	}
	if len(members) == 0 {
		delete(r.rooms, room)
	} else {
		r.rooms[room] = members
	}

	delete(r.roomOf, id)
	delete(r.emailByConn, id)
	// The email map may already point at a newer connection.
	if r.connByEmail[email] == id {
		delete(r.connByEmail, email)
	}

	remaining := make([]domain.Participant, len(members))
	copy(remaining, members)

	log.Info().Str("module", "app.registry").
		Str("conn", string(id)).
		Str("email", email).
		Str("room", string(room)).
		Int("remaining", len(remaining)).
		Msg("member left")
	return Departure{
		Participant: domain.NewParticipant(id, email),
		Room:        room,
		Remaining:   remaining,
	}, true
}

// Rooms lists the live rooms with their member counts.
func (r *Registry) Rooms() []RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for id, members := range r.rooms {
		out = append(out, RoomInfo{ID: id, MemberCount: len(members)})
	}
	return out
}

// MembersOf returns the room's member set in join order, or false if the
// room does not exist (a room exists iff it has at least one member).
func (r *Registry) MembersOf(room domain.RoomID) ([]domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[room]
	if !ok {
		return nil, false
	}
	out := make([]domain.Participant, len(members))
	copy(out, members)
	return out, true
}
