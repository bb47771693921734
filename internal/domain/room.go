package domain

// RoomID names a room. Rooms are implicitly created on first join and
// destroyed when the last member leaves; there is no room entity beyond
// its identifier and member set.
type RoomID string
