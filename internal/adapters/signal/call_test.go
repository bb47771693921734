package signal

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivsh94/Video-backend/internal/domain"
)

func TestRelayPayloadTransparency(t *testing.T) {
	blob := `{"sdp":"v=0 o=- 42","nested":[1,2,{"k":"v"}]}`

	cases := []struct {
		inType  string
		outType string
		field   string
	}{
		{"user:call", "incoming:call", "offer"},
		{"call:accepted", "call:accepted", "answer"},
		{"peer:nego:needed", "peer:nego:needed", "offer"},
		{"peer:nego:done", "peer:nego:final", "answer"},
	}

	for _, tc := range cases {
		t.Run(tc.inType, func(t *testing.T) {
			ctl := newTestController()
			sender := connect(ctl, "S")
			receiver := connect(ctl, "R")

			frame := fmt.Sprintf(`{"type":%q,"to":"R",%q:%s}`, tc.inType, tc.field, blob)
			ctl.handleEvent("S", sender, []byte(frame))

			receiver.mu.Lock()
			frames := receiver.frames
			receiver.mu.Unlock()
			require.Len(t, frames, 1)

			var got struct {
				Type   string          `json:"type"`
				From   domain.ConnID   `json:"from"`
				Offer  json.RawMessage `json:"offer"`
				Answer json.RawMessage `json:"answer"`
			}
			require.NoError(t, json.Unmarshal(frames[0], &got))
			assert.Equal(t, tc.outType, got.Type)
			assert.Equal(t, domain.ConnID("S"), got.From)

			relayed := got.Offer
			if tc.field == "answer" {
				relayed = got.Answer
			}
			// The blob must come out byte-identical.
			assert.Equal(t, blob, string(relayed))

			// The sender hears nothing back.
			assert.Empty(t, sender.events(t))
		})
	}
}

func TestRelayUnknownRecipient(t *testing.T) {
	ctl := newTestController()
	sender := connect(ctl, "S")

	ctl.handleEvent("S", sender, []byte(`{"type":"user:call","to":"nobody","offer":{"sdp":"x"}}`))

	// Silent no-op: nothing surfaces to the sender.
	assert.Empty(t, sender.events(t))
}

func TestRelayMissingRecipient(t *testing.T) {
	ctl := newTestController()
	sender := connect(ctl, "S")
	other := connect(ctl, "R")

	ctl.handleEvent("S", sender, []byte(`{"type":"call:accepted","answer":{"sdp":"x"}}`))

	assert.Empty(t, sender.events(t))
	assert.Empty(t, other.events(t))
}

func TestRelayIgnoresRoomMembership(t *testing.T) {
	ctl := newTestController()
	sender := connect(ctl, "S")
	receiver := connect(ctl, "R")

	// Neither peer joined a room; forwarding is addressed purely by
	// connection id.
	ctl.handleEvent("S", sender, []byte(`{"type":"user:call","to":"R","offer":{"sdp":"x"}}`))

	evs := receiver.events(t)
	require.Len(t, evs, 1)
	assert.Equal(t, "incoming:call", evs[0]["type"])
	assert.Equal(t, "S", evs[0]["from"])
}
