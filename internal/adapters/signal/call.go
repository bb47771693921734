package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/shivsh94/Video-backend/internal/domain"
)

// The negotiation relay is a stateless pass-through: it stamps the
// sender's connection id on the frame and hands the blob to the named
// recipient. Offers and answers are never inspected here. A recipient
// that is not connected makes the forward a silent no-op.

func (ctl *SignalWSController) relayOffer(sid domain.ConnID, data []byte, outType string) {
	var p offerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}
	if err := ctl.validate.Struct(p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(sid)).Msg("offer without recipient")
		return
	}
	target, ok := ctl.Peers.Get(p.To)
	if !ok {
		log.Debug().Str("module", "signal").Str("to", string(p.To)).Msg("relay target not connected")
		return
	}
	ctl.sendJSON(target, offerEvent{Type: outType, From: sid, Offer: p.Offer})
}

func (ctl *SignalWSController) relayAnswer(sid domain.ConnID, data []byte, outType string) {
	var p answerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}
	if err := ctl.validate.Struct(p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(sid)).Msg("answer without recipient")
		return
	}
	target, ok := ctl.Peers.Get(p.To)
	if !ok {
		log.Debug().Str("module", "signal").Str("to", string(p.To)).Msg("relay target not connected")
		return
	}
	ctl.sendJSON(target, answerEvent{Type: outType, From: sid, Answer: p.Answer})
}
