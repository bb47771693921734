package signal

import (
	"sync"

	"github.com/shivsh94/Video-backend/internal/core"
	"github.com/shivsh94/Video-backend/internal/domain"
)

// PeerTable maps live connection ids to their transport endpoints. It is
// transport-level state only: entries appear when a connection is
// accepted and disappear when it closes, regardless of room membership.
// The negotiation relay resolves recipients here and nowhere else.
type PeerTable struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]core.SignalConnection
}

var _ core.PeerDirectory = (*PeerTable)(nil)

func NewPeerTable() *PeerTable {
	return &PeerTable{conns: make(map[domain.ConnID]core.SignalConnection)}
}

func (p *PeerTable) Register(id domain.ConnID, conn core.SignalConnection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[id] = conn
}

func (p *PeerTable) Unregister(id domain.ConnID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conns, id)
}

func (p *PeerTable) Get(id domain.ConnID) (core.SignalConnection, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	conn, ok := p.conns[id]
	return conn, ok
}
