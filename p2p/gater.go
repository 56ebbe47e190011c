package p2p

import (
	"sync"

	"github.com/libp2p/go-libp2p/core/control"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"
)

// gater consults the admission callback once per join attempt.
// Additional connections to an already connected peer are not join attempts.
type gater struct {
	mu      sync.Mutex
	network network.Network
	admit   func(Peer) bool
}

func (g *gater) setNetwork(n network.Network) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.network = n
}

func (g *gater) setAdmit(admit func(Peer) bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.admit = admit
}

func (*gater) InterceptPeerDial(_ peer.ID) bool {
	return true
}

func (*gater) InterceptAddrDial(_ peer.ID, _ multiaddr.Multiaddr) bool {
	return true
}

func (*gater) InterceptAccept(_ network.ConnMultiaddrs) bool {
	return true
}

func (g *gater) InterceptSecured(_ network.Direction, pid peer.ID, _ network.ConnMultiaddrs) bool {
	g.mu.Lock()
	nw, admit := g.network, g.admit
	g.mu.Unlock()
	if nw != nil && nw.Connectedness(pid) == network.Connected {
		return true
	}
	if admit == nil {
		admissions.WithLabelValues("not_started").Inc()
		return false
	}
	if !admit(pid) {
		admissions.WithLabelValues("rejected").Inc()
		return false
	}
	admissions.WithLabelValues("accepted").Inc()
	return true
}

func (*gater) InterceptUpgraded(_ network.Conn) (allow bool, reason control.DisconnectReason) {
	return true, 0
}
