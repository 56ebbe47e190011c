package p2p

import (
	"context"

	"github.com/libp2p/go-libp2p/core/event"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"
)

func (fh *Host) listen(ctx context.Context, sub event.Subscription) {
	defer sub.Close()
	defer fh.logger.Debug("peers events listener is stopped")
	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-sub.Out():
			if !open {
				return
			}
			changed, ok := evt.(event.EvtPeerConnectednessChanged)
			if !ok {
				panic("expecting event.EvtPeerConnectednessChanged")
			}
			switch changed.Connectedness {
			case network.Connected:
				fh.peerConnected(ctx, changed.Peer)
			case network.NotConnected:
				fh.peerDisconnected(changed.Peer)
			}
		}
	}
}

func (fh *Host) peerConnected(ctx context.Context, pid Peer) {
	fh.mu.Lock()
	if _, exists := fh.outbound[pid]; exists {
		fh.mu.Unlock()
		return
	}
	out := newOutbound(fh.logger, fh.Host, pid, fh.reliableProtocol(), fh.cfg)
	ctx, out.cancel = context.WithCancel(ctx)
	fh.outbound[pid] = out
	total := fh.updateSnapshot()
	fh.mu.Unlock()

	fh.eg.Go(func() error {
		out.run(ctx)
		return nil
	})
	fh.logger.Debug("new peer", zap.Stringer("peer", pid), zap.Int("total", total))
	fh.handler.PeerJoined(pid)
}

func (fh *Host) peerDisconnected(pid Peer) {
	fh.mu.Lock()
	out, exists := fh.outbound[pid]
	if !exists {
		fh.mu.Unlock()
		return
	}
	delete(fh.outbound, pid)
	total := fh.updateSnapshot()
	fh.mu.Unlock()

	out.stop()
	fh.logger.Debug("expired peer", zap.Stringer("peer", pid), zap.Int("total", total))
	fh.handler.PeerLeft(pid)
}

// updateSnapshot must be called with mu held.
func (fh *Host) updateSnapshot() int {
	keys := make([]Peer, 0, len(fh.outbound))
	for pid := range fh.outbound {
		keys = append(keys, pid)
	}
	fh.snapshot.Store(&keys)
	connectedPeers.Set(float64(len(keys)))
	return len(keys)
}

// dialPeers keeps connections to the static peers.
func (fh *Host) dialPeers(ctx context.Context) error {
	infos := make([]peer.AddrInfo, 0, len(fh.cfg.Peers))
	for _, addr := range fh.cfg.Peers {
		info, err := peer.AddrInfoFromString(addr)
		if err != nil {
			fh.logger.Warn("invalid peer address", zap.String("address", addr), zap.Error(err))
			continue
		}
		infos = append(infos, *info)
	}
	ticker := fh.clock.NewTicker(fh.cfg.DialInterval)
	defer ticker.Stop()
	for {
		for _, info := range infos {
			if fh.Network().Connectedness(info.ID) == network.Connected {
				continue
			}
			dctx, cancel := context.WithTimeout(ctx, fh.cfg.DialTimeout)
			err := fh.Connect(dctx, info)
			cancel()
			if err != nil {
				fh.logger.Debug("failed to connect", zap.Stringer("peer", info.ID), zap.Error(err))
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}
