package p2p

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/libp2p/go-libp2p/core/event"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/protocol"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -typed -package=p2p -destination=./mocks.go -source=./upgrade.go

// Handler receives transport lifecycle and data events.
type Handler interface {
	// Admit decides whether a peer that is not yet connected may join.
	Admit(Peer) bool
	PeerJoined(Peer)
	PeerLeft(Peer)
	DataReceived([]byte, Peer)
}

// Opt is for configuring Host.
type Opt func(fh *Host)

// WithLogger configures logger for Host.
func WithLogger(logger *zap.Logger) Opt {
	return func(fh *Host) {
		fh.logger = logger
	}
}

// WithConfig sets Config for Host.
func WithConfig(cfg Config) Opt {
	return func(fh *Host) {
		fh.cfg = cfg
	}
}

// WithClock sets clock used to redial static peers.
func WithClock(clock clockwork.Clock) Opt {
	return func(fh *Host) {
		fh.clock = clock
	}
}

func withGater(g *gater) Opt {
	return func(fh *Host) {
		fh.gater = g
	}
}

// Host is a wrapper over libp2p host that delivers messages to a single Handler.
type Host struct {
	host.Host

	cfg    Config
	logger *zap.Logger
	clock  clockwork.Clock
	gater  *gater

	handler Handler
	topic   *pubsub.Topic

	mu       sync.Mutex
	outbound map[Peer]*outbound
	snapshot atomic.Pointer[[]Peer]

	eg     errgroup.Group
	cancel context.CancelFunc
}

// Upgrade creates Host instance from host.Host.
func Upgrade(h host.Host, opts ...Opt) (*Host, error) {
	fh := &Host{
		Host:     h,
		cfg:      DefaultConfig(),
		logger:   zap.NewNop(),
		clock:    clockwork.NewRealClock(),
		outbound: map[Peer]*outbound{},
	}
	for _, opt := range opts {
		opt(fh)
	}
	if fh.cfg.ServiceName == "" {
		return nil, errors.New("service name must be set")
	}
	empty := []Peer{}
	fh.snapshot.Store(&empty)
	return fh, nil
}

func (fh *Host) reliableProtocol() protocol.ID {
	return protocol.ID(fmt.Sprintf("/%s/reliable/1.0.0", fh.cfg.ServiceName))
}

func (fh *Host) topicName() string {
	return fmt.Sprintf("%s/best-effort", fh.cfg.ServiceName)
}

// Start installs handler and launches background workers.
// Peers that are already connected are reported as joined.
func (fh *Host) Start(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errors.New("handler is required")
	}
	fh.handler = handler
	ctx, fh.cancel = context.WithCancel(ctx)
	if fh.gater != nil {
		fh.gater.setAdmit(handler.Admit)
	}
	sub, err := fh.EventBus().Subscribe(new(event.EvtPeerConnectednessChanged))
	if err != nil {
		fh.cancel()
		return fmt.Errorf("subscribe for connectedness events: %w", err)
	}
	fh.SetStreamHandler(fh.reliableProtocol(), func(stream network.Stream) {
		fh.handleStream(ctx, stream)
	})
	if err := fh.startGossip(ctx); err != nil {
		sub.Close()
		fh.RemoveStreamHandler(fh.reliableProtocol())
		fh.cancel()
		return err
	}
	for _, pid := range fh.Network().Peers() {
		fh.peerConnected(ctx, pid)
	}
	fh.eg.Go(func() error {
		fh.listen(ctx, sub)
		return nil
	})
	if len(fh.cfg.Peers) > 0 {
		fh.eg.Go(func() error {
			return fh.dialPeers(ctx)
		})
	}
	return nil
}

// Stop background workers and release external resources.
func (fh *Host) Stop() error {
	if fh.cancel != nil {
		fh.cancel()
	}
	if fh.gater != nil {
		fh.gater.setAdmit(nil)
	}
	fh.RemoveStreamHandler(fh.reliableProtocol())
	if err := fh.eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fh.logger.Warn("p2p workers exited with error", zap.Error(err))
	}
	if fh.topic != nil {
		fh.topic.Close()
	}
	if err := fh.Host.Close(); err != nil {
		return fmt.Errorf("failed to close libp2p host: %w", err)
	}
	return nil
}

// ConnectedPeers returns a snapshot of the connected peers.
func (fh *Host) ConnectedPeers() []Peer {
	return *fh.snapshot.Load()
}

// SendToPeers queues data for the peers. Unknown peers are skipped.
func (fh *Host) SendToPeers(data []byte, reliable bool, peers ...Peer) {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	for _, pid := range peers {
		out, exists := fh.outbound[pid]
		if !exists {
			fh.logger.Debug("drop message for unknown peer", zap.Stringer("peer", pid))
			droppedMessages.WithLabelValues(reasonStream).Inc()
			continue
		}
		out.enqueue(data, reliable)
	}
}

// SendToAll sends data to every connected peer.
// Best-effort data is broadcasted over gossip.
func (fh *Host) SendToAll(data []byte, reliable bool) {
	if !reliable && fh.topic != nil {
		fh.publish(data)
		return
	}
	fh.mu.Lock()
	defer fh.mu.Unlock()
	for _, out := range fh.outbound {
		out.enqueue(data, reliable)
	}
}

// deliver registers the sender before handing data over, the data may be read
// before the connectedness event of the sender is processed.
func (fh *Host) deliver(ctx context.Context, data []byte, from Peer) {
	if ctx.Err() == nil && fh.Network().Connectedness(from) == network.Connected {
		fh.peerConnected(ctx, from)
	}
	fh.handler.DataReceived(data, from)
}
