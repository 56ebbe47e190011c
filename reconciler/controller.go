// Package reconciler keeps the shared world consistent with the set of connected peers.
//
// Peers announce their current session id to each other. Anchors materialized from
// remote state are attributed to the session that created them and retracted when
// that session is superseded or its peer disconnects.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sun-23/go-multiuser/anchors"
	"github.com/sun-23/go-multiuser/common/types"
	"github.com/sun-23/go-multiuser/p2p"
	"github.com/sun-23/go-multiuser/sessions"
	"github.com/sun-23/go-multiuser/wire"
)

// ErrStopped is returned by requests submitted after the controller stopped.
var ErrStopped = errors.New("controller stopped")

// Config for Controller.
type Config struct {
	// MaxPeers is the number of connected peers after which new peers are rejected.
	MaxPeers int `mapstructure:"max-peers"`
	// TransientNames are names of content anchors whose entities expire by themselves.
	TransientNames []string `mapstructure:"transient-names"`
	// JoinTimeout after which admitted peers that never connected are forgotten
	// and anchors of sessions that no peer owns are purged.
	JoinTimeout time.Duration `mapstructure:"join-timeout"`
}

// DefaultConfig for Controller.
func DefaultConfig() Config {
	return Config{
		MaxPeers:       5,
		TransientNames: []string{"LaserRed"},
		JoinTimeout:    30 * time.Second,
	}
}

// Opt is for configuring Controller.
type Opt func(*Controller)

// WithLogger configures logger for Controller.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithConfig sets Config for Controller.
func WithConfig(cfg Config) Opt {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithClock sets clock used to expire joining peers.
func WithClock(clock clockwork.Clock) Opt {
	return func(c *Controller) {
		c.clock = clock
	}
}

type peerState struct {
	state types.PeerState
	since time.Time
}

// PeerStatus describes a single peer.
type PeerStatus struct {
	Peer      p2p.Peer
	State     types.PeerState
	SessionID types.SessionID
}

// Status is a snapshot of the controller state.
type Status struct {
	SessionID types.SessionID
	Peers     []PeerStatus
	Anchors   int
}

// Controller is a single actor that owns the session registry, the anchor tracker
// and the per peer protocol state. Exported methods are safe for concurrent use:
// they enqueue events that are processed in order by Run.
type Controller struct {
	logger    *zap.Logger
	cfg       Config
	clock     clockwork.Clock
	transport Transport
	engine    Engine
	scene     Scene

	// owned by Run
	local     types.SessionID
	registry  *sessions.Registry
	tracker   *anchors.Tracker
	states    map[p2p.Peer]*peerState
	transient map[string]struct{}
	// tracked sessions without an owner, by the time they were first seen orphaned
	orphans map[types.SessionID]time.Time

	mu      sync.Mutex
	queue   []func(context.Context)
	stopped bool
	notify  chan struct{}
	done    chan struct{}
}

// New creates Controller.
func New(transport Transport, engine Engine, scene Scene, opts ...Opt) (*Controller, error) {
	c := &Controller{
		logger:    zap.NewNop(),
		cfg:       DefaultConfig(),
		clock:     clockwork.NewRealClock(),
		transport: transport,
		engine:    engine,
		scene:     scene,
		registry:  sessions.NewRegistry(),
		states:    map[p2p.Peer]*peerState{},
		transient: map[string]struct{}{},
		orphans:   map[types.SessionID]time.Time{},
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg.MaxPeers <= 0 {
		return nil, fmt.Errorf("max peers must be positive, got %d", c.cfg.MaxPeers)
	}
	if c.cfg.JoinTimeout <= 0 {
		return nil, fmt.Errorf("join timeout must be positive, got %v", c.cfg.JoinTimeout)
	}
	for _, name := range c.cfg.TransientNames {
		c.transient[name] = struct{}{}
	}
	tracker, err := anchors.New(engine, anchors.WithLogger(c.logger.Named("anchors")))
	if err != nil {
		return nil, err
	}
	c.tracker = tracker
	return c, nil
}

// Run processes events until ctx is canceled.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.stop()
	ticker := c.clock.NewTicker(c.cfg.JoinTimeout)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.notify:
			for _, ev := range c.drain() {
				ev(ctx)
			}
		case <-ticker.Chan():
			c.expireJoining()
			c.sweepOrphans()
		}
	}
}

func (c *Controller) enqueue(ev func(context.Context)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return false
	}
	c.queue = append(c.queue, ev)
	select {
	case c.notify <- struct{}{}:
	default:
	}
	return true
}

func (c *Controller) drain() []func(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := c.queue
	c.queue = nil
	return events
}

func (c *Controller) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.queue = nil
}

// LocalSessionChanged announces the new local session to connected peers.
func (c *Controller) LocalSessionChanged(id types.SessionID) {
	c.enqueue(func(context.Context) { c.onLocalSession(id) })
}

// SessionChanged implements tracking.Listener.
func (c *Controller) SessionChanged(id types.SessionID) {
	c.LocalSessionChanged(id)
}

// Admit decides if the peer may join. It blocks until the decision is made and
// rejects peers once the controller stopped.
func (c *Controller) Admit(peer p2p.Peer) bool {
	reply := make(chan bool, 1)
	if !c.enqueue(func(context.Context) { reply <- c.onAdmit(peer) }) {
		return false
	}
	select {
	case rst := <-reply:
		return rst
	case <-c.done:
		return false
	}
}

// PeerJoined implements p2p.Handler.
func (c *Controller) PeerJoined(peer p2p.Peer) {
	c.enqueue(func(context.Context) { c.onPeerJoined(peer) })
}

// PeerLeft implements p2p.Handler.
func (c *Controller) PeerLeft(peer p2p.Peer) {
	c.enqueue(func(context.Context) { c.onPeerLeft(peer) })
}

// DataReceived implements p2p.Handler.
func (c *Controller) DataReceived(data []byte, peer p2p.Peer) {
	c.enqueue(func(context.Context) { c.onData(data, peer) })
}

// CollaborationData implements tracking.Listener.
func (c *Controller) CollaborationData(blob types.CollaborationBlob) {
	c.enqueue(func(context.Context) { c.onCollaborationData(blob) })
}

// AnchorsAdded implements tracking.Listener.
func (c *Controller) AnchorsAdded(added []*types.Anchor) {
	c.enqueue(func(ctx context.Context) { c.onAnchorsAdded(ctx, added) })
}

// AnchorsRemoved implements tracking.Listener.
func (c *Controller) AnchorsRemoved(ids []types.AnchorID) {
	c.enqueue(func(context.Context) { c.onAnchorsRemoved(ids) })
}

// Place adds local content anchor.
func (c *Controller) Place(transform types.Transform, name string) types.AnchorID {
	return c.engine.AddAnchor(transform, name)
}

// Snapshot returns current state. Events submitted before the call are reflected in the result.
func (c *Controller) Snapshot(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)
	if !c.enqueue(func(context.Context) { reply <- c.status() }) {
		return Status{}, ErrStopped
	}
	select {
	case <-ctx.Done():
		return Status{}, ctx.Err()
	case <-c.done:
		return Status{}, ErrStopped
	case st := <-reply:
		return st, nil
	}
}

func (c *Controller) onLocalSession(id types.SessionID) {
	c.local = id
	c.logger.Info("local session changed", zap.Stringer("session_id", id))
	if len(c.transport.ConnectedPeers()) == 0 {
		return
	}
	c.transport.SendToAll(wire.EncodeIdentity(id), true)
}

func (c *Controller) onAdmit(peer p2p.Peer) bool {
	connected := c.transport.ConnectedPeers()
	if len(connected) >= c.cfg.MaxPeers {
		c.logger.Info("peer rejected",
			zap.Stringer("peer", peer),
			zap.Int("connected", len(connected)),
			zap.Int("max", c.cfg.MaxPeers),
		)
		admissions.WithLabelValues("rejected").Inc()
		return false
	}
	c.setState(peer, types.Joining)
	admissions.WithLabelValues("accepted").Inc()
	return true
}

func (c *Controller) onPeerJoined(peer p2p.Peer) {
	if st, exists := c.states[peer]; !exists || st.state != types.Active {
		c.setState(peer, types.Syncing)
	}
	c.logger.Info("peer joined", zap.Stringer("peer", peer))
	if c.local.Empty() {
		return
	}
	c.transport.SendToPeers(wire.EncodeIdentity(c.local), true, peer)
}

func (c *Controller) onData(data []byte, peer p2p.Peer) {
	msg := wire.Decode(data)
	receivedMessages.WithLabelValues(msg.Kind.String()).Inc()
	switch msg.Kind {
	case wire.Blob:
		if err := c.engine.ApplyCollaborationBlob(msg.Blob.Data); err != nil {
			c.logger.Warn("failed to apply collaboration data",
				zap.Stringer("peer", peer),
				zap.Stringer("priority", msg.Blob.Priority),
				zap.Error(err),
			)
			droppedBlobs.WithLabelValues(reasonApply).Inc()
		}
	case wire.Identity:
		c.onIdentity(msg.SessionID, peer)
	default:
		c.logger.Debug("dropped unrecognized message",
			zap.Stringer("peer", peer),
			zap.Int("size", len(data)),
		)
	}
}

func (c *Controller) onIdentity(id types.SessionID, peer p2p.Peer) {
	if !slices.Contains(c.transport.ConnectedPeers(), peer) {
		c.logger.Debug("dropped identity from disconnected peer",
			zap.Stringer("peer", peer),
			zap.Stringer("session_id", id),
		)
		return
	}
	superseded, changed := c.registry.Set(peer, id)
	knownSessions.Set(float64(c.registry.Len()))
	c.tracker.Revive(id)
	c.setState(peer, types.Active)
	c.logger.Info("peer session announced",
		zap.Stringer("peer", peer),
		zap.Stringer("session_id", id),
		zap.Stringer("superseded", superseded),
	)
	if changed {
		purged := c.tracker.PurgeBySessionID(superseded)
		purgedAnchors.WithLabelValues(causeIdentity).Add(float64(purged))
		c.logger.Info("purged anchors of superseded session",
			zap.Stringer("peer", peer),
			zap.Stringer("session_id", superseded),
			zap.Int("anchors", purged),
		)
	}
}

func (c *Controller) onCollaborationData(blob types.CollaborationBlob) {
	if len(c.transport.ConnectedPeers()) == 0 {
		c.logger.Debug("no peers, dropped collaboration data", zap.Stringer("priority", blob.Priority))
		droppedBlobs.WithLabelValues(reasonNoPeers).Inc()
		return
	}
	data, err := wire.EncodeBlob(&blob)
	if err != nil {
		c.logger.Error("failed to encode collaboration data",
			zap.Stringer("priority", blob.Priority),
			zap.Int("size", len(blob.Data)),
			zap.Error(err),
		)
		droppedBlobs.WithLabelValues(reasonEncode).Inc()
		return
	}
	c.transport.SendToAll(data, blob.Reliable())
	sentBlobs.WithLabelValues(blob.Priority.String()).Inc()
	blobSize.WithLabelValues(blob.Priority.String()).Observe(float64(len(data)))
}

func (c *Controller) onPeerLeft(peer p2p.Peer) {
	delete(c.states, peer)
	id, exists := c.registry.Remove(peer)
	knownSessions.Set(float64(c.registry.Len()))
	if !exists {
		c.logger.Info("peer left", zap.Stringer("peer", peer))
		return
	}
	purged := c.tracker.PurgeBySessionID(id)
	purgedAnchors.WithLabelValues(causeDeparture).Add(float64(purged))
	c.logger.Info("peer left",
		zap.Stringer("peer", peer),
		zap.Stringer("session_id", id),
		zap.Int("anchors", purged),
	)
}

func (c *Controller) onAnchorsAdded(ctx context.Context, added []*types.Anchor) {
	for _, anchor := range added {
		if anchor.Remote() && !c.tracker.Track(anchor) {
			continue
		}
		switch {
		case anchor.Kind == types.ParticipantAnchor:
			c.scene.PlaceParticipant(anchor)
		case c.isTransient(anchor.Name):
			placed := *anchor
			placed.Transient = true
			c.scene.PlaceTransient(ctx, &placed)
		}
	}
}

func (c *Controller) onAnchorsRemoved(ids []types.AnchorID) {
	for _, id := range ids {
		if session, exists := c.tracker.SessionOf(id); exists {
			c.logger.Debug("remote anchor removed",
				zap.Stringer("anchor", id),
				zap.Stringer("session_id", session),
			)
			c.tracker.Untrack(id)
		}
		c.scene.Detach(id)
	}
}

func (c *Controller) isTransient(name string) bool {
	_, exists := c.transient[name]
	return exists
}

func (c *Controller) setState(peer p2p.Peer, state types.PeerState) {
	st, exists := c.states[peer]
	if !exists {
		st = &peerState{}
		c.states[peer] = st
	}
	if st.state == state && exists {
		return
	}
	c.logger.Debug("peer state changed",
		zap.Stringer("peer", peer),
		zap.Stringer("from", st.state),
		zap.Stringer("to", state),
	)
	st.state = state
	st.since = c.clock.Now()
}

// expireJoining forgets admitted peers that never connected.
func (c *Controller) expireJoining() {
	now := c.clock.Now()
	for pid, st := range c.states {
		if st.state == types.Joining && now.Sub(st.since) >= c.cfg.JoinTimeout {
			c.logger.Debug("admitted peer never connected", zap.Stringer("peer", pid))
			delete(c.states, pid)
		}
	}
}

// sweepOrphans purges anchors of sessions that no connected peer announced
// within JoinTimeout. Collaboration data may arrive before the identity
// announcement, and the announcement may never come if the peer leaves.
func (c *Controller) sweepOrphans() {
	now := c.clock.Now()
	tracked := map[types.SessionID]struct{}{}
	for _, id := range c.tracker.Sessions() {
		tracked[id] = struct{}{}
		if _, owned := c.registry.Owner(id); owned {
			delete(c.orphans, id)
			continue
		}
		since, exists := c.orphans[id]
		if !exists {
			c.orphans[id] = now
			c.logger.Debug("session without owner",
				zap.Stringer("session_id", id),
				zap.Int("anchors", c.tracker.Count(id)),
			)
			continue
		}
		if now.Sub(since) < c.cfg.JoinTimeout {
			continue
		}
		delete(c.orphans, id)
		purged := c.tracker.PurgeBySessionID(id)
		purgedAnchors.WithLabelValues(causeOrphaned).Add(float64(purged))
		c.logger.Info("purged anchors of orphaned session",
			zap.Stringer("session_id", id),
			zap.Int("anchors", purged),
		)
	}
	for id := range c.orphans {
		if _, exists := tracked[id]; !exists {
			delete(c.orphans, id)
		}
	}
}

func (c *Controller) status() Status {
	st := Status{
		SessionID: c.local,
		Peers:     make([]PeerStatus, 0, len(c.states)),
		Anchors:   c.tracker.Len(),
	}
	for pid, state := range c.states {
		id, _ := c.registry.Get(pid)
		st.Peers = append(st.Peers, PeerStatus{Peer: pid, State: state.state, SessionID: id})
	}
	slices.SortFunc(st.Peers, func(a, b PeerStatus) int {
		return strings.Compare(string(a.Peer), string(b.Peer))
	})
	return st
}
