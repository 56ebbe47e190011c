// Package sim implements an in-memory tracking engine. It shares the set of anchors
// created locally and materializes anchors received from remote sessions.
package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sun-23/go-multiuser/codec"
	"github.com/sun-23/go-multiuser/common/types"
	"github.com/sun-23/go-multiuser/tracking"
)

// ParticipantName is the name of anchors marking engine participants.
const ParticipantName = "participant"

// ErrEmptySession is returned for blobs that don't name the producing session.
var ErrEmptySession = errors.New("blob without session")

// Opt is for configuring Engine.
type Opt func(*Engine)

// WithLogger configures logger for Engine.
func WithLogger(logger *zap.Logger) Opt {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSession starts engine with the provided session instead of a random one.
func WithSession(id types.SessionID) Opt {
	return func(e *Engine) {
		e.session = id
	}
}

// WithPosition sets transform of the participant anchor that is shared with peers.
func WithPosition(transform types.Transform) Opt {
	return func(e *Engine) {
		e.position = transform
	}
}

var _ tracking.Engine = (*Engine)(nil)

// Engine is a simulated tracking engine.
type Engine struct {
	logger *zap.Logger

	mu        sync.Mutex
	session   types.SessionID
	position  types.Transform
	anchors   map[types.AnchorID]*types.Anchor
	dirty     bool
	listeners []tracking.Listener
}

// New creates simulated engine with a fresh session.
func New(opts ...Opt) *Engine {
	e := &Engine{
		logger:   zap.NewNop(),
		position: types.Identity,
		anchors:  map[types.AnchorID]*types.Anchor{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.session.Empty() {
		e.session = newSession()
	}
	return e
}

func newSession() types.SessionID {
	return types.SessionID(uuid.NewString())
}

// participantID is stable for a session so that repeated snapshots update the same anchor.
func participantID(session types.SessionID) types.AnchorID {
	return types.AnchorID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(session)))
}

// Subscribe registers listener for engine notifications.
func (e *Engine) Subscribe(l tracking.Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

func (e *Engine) subscribers() []tracking.Listener {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]tracking.Listener(nil), e.listeners...)
}

// SessionID returns current session.
func (e *Engine) SessionID() types.SessionID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Reset starts a new session. Local anchors survive and are shared under the new session.
func (e *Engine) Reset() types.SessionID {
	e.mu.Lock()
	e.session = newSession()
	e.dirty = true
	session := e.session
	e.mu.Unlock()

	e.logger.Info("session restarted", zap.Stringer("session_id", session))
	for _, l := range e.subscribers() {
		l.SessionChanged(session)
	}
	return session
}

// AddAnchor creates local content anchor.
func (e *Engine) AddAnchor(transform types.Transform, name string) types.AnchorID {
	anchor := &types.Anchor{
		ID:        types.AnchorID(uuid.New()),
		Name:      name,
		Kind:      types.ContentAnchor,
		Transform: transform,
	}
	e.mu.Lock()
	e.anchors[anchor.ID] = anchor
	e.dirty = true
	e.mu.Unlock()

	e.logger.Debug("anchor added", zap.Object("anchor", anchor))
	added := *anchor
	for _, l := range e.subscribers() {
		l.AnchorsAdded([]*types.Anchor{&added})
	}
	return anchor.ID
}

// RemoveAnchor drops the anchor. Unknown anchors are ignored.
func (e *Engine) RemoveAnchor(id types.AnchorID) {
	e.mu.Lock()
	anchor, exists := e.anchors[id]
	if exists {
		delete(e.anchors, id)
		if !anchor.Remote() {
			e.dirty = true
		}
	}
	e.mu.Unlock()
	if !exists {
		return
	}
	e.logger.Debug("anchor removed", zap.Object("anchor", anchor))
	for _, l := range e.subscribers() {
		l.AnchorsRemoved([]types.AnchorID{id})
	}
}

// Anchor returns a copy of the anchor.
func (e *Engine) Anchor(id types.AnchorID) (types.Anchor, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	anchor, exists := e.anchors[id]
	if !exists {
		return types.Anchor{}, false
	}
	return *anchor, true
}

// Anchors returns copies of all known anchors.
func (e *Engine) Anchors() []types.Anchor {
	e.mu.Lock()
	defer e.mu.Unlock()
	rst := make([]types.Anchor, 0, len(e.anchors))
	for _, anchor := range e.anchors {
		rst = append(rst, *anchor)
	}
	return rst
}

// ApplyCollaborationBlob materializes anchors from a remote snapshot.
// Anchors that are new, moved or changed their session are reported as added.
func (e *Engine) ApplyCollaborationBlob(data []byte) error {
	var snap snapshot
	if err := codec.Decode(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Session.Empty() {
		return ErrEmptySession
	}
	e.mu.Lock()
	if snap.Session == e.session {
		e.mu.Unlock()
		return nil
	}
	var added []*types.Anchor
	for _, rec := range snap.Anchors {
		existing, exists := e.anchors[rec.ID]
		if exists && !existing.Remote() {
			// local anchors are authoritative
			continue
		}
		if exists && existing.SessionID == snap.Session &&
			existing.Transform == rec.Transform && existing.Name == rec.Name {
			continue
		}
		anchor := &types.Anchor{
			ID:        rec.ID,
			Name:      rec.Name,
			Kind:      rec.Kind,
			Transform: rec.Transform,
			SessionID: snap.Session,
		}
		e.anchors[anchor.ID] = anchor
		reported := *anchor
		added = append(added, &reported)
	}
	e.mu.Unlock()

	if len(added) == 0 {
		return nil
	}
	for _, l := range e.subscribers() {
		l.AnchorsAdded(added)
	}
	return nil
}

// Tick shares engine state with listeners. The blob is critical if local anchors
// changed since the previous tick.
func (e *Engine) Tick() (types.CollaborationBlob, error) {
	e.mu.Lock()
	snap := snapshot{
		Session: e.session,
		Anchors: []record{{
			ID:        participantID(e.session),
			Name:      ParticipantName,
			Kind:      types.ParticipantAnchor,
			Transform: e.position,
		}},
	}
	for _, anchor := range e.anchors {
		if anchor.Remote() {
			continue
		}
		snap.Anchors = append(snap.Anchors, record{
			ID:        anchor.ID,
			Name:      anchor.Name,
			Kind:      anchor.Kind,
			Transform: anchor.Transform,
		})
	}
	priority := types.Optional
	if e.dirty {
		priority = types.Critical
	}
	e.dirty = false
	e.mu.Unlock()

	data, err := codec.Encode(&snap)
	if err != nil {
		return types.CollaborationBlob{}, fmt.Errorf("encode snapshot: %w", err)
	}
	blob := types.CollaborationBlob{Priority: priority, Data: data}
	for _, l := range e.subscribers() {
		l.CollaborationData(blob)
	}
	return blob, nil
}

// Move updates participant position shared with peers.
func (e *Engine) Move(transform types.Transform) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = transform
}
