// Package anchors indexes remote anchors by the session that created them.
package anchors

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/sun-23/go-multiuser/common/types"
)

// DefaultRetiredSize is the number of retired sessions remembered by default.
const DefaultRetiredSize = 1024

// Opt configures Tracker.
type Opt func(*Tracker)

// WithLogger sets logger for Tracker.
func WithLogger(logger *zap.Logger) Opt {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithRetiredSize sets the number of retired sessions to remember.
func WithRetiredSize(size int) Opt {
	return func(t *Tracker) {
		t.retiredSize = size
	}
}

// Tracker attributes remote anchors to their originating session and purges them
// when the session goes away. It is not safe for concurrent use.
type Tracker struct {
	logger      *zap.Logger
	remover     Remover
	retiredSize int

	bySession map[types.SessionID]map[types.AnchorID]struct{}
	sessionOf map[types.AnchorID]types.SessionID
	// sessions that were purged. anchors tagged with them may still arrive late,
	// collaboration data is not ordered with identity announcements.
	retired *lru.Cache[types.SessionID, struct{}]
}

// New creates a Tracker that retracts purged anchors with remover.
func New(remover Remover, opts ...Opt) (*Tracker, error) {
	t := &Tracker{
		logger:      zap.NewNop(),
		remover:     remover,
		retiredSize: DefaultRetiredSize,
		bySession:   make(map[types.SessionID]map[types.AnchorID]struct{}),
		sessionOf:   make(map[types.AnchorID]types.SessionID),
	}
	for _, opt := range opts {
		opt(t)
	}
	retired, err := lru.New[types.SessionID, struct{}](t.retiredSize)
	if err != nil {
		return nil, fmt.Errorf("create retired sessions cache: %w", err)
	}
	t.retired = retired
	return t, nil
}

// Track indexes the anchor under its originating session.
// Anchors without a session are ignored. Anchors of a retired session are removed
// right away and false is returned.
func (t *Tracker) Track(anchor *types.Anchor) bool {
	if !anchor.Remote() {
		return true
	}
	if t.retired.Contains(anchor.SessionID) {
		t.logger.Debug("anchor from retired session",
			zap.Object("anchor", anchor),
		)
		t.remover.RemoveAnchor(anchor.ID)
		return false
	}
	if prev, exists := t.sessionOf[anchor.ID]; exists && prev != anchor.SessionID {
		t.forget(anchor.ID, prev)
	}
	set, exists := t.bySession[anchor.SessionID]
	if !exists {
		set = make(map[types.AnchorID]struct{})
		t.bySession[anchor.SessionID] = set
	}
	set[anchor.ID] = struct{}{}
	t.sessionOf[anchor.ID] = anchor.SessionID
	return true
}

// Untrack forgets an anchor that was removed without a purge.
func (t *Tracker) Untrack(id types.AnchorID) {
	if session, exists := t.sessionOf[id]; exists {
		t.forget(id, session)
	}
}

func (t *Tracker) forget(id types.AnchorID, session types.SessionID) {
	delete(t.sessionOf, id)
	set := t.bySession[session]
	delete(set, id)
	if len(set) == 0 {
		delete(t.bySession, session)
	}
}

// PurgeBySessionID retracts every anchor created by the session and returns
// the number of retracted anchors. Purging a session without anchors is a noop.
func (t *Tracker) PurgeBySessionID(session types.SessionID) int {
	if session.Empty() {
		return 0
	}
	t.retired.Add(session, struct{}{})
	set := t.bySession[session]
	delete(t.bySession, session)
	for id := range set {
		delete(t.sessionOf, id)
		t.remover.RemoveAnchor(id)
	}
	if len(set) > 0 {
		t.logger.Debug("purged anchors",
			zap.Stringer("session_id", session),
			zap.Int("count", len(set)),
		)
	}
	return len(set)
}

// SessionOf returns the session that created the anchor.
func (t *Tracker) SessionOf(id types.AnchorID) (types.SessionID, bool) {
	session, exists := t.sessionOf[id]
	return session, exists
}

// Count returns the number of tracked anchors of the session.
func (t *Tracker) Count(session types.SessionID) int {
	return len(t.bySession[session])
}

// Sessions returns the sessions with at least one tracked anchor.
func (t *Tracker) Sessions() []types.SessionID {
	return maps.Keys(t.bySession)
}

// Len returns the number of tracked anchors.
func (t *Tracker) Len() int {
	return len(t.sessionOf)
}

// Revive makes the session trackable again. It is needed when a peer announces
// a session that was retired before, e.g. after a reconnect.
func (t *Tracker) Revive(session types.SessionID) {
	t.retired.Remove(session)
}
