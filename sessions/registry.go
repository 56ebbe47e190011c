// Package sessions keeps track of the tracking session each connected peer currently owns.
package sessions

import (
	"github.com/sun-23/go-multiuser/common/types"
	"github.com/sun-23/go-multiuser/p2p"
)

// Registry maps connected peers to their current session id.
//
// Registry is pure bookkeeping and is not safe for concurrent use, it is owned by
// a single writer that also decides what to do with superseded sessions.
type Registry struct {
	current map[p2p.Peer]types.SessionID
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{current: make(map[p2p.Peer]types.SessionID)}
}

// Set records id as the current session of peer.
// If peer owned a different session before, it is returned as superseded.
func (r *Registry) Set(peer p2p.Peer, id types.SessionID) (types.SessionID, bool) {
	prev, exists := r.current[peer]
	r.current[peer] = id
	if exists && prev != id {
		return prev, true
	}
	return types.EmptySessionID, false
}

// Get returns the current session of peer.
func (r *Registry) Get(peer p2p.Peer) (types.SessionID, bool) {
	id, exists := r.current[peer]
	return id, exists
}

// Remove forgets peer and returns the session it owned.
func (r *Registry) Remove(peer p2p.Peer) (types.SessionID, bool) {
	id, exists := r.current[peer]
	if !exists {
		return types.EmptySessionID, false
	}
	delete(r.current, peer)
	return id, true
}

// Owner returns the peer that currently owns id.
func (r *Registry) Owner(id types.SessionID) (p2p.Peer, bool) {
	for peer, current := range r.current {
		if current == id {
			return peer, true
		}
	}
	return "", false
}

// Len returns the number of peers with a known session.
func (r *Registry) Len() int {
	return len(r.current)
}
