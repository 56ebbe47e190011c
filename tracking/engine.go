// Package tracking declares the contract of the local tracking engine.
package tracking

import "github.com/sun-23/go-multiuser/common/types"

// Listener receives engine notifications. Notifications are delivered synchronously
// from the goroutine that caused them, implementations must not block.
type Listener interface {
	// SessionChanged is emitted when the engine starts a new session.
	SessionChanged(types.SessionID)
	// CollaborationData is emitted when the engine produced state to share with peers.
	CollaborationData(types.CollaborationBlob)
	// AnchorsAdded is emitted for anchors created locally or materialized from remote state.
	AnchorsAdded([]*types.Anchor)
	// AnchorsRemoved is emitted for anchors the engine dropped.
	AnchorsRemoved([]types.AnchorID)
}

// Engine is the local tracking engine.
type Engine interface {
	SessionID() types.SessionID
	// ApplyCollaborationBlob merges opaque state produced by a remote engine.
	ApplyCollaborationBlob([]byte) error
	RemoveAnchor(types.AnchorID)
	AddAnchor(transform types.Transform, name string) types.AnchorID
	Subscribe(Listener)
}
