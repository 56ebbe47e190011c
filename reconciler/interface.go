package reconciler

import (
	"context"

	"github.com/sun-23/go-multiuser/common/types"
	"github.com/sun-23/go-multiuser/p2p"
)

//go:generate mockgen -typed -package=reconciler -destination=./mocks.go -source=./interface.go

// Transport delivers payloads to connected peers. Sends are fire-and-forget.
type Transport interface {
	ConnectedPeers() []p2p.Peer
	SendToPeers(data []byte, reliable bool, peers ...p2p.Peer)
	SendToAll(data []byte, reliable bool)
}

// Engine is the part of the tracking engine driven by the controller.
type Engine interface {
	ApplyCollaborationBlob([]byte) error
	RemoveAnchor(types.AnchorID)
	AddAnchor(types.Transform, string) types.AnchorID
}

// Scene places entities for anchors.
type Scene interface {
	PlaceParticipant(*types.Anchor) bool
	PlaceTransient(context.Context, *types.Anchor) bool
	Detach(types.AnchorID)
}
