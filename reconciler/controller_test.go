package reconciler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/sun-23/go-multiuser/common/types"
	"github.com/sun-23/go-multiuser/p2p"
	"github.com/sun-23/go-multiuser/wire"
)

const (
	peerA p2p.Peer = "A"
	peerB p2p.Peer = "B"
)

type testController struct {
	*Controller
	transport *MockTransport
	engine    *MockEngine
	scene     *MockScene
	clock     clockwork.FakeClock

	mu    sync.Mutex
	peers []p2p.Peer
}

func newTestController(t *testing.T, opts ...Opt) *testController {
	t.Helper()
	ctrl := gomock.NewController(t)
	tc := &testController{
		transport: NewMockTransport(ctrl),
		engine:    NewMockEngine(ctrl),
		scene:     NewMockScene(ctrl),
		clock:     clockwork.NewFakeClock(),
	}
	tc.transport.EXPECT().ConnectedPeers().DoAndReturn(func() []p2p.Peer {
		tc.mu.Lock()
		defer tc.mu.Unlock()
		return slices.Clone(tc.peers)
	}).AnyTimes()
	c, err := New(tc.transport, tc.engine, tc.scene,
		append([]Opt{WithLogger(zaptest.NewLogger(t)), WithClock(tc.clock)}, opts...)...)
	require.NoError(t, err)
	tc.Controller = c

	ctx, cancel := context.WithCancel(context.Background())
	var eg errgroup.Group
	eg.Go(func() error {
		return c.Run(ctx)
	})
	t.Cleanup(func() {
		cancel()
		require.NoError(t, eg.Wait())
	})
	return tc
}

func (tc *testController) setPeers(peers ...p2p.Peer) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.peers = peers
}

// settle waits until events and the events they caused are processed.
func (tc *testController) settle(t *testing.T) Status {
	t.Helper()
	var (
		st  Status
		err error
	)
	for i := 0; i < 3; i++ {
		st, err = tc.Snapshot(context.Background())
		require.NoError(t, err)
	}
	return st
}

func remoteAnchor(b byte, session types.SessionID) *types.Anchor {
	return &types.Anchor{ID: types.AnchorID{b}, Name: "box", Kind: types.ContentAnchor, SessionID: session}
}

func TestNewInvalidConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	for _, cfg := range []Config{
		{MaxPeers: 0, JoinTimeout: time.Second},
		{MaxPeers: 5},
	} {
		_, err := New(NewMockTransport(ctrl), NewMockEngine(ctrl), NewMockScene(ctrl), WithConfig(cfg))
		require.Error(t, err)
	}
}

func TestAdmissionCap(t *testing.T) {
	for _, tc := range []struct {
		desc      string
		connected []p2p.Peer
		joining   []p2p.Peer
		expected  bool
	}{
		{
			desc:     "no peers",
			expected: true,
		},
		{
			desc:      "below limit",
			connected: []p2p.Peer{"1", "2", "3", "4"},
			expected:  true,
		},
		{
			desc:      "at limit",
			connected: []p2p.Peer{"1", "2", "3", "4", "5"},
			expected:  false,
		},
		{
			desc:      "admitted peers do not hold slots",
			connected: []p2p.Peer{"1", "2", "3", "4"},
			joining:   []p2p.Peer{"stale"},
			expected:  true,
		},
		{
			desc:      "admitted peers over limit",
			connected: []p2p.Peer{"1", "2", "3"},
			joining:   []p2p.Peer{"4", "5", "6"},
			expected:  true,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			c := newTestController(t)
			for _, pid := range tc.joining {
				require.True(t, c.Admit(pid))
			}
			c.setPeers(tc.connected...)
			require.Equal(t, tc.expected, c.Admit("joiner"))

			st := c.settle(t)
			idx := slices.IndexFunc(st.Peers, func(ps PeerStatus) bool { return ps.Peer == "joiner" })
			if tc.expected {
				require.GreaterOrEqual(t, idx, 0)
				require.Equal(t, types.Joining, st.Peers[idx].State)
			} else {
				require.Equal(t, -1, idx)
			}
		})
	}
}

func TestLocalSessionAnnounced(t *testing.T) {
	c := newTestController(t)
	// no peers, nothing to send
	c.LocalSessionChanged("local-1")
	st := c.settle(t)
	require.Equal(t, types.SessionID("local-1"), st.SessionID)

	c.setPeers(peerA, peerB)
	c.transport.EXPECT().SendToAll([]byte("SessionID:local-2"), true)
	c.SessionChanged("local-2")
	c.settle(t)
}

func TestPeerJoinedSendsIdentity(t *testing.T) {
	c := newTestController(t)
	c.LocalSessionChanged("local-1")
	c.setPeers(peerA)
	c.transport.EXPECT().SendToPeers([]byte("SessionID:local-1"), true, peerA)
	c.PeerJoined(peerA)

	st := c.settle(t)
	require.Equal(t, []PeerStatus{{Peer: peerA, State: types.Syncing}}, st.Peers)
}

func TestPeerJoinedWithoutSession(t *testing.T) {
	c := newTestController(t)
	c.setPeers(peerA)
	c.PeerJoined(peerA)
	st := c.settle(t)
	require.Equal(t, []PeerStatus{{Peer: peerA, State: types.Syncing}}, st.Peers)
}

func TestIdentityBeforeJoin(t *testing.T) {
	c := newTestController(t)
	c.setPeers(peerA)
	c.DataReceived([]byte("SessionID:s-A1"), peerA)
	c.PeerJoined(peerA)
	st := c.settle(t)
	require.Equal(t, []PeerStatus{{Peer: peerA, State: types.Active, SessionID: "s-A1"}}, st.Peers)
}

func TestCollaborationData(t *testing.T) {
	t.Run("no peers", func(t *testing.T) {
		c := newTestController(t)
		before := testutil.ToFloat64(droppedBlobs.WithLabelValues(reasonNoPeers))
		c.CollaborationData(types.CollaborationBlob{Priority: types.Critical, Data: []byte{1}})
		c.settle(t)
		require.Equal(t, before+1, testutil.ToFloat64(droppedBlobs.WithLabelValues(reasonNoPeers)))
	})
	t.Run("priority selects delivery", func(t *testing.T) {
		c := newTestController(t)
		c.setPeers(peerA)
		for _, blob := range []types.CollaborationBlob{
			{Priority: types.Critical, Data: []byte("anchors")},
			{Priority: types.Optional, Data: []byte("pose")},
		} {
			encoded, err := wire.EncodeBlob(&blob)
			require.NoError(t, err)
			c.transport.EXPECT().SendToAll(encoded, blob.Priority == types.Critical)
			c.CollaborationData(blob)
			c.settle(t)
		}
	})
	t.Run("encode failure", func(t *testing.T) {
		c := newTestController(t)
		c.setPeers(peerA)
		before := testutil.ToFloat64(droppedBlobs.WithLabelValues(reasonEncode))
		c.CollaborationData(types.CollaborationBlob{Priority: types.Priority(7), Data: []byte{1}})
		c.settle(t)
		require.Equal(t, before+1, testutil.ToFloat64(droppedBlobs.WithLabelValues(reasonEncode)))
	})
}

func TestDataReceived(t *testing.T) {
	c := newTestController(t)
	c.setPeers(peerA)

	blob := types.CollaborationBlob{Priority: types.Optional, Data: []byte("SessionID:not-an-identity")}
	encoded, err := wire.EncodeBlob(&blob)
	require.NoError(t, err)
	c.engine.EXPECT().ApplyCollaborationBlob(blob.Data)
	c.DataReceived(encoded, peerA)

	// unrecognized payloads are dropped without side effects
	c.DataReceived([]byte("sessionid:lowercase"), peerA)
	c.DataReceived([]byte("SessionID:"), peerA)
	c.DataReceived(nil, peerA)

	st := c.settle(t)
	require.Empty(t, st.Peers)
}

func TestApplyFailureIsDropped(t *testing.T) {
	c := newTestController(t)
	c.setPeers(peerA)
	encoded, err := wire.EncodeBlob(&types.CollaborationBlob{Priority: types.Critical, Data: []byte{1}})
	require.NoError(t, err)
	c.engine.EXPECT().ApplyCollaborationBlob([]byte{1}).Return(errors.New("corrupted"))
	c.DataReceived(encoded, peerA)
	c.settle(t)
}

func TestIdentityChangePurgesAnchors(t *testing.T) {
	c := newTestController(t)
	c.setPeers(peerA)
	c.DataReceived([]byte("SessionID:s-A1"), peerA)
	c.AnchorsAdded([]*types.Anchor{remoteAnchor(1, "s-A1"), remoteAnchor(2, "s-A1")})
	st := c.settle(t)
	require.Equal(t, 2, st.Anchors)

	removed := map[types.AnchorID]int{}
	c.engine.EXPECT().RemoveAnchor(gomock.Any()).Do(func(id types.AnchorID) { removed[id]++ }).Times(2)
	c.DataReceived([]byte("SessionID:s-A2"), peerA)
	st = c.settle(t)
	require.Equal(t, map[types.AnchorID]int{{1}: 1, {2}: 1}, removed)
	require.Zero(t, st.Anchors)
	require.Equal(t, []PeerStatus{{Peer: peerA, State: types.Active, SessionID: "s-A2"}}, st.Peers)

	// repeated announcement purges nothing
	c.DataReceived([]byte("SessionID:s-A2"), peerA)
	c.settle(t)

	// late anchor of the superseded session is removed on arrival
	c.engine.EXPECT().RemoveAnchor(types.AnchorID{3})
	c.AnchorsAdded([]*types.Anchor{remoteAnchor(3, "s-A1")})
	st = c.settle(t)
	require.Zero(t, st.Anchors)
}

func TestDeparturePurgesAnchors(t *testing.T) {
	c := newTestController(t)
	c.setPeers(peerA, peerB)
	c.DataReceived([]byte("SessionID:s-A1"), peerA)
	c.DataReceived([]byte("SessionID:s-B1"), peerB)
	c.AnchorsAdded([]*types.Anchor{remoteAnchor(1, "s-A1"), remoteAnchor(2, "s-B1")})
	st := c.settle(t)
	require.Equal(t, 2, st.Anchors)

	c.setPeers(peerB)
	c.engine.EXPECT().RemoveAnchor(types.AnchorID{1})
	c.PeerLeft(peerA)
	st = c.settle(t)
	require.Equal(t, 1, st.Anchors)
	require.Equal(t, []PeerStatus{{Peer: peerB, State: types.Active, SessionID: "s-B1"}}, st.Peers)

	// peer without announced session
	c.PeerLeft("unknown")
	c.settle(t)
}

func TestIdentityFromDisconnectedPeer(t *testing.T) {
	c := newTestController(t)
	c.DataReceived([]byte("SessionID:s-A1"), peerA)
	st := c.settle(t)
	require.Empty(t, st.Peers)
}

func TestAnchorsRouting(t *testing.T) {
	c := newTestController(t)
	c.setPeers(peerA)
	c.DataReceived([]byte("SessionID:s-A1"), peerA)

	participant := &types.Anchor{ID: types.AnchorID{1}, Kind: types.ParticipantAnchor, SessionID: "s-A1"}
	laser := &types.Anchor{ID: types.AnchorID{2}, Name: "LaserRed", SessionID: "s-A1"}
	local := &types.Anchor{ID: types.AnchorID{3}, Name: "LaserRed"}
	box := &types.Anchor{ID: types.AnchorID{4}, Name: "box"}

	var transient []*types.Anchor
	c.scene.EXPECT().PlaceParticipant(participant).Return(true)
	c.scene.EXPECT().PlaceTransient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, anchor *types.Anchor) bool {
			transient = append(transient, anchor)
			return true
		}).Times(2)
	c.AnchorsAdded([]*types.Anchor{participant, laser, local, box})
	st := c.settle(t)
	require.Equal(t, 2, st.Anchors)
	require.Len(t, transient, 2)
	for _, anchor := range transient {
		require.True(t, anchor.Transient)
		require.Equal(t, "LaserRed", anchor.Name)
	}
	require.False(t, laser.Transient)

	c.scene.EXPECT().Detach(types.AnchorID{1})
	c.scene.EXPECT().Detach(types.AnchorID{3})
	c.AnchorsRemoved([]types.AnchorID{{1}, {3}})
	st = c.settle(t)
	require.Equal(t, 1, st.Anchors)
}

func TestPlace(t *testing.T) {
	c := newTestController(t)
	transform := types.Translation(0, 0, -0.2)
	c.engine.EXPECT().AddAnchor(transform, "LaserRed").Return(types.AnchorID{9})
	require.Equal(t, types.AnchorID{9}, c.Place(transform, "LaserRed"))
}

func TestJoiningExpires(t *testing.T) {
	c := newTestController(t, WithConfig(Config{MaxPeers: 1, JoinTimeout: time.Second}))
	require.True(t, c.Admit(peerA))
	st := c.settle(t)
	require.Equal(t, []PeerStatus{{Peer: peerA, State: types.Joining}}, st.Peers)
	require.Eventually(t, func() bool {
		c.clock.Advance(time.Second)
		st, err := c.Snapshot(context.Background())
		return err == nil && len(st.Peers) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestOrphanedSessionPurged(t *testing.T) {
	c := newTestController(t, WithConfig(Config{MaxPeers: 5, JoinTimeout: time.Second}))
	c.setPeers(peerA, peerB)
	c.PeerJoined(peerA)
	c.PeerJoined(peerB)

	// A shares state but its announcement never arrives
	c.AnchorsAdded([]*types.Anchor{remoteAnchor(1, "s-A1"), remoteAnchor(2, "s-A1")})
	// B announces after its state arrived
	c.AnchorsAdded([]*types.Anchor{remoteAnchor(3, "s-B1")})
	c.DataReceived([]byte("SessionID:s-B1"), peerB)

	c.setPeers(peerB)
	c.PeerLeft(peerA)
	st := c.settle(t)
	require.Equal(t, 3, st.Anchors)

	before := testutil.ToFloat64(purgedAnchors.WithLabelValues(causeOrphaned))
	c.engine.EXPECT().RemoveAnchor(types.AnchorID{1})
	c.engine.EXPECT().RemoveAnchor(types.AnchorID{2})
	require.Eventually(t, func() bool {
		c.clock.Advance(time.Second)
		st, err := c.Snapshot(context.Background())
		return err == nil && st.Anchors == 1
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, before+2, testutil.ToFloat64(purgedAnchors.WithLabelValues(causeOrphaned)))

	// late anchor of the purged session is removed on arrival
	c.engine.EXPECT().RemoveAnchor(types.AnchorID{4})
	c.AnchorsAdded([]*types.Anchor{remoteAnchor(4, "s-A1")})
	st = c.settle(t)
	require.Equal(t, 1, st.Anchors)
}

func TestStopped(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, err := New(NewMockTransport(ctrl), NewMockEngine(ctrl), NewMockScene(ctrl))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, c.Run(ctx))

	require.False(t, c.Admit(peerA))
	_, err = c.Snapshot(context.Background())
	require.ErrorIs(t, err, ErrStopped)
}
