package anchors

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/sun-23/go-multiuser/common/types"
)

func anchor(id byte, session types.SessionID) *types.Anchor {
	return &types.Anchor{ID: types.AnchorID{id}, Name: "LaserRed", SessionID: session}
}

func newTestTracker(tb testing.TB) (*Tracker, *MockRemover) {
	remover := NewMockRemover(gomock.NewController(tb))
	tracker, err := New(remover, WithLogger(zaptest.NewLogger(tb)), WithRetiredSize(16))
	require.NoError(tb, err)
	return tracker, remover
}

func TestPurgeBySessionID(t *testing.T) {
	tracker, remover := newTestTracker(t)
	require.True(t, tracker.Track(anchor(1, "s-A1")))
	require.True(t, tracker.Track(anchor(2, "s-A1")))
	require.True(t, tracker.Track(anchor(3, "s-A2")))
	require.True(t, tracker.Track(anchor(4, "s-B1")))
	require.True(t, tracker.Track(anchor(5, types.EmptySessionID)), "local anchors are accepted")
	require.Equal(t, 4, tracker.Len())
	require.ElementsMatch(t, []types.SessionID{"s-A1", "s-A2", "s-B1"}, tracker.Sessions())

	removed := map[types.AnchorID]struct{}{}
	remover.EXPECT().RemoveAnchor(gomock.Any()).Do(func(id types.AnchorID) {
		removed[id] = struct{}{}
	}).Times(2)
	require.Equal(t, 2, tracker.PurgeBySessionID("s-A1"))
	require.Equal(t, map[types.AnchorID]struct{}{{1}: {}, {2}: {}}, removed)

	// second purge is a noop, remover expects no more calls
	require.Equal(t, 0, tracker.PurgeBySessionID("s-A1"))
	require.Equal(t, 0, tracker.PurgeBySessionID("unknown"))
	require.Equal(t, 0, tracker.PurgeBySessionID(types.EmptySessionID))

	require.Equal(t, 2, tracker.Len())
	require.ElementsMatch(t, []types.SessionID{"s-A2", "s-B1"}, tracker.Sessions())
	require.Equal(t, 1, tracker.Count("s-A2"))
	session, exists := tracker.SessionOf(types.AnchorID{4})
	require.True(t, exists)
	require.Equal(t, types.SessionID("s-B1"), session)
}

func TestRetiredSession(t *testing.T) {
	tracker, remover := newTestTracker(t)
	require.Equal(t, 0, tracker.PurgeBySessionID("s-A1"))

	remover.EXPECT().RemoveAnchor(types.AnchorID{1})
	require.False(t, tracker.Track(anchor(1, "s-A1")), "late anchor of a retired session")
	require.Zero(t, tracker.Len())

	tracker.Revive("s-A1")
	require.True(t, tracker.Track(anchor(2, "s-A1")))
	require.Equal(t, 1, tracker.Count("s-A1"))
}

func TestUntrack(t *testing.T) {
	tracker, _ := newTestTracker(t)
	require.True(t, tracker.Track(anchor(1, "s-A1")))
	tracker.Untrack(types.AnchorID{1})
	tracker.Untrack(types.AnchorID{9})
	require.Zero(t, tracker.Len())
	require.Empty(t, tracker.Sessions())
	require.Zero(t, tracker.PurgeBySessionID("s-A1"))
}

func TestRetag(t *testing.T) {
	tracker, remover := newTestTracker(t)
	require.True(t, tracker.Track(anchor(1, "s-A1")))
	require.True(t, tracker.Track(anchor(1, "s-B1")))
	require.Zero(t, tracker.Count("s-A1"))

	remover.EXPECT().RemoveAnchor(types.AnchorID{1})
	require.Equal(t, 1, tracker.PurgeBySessionID("s-B1"))
}
