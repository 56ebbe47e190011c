package p2p

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	mocknet "github.com/libp2p/go-libp2p/p2p/net/mock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sun-23/go-multiuser/log/logtest"
)

type received struct {
	data []byte
	from Peer
}

type recorder struct {
	joined chan Peer
	left   chan Peer
	data   chan received
}

func newRecorder() *recorder {
	return &recorder{
		joined: make(chan Peer, 16),
		left:   make(chan Peer, 16),
		data:   make(chan received, 256),
	}
}

func (r *recorder) Admit(Peer) bool { return true }

func (r *recorder) PeerJoined(pid Peer) { r.joined <- pid }

func (r *recorder) PeerLeft(pid Peer) { r.left <- pid }

func (r *recorder) DataReceived(data []byte, from Peer) {
	r.data <- received{data: data, from: from}
}

func waitPeer(t *testing.T, ch <-chan Peer, expected Peer) {
	t.Helper()
	select {
	case pid := <-ch:
		require.Equal(t, expected, pid)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for peer event", expected.String())
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxMessageSize = 1 << 10
	cfg.OutboundQueue = 16
	cfg.DialTimeout = 5 * time.Second
	return cfg
}

func startPair(t *testing.T) (mocknet.Mocknet, []*Host, []*recorder) {
	t.Helper()
	mesh, err := mocknet.FullMeshLinked(2)
	require.NoError(t, err)
	var (
		hosts     []*Host
		recorders []*recorder
	)
	for _, h := range mesh.Hosts() {
		fh, err := Upgrade(h, WithConfig(testConfig()), WithLogger(logtest.New(t)))
		require.NoError(t, err)
		rec := newRecorder()
		require.NoError(t, fh.Start(context.Background(), rec))
		t.Cleanup(func() { fh.Stop() })
		hosts = append(hosts, fh)
		recorders = append(recorders, rec)
	}
	require.NoError(t, mesh.ConnectAllButSelf())
	waitPeer(t, recorders[0].joined, hosts[1].ID())
	waitPeer(t, recorders[1].joined, hosts[0].ID())
	return mesh, hosts, recorders
}

func TestUpgradeRequiresServiceName(t *testing.T) {
	mesh, err := mocknet.FullMeshLinked(1)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.ServiceName = ""
	_, err = Upgrade(mesh.Hosts()[0], WithConfig(cfg))
	require.Error(t, err)
}

func TestStartReportsConnectedPeers(t *testing.T) {
	mesh, err := mocknet.FullMeshConnected(2)
	require.NoError(t, err)
	local, remote := mesh.Hosts()[0], mesh.Hosts()[1]

	ctrl := gomock.NewController(t)
	handler := NewMockHandler(ctrl)
	joined := make(chan struct{})
	handler.EXPECT().PeerJoined(remote.ID()).Do(func(Peer) { close(joined) })

	fh, err := Upgrade(local, WithConfig(testConfig()), WithLogger(logtest.New(t)))
	require.NoError(t, err)
	require.NoError(t, fh.Start(context.Background(), handler))
	t.Cleanup(func() { fh.Stop() })
	<-joined
	require.Equal(t, []Peer{remote.ID()}, fh.ConnectedPeers())
}

func TestReliableOrdered(t *testing.T) {
	_, hosts, recorders := startPair(t)
	const n = 50
	for i := 0; i < n; i++ {
		hosts[0].SendToPeers([]byte(fmt.Sprintf("msg-%d", i)), true, hosts[1].ID())
	}
	for i := 0; i < n; i++ {
		select {
		case msg := <-recorders[1].data:
			require.Equal(t, fmt.Sprintf("msg-%d", i), string(msg.data))
			require.Equal(t, hosts[0].ID(), msg.from)
		case <-time.After(5 * time.Second):
			require.FailNow(t, "timed out waiting for message", i)
		}
	}
}

func TestSendToAllReliable(t *testing.T) {
	_, hosts, recorders := startPair(t)
	hosts[1].SendToAll([]byte("SessionID:b"), true)
	select {
	case msg := <-recorders[0].data:
		require.Equal(t, []byte("SessionID:b"), msg.data)
		require.Equal(t, hosts[1].ID(), msg.from)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out")
	}
}

func TestMessageTooLarge(t *testing.T) {
	_, hosts, recorders := startPair(t)
	before := testutil.ToFloat64(droppedMessages.WithLabelValues(reasonTooLarge))
	hosts[0].SendToPeers(bytes.Repeat([]byte{1}, 2<<10), true, hosts[1].ID())
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(droppedMessages.WithLabelValues(reasonTooLarge)) > before
	}, 5*time.Second, 10*time.Millisecond)
	require.Empty(t, recorders[1].data)
}

func TestBestEffortBroadcast(t *testing.T) {
	_, hosts, recorders := startPair(t)
	i := 0
	require.Eventually(t, func() bool {
		// publish fresh payload, identical payloads are deduplicated
		i++
		hosts[0].SendToAll([]byte(fmt.Sprintf("optional-%d", i)), false)
		select {
		case msg := <-recorders[1].data:
			return bytes.HasPrefix(msg.data, []byte("optional-")) && msg.from == hosts[0].ID()
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 10*time.Millisecond)
}

func TestPeerLeft(t *testing.T) {
	mesh, hosts, recorders := startPair(t)
	require.NoError(t, mesh.DisconnectPeers(hosts[0].ID(), hosts[1].ID()))
	require.NoError(t, mesh.UnlinkPeers(hosts[0].ID(), hosts[1].ID()))
	waitPeer(t, recorders[0].left, hosts[1].ID())
	waitPeer(t, recorders[1].left, hosts[0].ID())
	require.Empty(t, hosts[0].ConnectedPeers())

	// unknown peers are skipped
	hosts[0].SendToPeers([]byte("late"), true, hosts[1].ID())
}

func TestDataBeforeConnectednessEvent(t *testing.T) {
	mesh, err := mocknet.FullMeshConnected(2)
	require.NoError(t, err)
	local, remote := mesh.Hosts()[0], mesh.Hosts()[1]

	ctrl := gomock.NewController(t)
	handler := NewMockHandler(ctrl)
	fh, err := Upgrade(local, WithConfig(testConfig()), WithLogger(logtest.New(t)))
	require.NoError(t, err)
	// handler is installed without Start, connectedness events are never processed
	fh.handler = handler
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		fh.eg.Wait()
	})

	gomock.InOrder(
		handler.EXPECT().PeerJoined(remote.ID()),
		handler.EXPECT().DataReceived([]byte("SessionID:s-B1"), remote.ID()),
		handler.EXPECT().DataReceived([]byte("next"), remote.ID()),
	)
	fh.deliver(ctx, []byte("SessionID:s-B1"), remote.ID())
	require.Equal(t, []Peer{remote.ID()}, fh.ConnectedPeers())
	fh.deliver(ctx, []byte("next"), remote.ID())

	handler.EXPECT().DataReceived([]byte("stray"), Peer("unknown"))
	fh.deliver(ctx, []byte("stray"), Peer("unknown"))
	require.Equal(t, []Peer{remote.ID()}, fh.ConnectedPeers())
}

func TestRedialStaticPeers(t *testing.T) {
	mesh, err := mocknet.FullMeshLinked(2)
	require.NoError(t, err)
	local, remote := mesh.Hosts()[0], mesh.Hosts()[1]

	cfg := testConfig()
	cfg.DialInterval = time.Minute
	cfg.Peers = []string{fmt.Sprintf("%s/p2p/%s", remote.Addrs()[0], remote.ID())}
	clock := clockwork.NewFakeClock()
	fh, err := Upgrade(local, WithConfig(cfg), WithLogger(logtest.New(t)), WithClock(clock))
	require.NoError(t, err)
	rec := newRecorder()
	require.NoError(t, fh.Start(context.Background(), rec))
	t.Cleanup(func() { fh.Stop() })
	waitPeer(t, rec.joined, remote.ID())

	require.NoError(t, mesh.DisconnectPeers(local.ID(), remote.ID()))
	waitPeer(t, rec.left, remote.ID())

	clock.Advance(cfg.DialInterval)
	waitPeer(t, rec.joined, remote.ID())
}
