package types

import (
	"bytes"
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestAnchorID(t *testing.T) {
	id := AnchorID{0xab, 0xcd, 0x01}
	require.Equal(t, "abcd0100000000000000000000000000", id.String())
	require.Equal(t, "abcd0100", id.ShortString())

	var buf bytes.Buffer
	_, err := id.EncodeScale(scale.NewEncoder(&buf))
	require.NoError(t, err)
	require.Equal(t, id[:], buf.Bytes())

	var decoded AnchorID
	_, err = decoded.DecodeScale(scale.NewDecoder(&buf))
	require.NoError(t, err)
	require.Equal(t, id, decoded)
}

func TestTranslation(t *testing.T) {
	tr := Translation(1, 2, 3)
	require.Equal(t, []float32{1, 2, 3, 1}, tr[12:])
	require.Equal(t, Identity[:12], tr[:12])
}

func TestAnchorLog(t *testing.T) {
	anchor := &Anchor{Name: "LaserRed", Kind: ParticipantAnchor, SessionID: "s-A1", Transient: true}
	require.True(t, anchor.Remote())
	require.False(t, (&Anchor{}).Remote())

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, anchor.MarshalLogObject(enc))
	require.Equal(t, "participant", enc.Fields["kind"])
	require.Equal(t, "s-A1", enc.Fields["session_id"])
	require.Equal(t, true, enc.Fields["transient"])
}

func TestSessionID(t *testing.T) {
	require.True(t, EmptySessionID.Empty())
	id := SessionID("0f8fad5b-d9cb-469f-a165-70867728950e")
	require.False(t, id.Empty())
	require.Equal(t, "0f8fad5b", id.ShortString())
	require.Equal(t, "s-A1", SessionID("s-A1").ShortString())
}

func TestStrings(t *testing.T) {
	for _, tc := range []struct {
		value    interface{ String() string }
		expected string
	}{
		{Discovered, "discovered"},
		{Joining, "joining"},
		{Syncing, "syncing"},
		{Active, "active"},
		{Left, "left"},
		{PeerState(9), "unknown"},
		{Optional, "optional"},
		{Critical, "critical"},
		{Priority(7), "unknown"},
		{ContentAnchor, "content"},
		{ParticipantAnchor, "participant"},
	} {
		require.Equal(t, tc.expected, tc.value.String())
	}
}

func TestPriority(t *testing.T) {
	require.True(t, Optional.Valid())
	require.True(t, Critical.Valid())
	require.False(t, Priority(2).Valid())

	require.True(t, (&CollaborationBlob{Priority: Critical}).Reliable())
	require.False(t, (&CollaborationBlob{Priority: Optional}).Reliable())
}
