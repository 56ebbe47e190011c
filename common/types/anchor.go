package types

import (
	"encoding/hex"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

// AnchorID uniquely identifies an anchor within the shared world.
type AnchorID [16]byte

// String returns a hex representation of the id.
func (id AnchorID) String() string {
	return hex.EncodeToString(id[:])
}

// ShortString returns the first 8 characters of the id, for logging purposes.
func (id AnchorID) ShortString() string {
	return Shorten(id.String(), 8)
}

// EncodeScale implements scale codec interface.
func (id *AnchorID) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, id[:])
}

// DecodeScale implements scale codec interface.
func (id *AnchorID) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, id[:])
}

// AnchorKind distinguishes participant anchors from ordinary content anchors.
type AnchorKind uint8

const (
	// ContentAnchor is placed by a user, e.g. by tapping the screen.
	ContentAnchor AnchorKind = iota
	// ParticipantAnchor tracks the position of a remote participant.
	ParticipantAnchor
)

func (k AnchorKind) String() string {
	switch k {
	case ContentAnchor:
		return "content"
	case ParticipantAnchor:
		return "participant"
	}
	return "unknown"
}

// Transform is a column-major 4x4 affine transform.
type Transform [16]float32

// Identity is the identity transform.
var Identity = Transform{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Translation returns a transform that moves by x, y, z.
func Translation(x, y, z float32) Transform {
	t := Identity
	t[12], t[13], t[14] = x, y, z
	return t
}

// Anchor is a spatial reference point materialized by the local tracking engine.
type Anchor struct {
	ID        AnchorID
	Name      string
	Kind      AnchorKind
	Transform Transform
	// SessionID of the engine that created the anchor. Empty for anchors
	// created by the local engine.
	SessionID SessionID
	// Transient anchors belong to the local participant only and expire by themselves.
	Transient bool
}

// Remote returns true if the anchor originates from another session.
func (a *Anchor) Remote() bool {
	return !a.SessionID.Empty()
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (a *Anchor) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", a.ID.ShortString())
	encoder.AddString("name", a.Name)
	encoder.AddString("kind", a.Kind.String())
	encoder.AddString("session_id", a.SessionID.String())
	encoder.AddBool("transient", a.Transient)
	return nil
}
