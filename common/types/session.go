package types

import "go.uber.org/zap/zapcore"

// SessionID identifies a single session of a tracking engine instance.
// A peer owns exactly one current SessionID, but it changes whenever the
// peer's engine restarts its session.
type SessionID string

// EmptySessionID is used for anchors created by the local engine.
const EmptySessionID SessionID = ""

// String implements fmt.Stringer.
func (id SessionID) String() string {
	return string(id)
}

// ShortString returns the first 8 characters of the id, for logging purposes.
func (id SessionID) ShortString() string {
	return Shorten(string(id), 8)
}

// Empty returns true if id is not set.
func (id SessionID) Empty() bool {
	return len(id) == 0
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (id SessionID) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("session_id", string(id))
	return nil
}

// Shorten shortens a string to a specified length.
func Shorten(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// PeerState is a stage of the reconciliation protocol for a single peer connection.
type PeerState uint8

const (
	// Discovered peers asked to join but were not admitted yet.
	Discovered PeerState = iota
	// Joining peers were admitted and wait for the transport to complete the connection.
	Joining
	// Syncing peers are connected and received our session identity.
	Syncing
	// Active peers announced their own session identity.
	Active
	// Left peers disconnected. No state is kept for them.
	Left
)

func (s PeerState) String() string {
	switch s {
	case Discovered:
		return "discovered"
	case Joining:
		return "joining"
	case Syncing:
		return "syncing"
	case Active:
		return "active"
	case Left:
		return "left"
	}
	return "unknown"
}
