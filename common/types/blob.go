package types

// Priority of the collaboration data, as assigned by the tracking engine.
type Priority uint8

const (
	// Optional data may be lost without affecting the shared map.
	Optional Priority = iota
	// Critical data must be delivered for the shared map to converge.
	Critical
)

func (p Priority) String() string {
	switch p {
	case Optional:
		return "optional"
	case Critical:
		return "critical"
	}
	return "unknown"
}

// Valid returns true if p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == Optional || p == Critical
}

// CollaborationBlob is an opaque update of the tracking state exchanged between peers.
// Data is produced and consumed by the tracking engine and never inspected here.
type CollaborationBlob struct {
	Priority Priority
	Data     []byte
}

// Reliable returns true if the blob must be sent with reliable delivery.
func (b *CollaborationBlob) Reliable() bool {
	return b.Priority == Critical
}
