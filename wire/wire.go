// Package wire defines the payloads exchanged between peers of a session.
//
// Two kinds of payloads share a single channel: text identity announcements and
// binary collaboration blobs. A payload is classified by a single ordered decode
// attempt: blob first, then identity, anything else is unrecognized.
package wire

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spacemeshos/go-scale"

	"github.com/sun-23/go-multiuser/codec"
	"github.com/sun-23/go-multiuser/common/types"
)

const (
	// IdentityPrefix starts every identity announcement.
	IdentityPrefix = "SessionID:"
	// MaxSessionIDSize is the longest session id accepted in an announcement.
	MaxSessionIDSize = 256
	// MaxBlobSize is the largest collaboration data accepted in a blob.
	MaxBlobSize = 8 << 20

	blobVersion = 1
)

// blobMagic starts every encoded blob. 0xC5 followed by 'C' is never valid UTF-8,
// so a blob can't be mistaken for an identity announcement.
var blobMagic = [4]byte{0xC5, 'C', 'O', 'L'}

var (
	// ErrNotBlob is returned when the payload doesn't start with the blob header.
	ErrNotBlob = errors.New("not a collaboration blob")
	// ErrUnknownVersion is returned for blobs with an unsupported envelope version.
	ErrUnknownVersion = errors.New("unknown blob version")
	// ErrUnknownPriority is returned for blobs with an invalid priority.
	ErrUnknownPriority = errors.New("unknown blob priority")
	// ErrNotIdentity is returned when the payload is not an identity announcement.
	ErrNotIdentity = errors.New("not an identity announcement")
	// ErrMalformedIdentity is returned when the announced session id is unusable.
	ErrMalformedIdentity = errors.New("malformed session id")
)

// Kind of the decoded payload.
type Kind uint8

const (
	// Unrecognized payloads are dropped by the receiver.
	Unrecognized Kind = iota
	// Blob payloads carry collaboration data.
	Blob
	// Identity payloads announce the sender's current session id.
	Identity
)

func (k Kind) String() string {
	switch k {
	case Blob:
		return "blob"
	case Identity:
		return "identity"
	}
	return "unrecognized"
}

// Message is a decoded payload. Only the field matching Kind is set.
type Message struct {
	Kind      Kind
	Blob      types.CollaborationBlob
	SessionID types.SessionID
}

// Decode classifies payload. It never fails: payloads that are neither a blob
// nor an identity announcement are returned as Unrecognized.
func Decode(payload []byte) Message {
	if blob, err := DecodeBlob(payload); err == nil {
		return Message{Kind: Blob, Blob: blob}
	}
	if id, err := DecodeIdentity(payload); err == nil {
		return Message{Kind: Identity, SessionID: id}
	}
	return Message{Kind: Unrecognized}
}

// EncodeIdentity returns the announcement for the session id.
func EncodeIdentity(id types.SessionID) []byte {
	return []byte(IdentityPrefix + string(id))
}

// DecodeIdentity extracts the session id from an announcement.
func DecodeIdentity(payload []byte) (types.SessionID, error) {
	if !utf8.Valid(payload) {
		return "", ErrNotIdentity
	}
	text := string(payload)
	if !strings.HasPrefix(text, IdentityPrefix) {
		return "", ErrNotIdentity
	}
	id := text[len(IdentityPrefix):]
	switch {
	case len(id) == 0:
		return "", fmt.Errorf("%w: empty", ErrMalformedIdentity)
	case len(id) > MaxSessionIDSize:
		return "", fmt.Errorf("%w: %d bytes", ErrMalformedIdentity, len(id))
	}
	return types.SessionID(id), nil
}

type envelope struct {
	Version  byte
	Priority byte
	Data     []byte
}

func (e *envelope) EncodeScale(enc *scale.Encoder) (int, error) {
	var total int
	for _, b := range blobMagic {
		n, err := scale.EncodeByte(enc, b)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByte(enc, e.Version)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByte(enc, e.Priority)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, e.Data, MaxBlobSize)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (e *envelope) DecodeScale(dec *scale.Decoder) (int, error) {
	var total int
	for _, expected := range blobMagic {
		b, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		total += n
		if b != expected {
			return total, ErrNotBlob
		}
	}
	{
		field, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		e.Version = field
		total += n
	}
	{
		field, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		e.Priority = field
		total += n
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxBlobSize)
		if err != nil {
			return total, err
		}
		e.Data = field
		total += n
	}
	return total, nil
}

// EncodeBlob wraps the blob into the binary envelope.
func EncodeBlob(blob *types.CollaborationBlob) ([]byte, error) {
	if !blob.Priority.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPriority, blob.Priority)
	}
	buf, err := codec.Encode(&envelope{
		Version:  blobVersion,
		Priority: byte(blob.Priority),
		Data:     blob.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("encode blob: %w", err)
	}
	return buf, nil
}

// DecodeBlob unwraps the binary envelope.
func DecodeBlob(payload []byte) (types.CollaborationBlob, error) {
	if !bytes.HasPrefix(payload, blobMagic[:]) {
		return types.CollaborationBlob{}, ErrNotBlob
	}
	var env envelope
	if err := codec.Decode(payload, &env); err != nil {
		return types.CollaborationBlob{}, err
	}
	if env.Version != blobVersion {
		return types.CollaborationBlob{}, fmt.Errorf("%w: %d", ErrUnknownVersion, env.Version)
	}
	priority := types.Priority(env.Priority)
	if !priority.Valid() {
		return types.CollaborationBlob{}, fmt.Errorf("%w: %d", ErrUnknownPriority, env.Priority)
	}
	return types.CollaborationBlob{Priority: priority, Data: env.Data}, nil
}
