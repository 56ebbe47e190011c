package sim

import (
	"math"

	"github.com/spacemeshos/go-scale"

	"github.com/sun-23/go-multiuser/common/types"
)

const (
	maxSessionLength = 256
	maxNameLength    = 64
	maxAnchors       = 1024
)

// snapshot is the engine state shared with peers.
type snapshot struct {
	Session types.SessionID
	Anchors []record
}

type record struct {
	ID        types.AnchorID
	Name      string
	Kind      types.AnchorKind
	Transform types.Transform
}

func (s *snapshot) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeStringWithLimit(enc, string(s.Session), maxSessionLength)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeStructSliceWithLimit(enc, s.Anchors, maxAnchors)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *snapshot) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeStringWithLimit(dec, maxSessionLength)
		if err != nil {
			return total, err
		}
		total += n
		s.Session = types.SessionID(field)
	}
	{
		field, n, err := scale.DecodeStructSliceWithLimit[record](dec, maxAnchors)
		if err != nil {
			return total, err
		}
		total += n
		s.Anchors = field
	}
	return total, nil
}

func (r *record) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := r.ID.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeStringWithLimit(enc, r.Name, maxNameLength)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByte(enc, byte(r.Kind))
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, v := range r.Transform {
		n, err := scale.EncodeUint32(enc, math.Float32bits(v))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *record) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := r.ID.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeStringWithLimit(dec, maxNameLength)
		if err != nil {
			return total, err
		}
		total += n
		r.Name = field
	}
	{
		field, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		total += n
		r.Kind = types.AnchorKind(field)
	}
	for i := range r.Transform {
		field, n, err := scale.DecodeUint32(dec)
		if err != nil {
			return total, err
		}
		total += n
		r.Transform[i] = math.Float32frombits(field)
	}
	return total, nil
}
