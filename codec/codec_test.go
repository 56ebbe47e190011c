package codec

import (
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Value []byte
}

func (s *sample) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeByteSliceWithLimit(enc, s.Value, 16)
}

func (s *sample) DecodeScale(dec *scale.Decoder) (int, error) {
	var (
		n   int
		err error
	)
	s.Value, n, err = scale.DecodeByteSliceWithLimit(dec, 16)
	return n, err
}

func TestDecode(t *testing.T) {
	buf, err := Encode(&sample{Value: []byte("value")})
	require.NoError(t, err)

	var decoded sample
	require.NoError(t, Decode(buf, &decoded))
	require.Equal(t, []byte("value"), decoded.Value)

	require.ErrorIs(t, Decode(append(buf, 0), &decoded), ErrTrailingBytes)
	require.Error(t, Decode(buf[:len(buf)-1], &decoded))
}

func TestEncodeLimit(t *testing.T) {
	_, err := Encode(&sample{Value: make([]byte, 17)})
	require.Error(t, err)
}
