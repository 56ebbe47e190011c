// Package hash computes blake3 digests with pooled hashers.
package hash

import (
	"sync"

	"github.com/zeebo/blake3"
)

// Size of the digest in bytes.
const Size = 32

var hashers = sync.Pool{
	New: func() any {
		return blake3.New()
	},
}

// Sum computes blake3 digest over the chunks.
func Sum(chunks ...[]byte) (rst [Size]byte) {
	hh := hashers.Get().(*blake3.Hasher)
	defer func() {
		hh.Reset()
		hashers.Put(hh)
	}()
	for _, chunk := range chunks {
		hh.Write(chunk)
	}
	hh.Sum(rst[:0])
	return rst
}
