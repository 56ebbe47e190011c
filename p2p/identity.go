package p2p

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/natefinch/atomic"
)

const keyFilename = "p2p.key"

// EnsureIdentity loads the host key from dir, generating and persisting a new one when missing.
// An empty dir yields an ephemeral key.
func EnsureIdentity(dir string) (crypto.PrivKey, error) {
	if dir == "" {
		key, _, err := crypto.GenerateEd25519Key(nil)
		if err != nil {
			return nil, fmt.Errorf("generate ephemeral key: %w", err)
		}
		return key, nil
	}
	path := filepath.Join(dir, keyFilename)
	key, err := loadIdentity(path)
	switch {
	case err == nil:
		return key, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	key, _, err = crypto.GenerateEd25519Key(nil)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	raw, err := crypto.MarshalPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	encoded := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(encoded, raw)
	if err := atomic.WriteFile(path, bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return key, nil
}

func loadIdentity(path string) (crypto.PrivKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	raw := make([]byte, hex.DecodedLen(len(data)))
	n, err := hex.Decode(raw, bytes.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	key, err := crypto.UnmarshalPrivateKey(raw[:n])
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return key, nil
}
