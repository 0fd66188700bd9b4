package crypto

import (
	"crypto/sha256"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"lukechampine.com/blake3"
)

// Hasher is the deterministic 32-byte digest used for vote commitments.
type Hasher interface {
	Name() string
	Sum(data []byte) [32]byte
}

const (
	HasherKeccak256 = "keccak256"
	HasherBlake3    = "blake3"
	HasherSHA256    = "sha256"
)

// Keccak256Hasher is the default commitment digest and matches the state key hash.
type Keccak256Hasher struct{}

func (Keccak256Hasher) Name() string { return HasherKeccak256 }

func (Keccak256Hasher) Sum(data []byte) [32]byte {
	var out [32]byte
	copy(out[:], ethcrypto.Keccak256(data))
	return out
}

type Blake3Hasher struct{}

func (Blake3Hasher) Name() string { return HasherBlake3 }

func (Blake3Hasher) Sum(data []byte) [32]byte { return blake3.Sum256(data) }

type SHA256Hasher struct{}

func (SHA256Hasher) Name() string { return HasherSHA256 }

func (SHA256Hasher) Sum(data []byte) [32]byte { return sha256.Sum256(data) }

// HasherByName resolves a configured digest name. An empty name selects keccak256.
func HasherByName(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HasherKeccak256:
		return Keccak256Hasher{}, nil
	case HasherBlake3:
		return Blake3Hasher{}, nil
	case HasherSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("crypto: unknown hasher %q", name)
	}
}
