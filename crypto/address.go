package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

// AddressPrefix defines the human-readable part of a bech32 account address.
type AddressPrefix string

const (
	// GovPrefix is used for every governance account rendered in events,
	// genesis files and logs.
	GovPrefix AddressPrefix = "gov"
)

// AddressLength is the size of a raw account identifier in bytes.
const AddressLength = 20

// Address represents a 20-byte account identifier with a specific prefix.
type Address struct {
	prefix AddressPrefix
	bytes  [AddressLength]byte
}

// NewAddress wraps a raw account identifier.
func NewAddress(prefix AddressPrefix, b [AddressLength]byte) Address {
	return Address{prefix: prefix, bytes: b}
}

// FormatAccount renders a raw account identifier using the governance prefix.
func FormatAccount(account [AddressLength]byte) string {
	return NewAddress(GovPrefix, account).String()
}

func (a Address) String() string {
	conv, err := bech32.ConvertBits(a.bytes[:], 8, 5, true)
	if err != nil {
		return hex.EncodeToString(a.bytes[:])
	}
	encoded, err := bech32.Encode(string(a.prefix), conv)
	if err != nil {
		return hex.EncodeToString(a.bytes[:])
	}
	return encoded
}

func (a Address) Bytes() []byte {
	out := a.bytes
	return out[:]
}

// Account returns the raw identifier.
func (a Address) Account() [AddressLength]byte {
	return a.bytes
}

// Prefix returns the human-readable prefix associated with the address.
func (a Address) Prefix() AddressPrefix {
	return a.prefix
}

func DecodeAddress(addrStr string) (Address, error) {
	prefix, decoded, err := bech32.Decode(addrStr)
	if err != nil {
		return Address{}, fmt.Errorf("invalid bech32 string: %w", err)
	}
	conv, err := bech32.ConvertBits(decoded, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("error converting bits: %w", err)
	}
	if len(conv) != AddressLength {
		return Address{}, fmt.Errorf("address must be %d bytes long, got %d", AddressLength, len(conv))
	}
	var raw [AddressLength]byte
	copy(raw[:], conv)
	return NewAddress(AddressPrefix(prefix), raw), nil
}
