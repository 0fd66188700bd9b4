package genesis

import (
	"fmt"
	"strings"

	"liquidgov/crypto"
)

// ParseBech32Account decodes a governance account address.
func ParseBech32Account(addr string) ([20]byte, error) {
	decoded, err := crypto.DecodeAddress(strings.TrimSpace(addr))
	if err != nil {
		return [20]byte{}, fmt.Errorf("decode bech32 account: %w", err)
	}
	if decoded.Prefix() != crypto.GovPrefix {
		return [20]byte{}, fmt.Errorf("decode bech32 account: unsupported hrp %q", decoded.Prefix())
	}
	return decoded.Account(), nil
}
