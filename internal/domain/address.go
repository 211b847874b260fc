package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidAddress reports whether s is a 20-byte hex address, with or without 0x prefix
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress returns the canonical lowercase 0x-prefixed form of an address
func NormalizeAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("invalid address: %q", s)
	}
	return strings.ToLower(common.HexToAddress(s).Hex()), nil
}

// AddressID returns the canonical lowercase form of a go-ethereum address
func AddressID(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
