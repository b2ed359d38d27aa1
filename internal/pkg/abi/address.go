package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ToChecksumAddress renders a hex address in EIP-55 mixed case.
func ToChecksumAddress(hexAddress string) (string, error) {
	if !common.IsHexAddress(hexAddress) {
		return "", fmt.Errorf("%w: %q is not a hex address", ErrInvalidType, hexAddress)
	}
	return common.HexToAddress(hexAddress).Hex(), nil
}

// IsChecksumAddress reports whether s is a 0x-prefixed address in correct EIP-55 case.
func IsChecksumAddress(s string) bool {
	if len(s) != 2+2*common.AddressLength || !common.IsHexAddress(s) {
		return false
	}
	return common.HexToAddress(s).Hex() == s
}
