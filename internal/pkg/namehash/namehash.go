// Package namehash maps dotted domain names to 32-byte registry identifiers.
package namehash

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minio/sha256-simd"
)

// ChildHash folds one label into its parent node.
type ChildHash func(parent, label []byte) []byte

// Keccak computes keccak256(parent ++ keccak256(label)), the UNS and ENS scheme.
func Keccak(parent, label []byte) []byte {
	return crypto.Keccak256(parent, crypto.Keccak256(label))
}

// SHA256 computes sha256(parent ++ sha256(label)), the legacy Zilliqa scheme.
func SHA256(parent, label []byte) []byte {
	labelHash := sha256.Sum256(label)
	buf := make([]byte, 0, len(parent)+len(labelHash))
	buf = append(buf, parent...)
	buf = append(buf, labelHash[:]...)
	node := sha256.Sum256(buf)
	return node[:]
}

// Compute folds the labels of domain from the TLD inwards, starting at the zero node.
// The input is used as given; callers normalize case beforehand.
func Compute(domain string, child ChildHash) common.Hash {
	node := make([]byte, common.HashLength)
	labels := strings.FieldsFunc(domain, func(r rune) bool { return r == '.' })
	for i := len(labels) - 1; i >= 0; i-- {
		node = child(node, []byte(labels[i]))
	}
	return common.BytesToHash(node)
}

// Hex returns Compute as a 0x-prefixed lowercase hex string.
func Hex(domain string, child ChildHash) string {
	return Compute(domain, child).Hex()
}
