package namehash

import (
	stdsha256 "crypto/sha256"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestKeccakVectors(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"", "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth", "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
		{"crypto", "0x0f4a10a4f46c288cea365fcf45cccf0e9d901b945b9829ccdb54c10dc3cb7a6f"},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.want, Hex(tt.domain, Keccak))
		})
	}
}

func TestDeterministic(t *testing.T) {
	first := Compute("resolver.crypto", Keccak)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute("resolver.crypto", Keccak))
	}
	assert.NotEqual(t, first, Compute("resolver.crypto", SHA256))
}

func TestNoCaseFolding(t *testing.T) {
	assert.NotEqual(t, Compute("Brad.crypto", Keccak), Compute("brad.crypto", Keccak))
}

func TestEmptyLabelsAreSkipped(t *testing.T) {
	assert.Equal(t, Compute("brad.crypto", Keccak), Compute("brad..crypto.", Keccak))
}

func TestSHA256Strategy(t *testing.T) {
	zero := make([]byte, 32)
	label := stdsha256.Sum256([]byte("zil"))
	want := stdsha256.Sum256(append(zero, label[:]...))

	assert.Equal(t, common.BytesToHash(want[:]), Compute("zil", SHA256))

	child := stdsha256.Sum256([]byte("brad"))
	wantChild := stdsha256.Sum256(append(want[:], child[:]...))
	assert.Equal(t, common.BytesToHash(wantChild[:]), Compute("brad.zil", SHA256))
}

func TestCustomStrategy(t *testing.T) {
	var seen []string
	recording := func(parent, label []byte) []byte {
		seen = append(seen, string(label))
		return Keccak(parent, label)
	}
	Compute("a.b.c", recording)
	assert.Equal(t, []string{"c", "b", "a"}, seen)
}
