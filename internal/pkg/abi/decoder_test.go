package abi

import (
	"fmt"
	"math/big"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 0)
	require.True(t, ok, s)
	return n
}

func TestRoundTrip(t *testing.T) {
	addr := common.HexToAddress("0xD1E5b0FF1287aA9f9A268759062E4Ab08b9Dacbe")
	maxInt256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minInt256 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	tests := []struct {
		name   string
		types  []ParameterType
		values []any
	}{
		{"uint boundaries", []ParameterType{Uint(8), Uint(256)}, []any{big.NewInt(255), maxUint256}},
		{"int8 boundaries", []ParameterType{Int(8), Int(8)}, []any{big.NewInt(-128), big.NewInt(127)}},
		{"int256 boundaries", []ParameterType{Int(256), Int(256)}, []any{minInt256, maxInt256}},
		{"address and bool", []ParameterType{Address(), Bool(), Bool()}, []any{addr, true, false}},
		{"fixed bytes", []ParameterType{FixedBytes(1), FixedBytes(32)}, []any{[]byte{0xff}, common.HexToHash("0xabcdef").Bytes()}},
		{"function", []ParameterType{Function()}, []any{append(addr.Bytes(), 0x01, 0x02, 0x03, 0x04)}},
		{"dynamic bytes and string", []ParameterType{DynamicBytes(), String()}, []any{make([]byte, 33), "ipfs://QmdyBw5oTgCtTLQ18PbDvPL8iaLoEPhSyzD91q9XmgmAjb"}},
		{"empty dynamic values", []ParameterType{DynamicBytes(), String(), Array(Uint(256), 0)}, []any{[]byte{}, "", []any{}}},
		{
			"nested string arrays",
			[]ParameterType{Array(Array(String(), 0), 0)},
			[]any{[]any{[]any{"a", "b"}, []any{}, []any{"0x8aaD44321A86b170879d7A244c1e8d360c99DdA8"}}},
		},
		{
			"array of tuples",
			[]ParameterType{Array(Tuple(Address(), DynamicBytes(), Int(8)), 0)},
			[]any{[]any{
				[]any{addr, []byte{1, 2, 3}, big.NewInt(-5)},
				[]any{common.Address{}, []byte{}, big.NewInt(5)},
			}},
		},
		{
			"static tuple and static arrays",
			[]ParameterType{Tuple(Uint(32), Array(Bool(), 2)), Array(Array(Uint(16), 2), 2)},
			[]any{
				[]any{big.NewInt(9), []any{true, false}},
				[]any{[]any{big.NewInt(1), big.NewInt(2)}, []any{big.NewInt(3), big.NewInt(4)}},
			},
		},
		{
			"tuple of tuples",
			[]ParameterType{Tuple(Tuple(String(), Bool()), Array(String(), 2))},
			[]any{[]any{[]any{"x", true}, []any{"y", "z"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.types, tt.values)
			require.NoError(t, err)

			decoded, err := Decode(tt.types, encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.values, decoded)
		})
	}
}

func TestDecodeGetDataForManyShape(t *testing.T) {
	outputs := []ParameterType{Array(Address(), 0), Array(Address(), 0), Array(Array(String(), 0), 0)}
	resolver := common.HexToAddress("0x049aba7510f45BA5b64ea9E658E342F904DB358D")
	owner := common.HexToAddress("0x8aaD44321A86b170879d7A244c1e8d360c99DdA8")

	encoded, err := Encode(outputs, []any{
		[]any{resolver},
		[]any{owner},
		[]any{[]any{"0x8aaD44321A86b170879d7A244c1e8d360c99DdA8"}},
	})
	require.NoError(t, err)

	decoded, err := Decode(outputs, encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.Equal(t, []any{resolver}, decoded[0])
	assert.Equal(t, []any{owner}, decoded[1])
	assert.Equal(t, []any{[]any{"0x8aaD44321A86b170879d7A244c1e8d360c99DdA8"}}, decoded[2])
}

func TestDecodeSignedMatchesGoEthereum(t *testing.T) {
	minInt256 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	maxInt256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))

	tests := []struct {
		name  string
		bits  int
		value any
		want  *big.Int
	}{
		{"int8 min", 8, int8(-128), big.NewInt(-128)},
		{"int8 max", 8, int8(127), big.NewInt(127)},
		{"int8 minus one", 8, int8(-1), big.NewInt(-1)},
		{"int64 min", 64, int64(-1 << 63), big.NewInt(-1 << 63)},
		{"int256 min", 256, minInt256, minInt256},
		{"int256 max", 256, maxInt256, maxInt256},
		{"int256 zero", 256, big.NewInt(0), big.NewInt(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := gethabi.Arguments{{Type: gethType(t, fmt.Sprintf("int%d", tt.bits))}}.Pack(tt.value)
			require.NoError(t, err)

			decoded, err := Decode([]ParameterType{Int(tt.bits)}, packed)
			require.NoError(t, err)
			assert.Equal(t, 0, tt.want.Cmp(decoded[0].(*big.Int)), "got %s", decoded[0])
		})
	}
}

// Non-canonical bool words decode as true.
func TestDecodeBoolIsLenient(t *testing.T) {
	word := make([]byte, 32)
	word[0] = 0x02

	decoded, err := Decode([]ParameterType{Bool()}, word)
	require.NoError(t, err)
	assert.Equal(t, true, decoded[0])
}

func TestDecodeErrors(t *testing.T) {
	word := func(n int64) []byte {
		return common.LeftPadBytes(big.NewInt(n).Bytes(), 32)
	}
	concat := func(parts ...[]byte) []byte {
		var out []byte
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	tests := []struct {
		name  string
		types []ParameterType
		data  []byte
	}{
		{"empty payload", []ParameterType{Uint(256)}, nil},
		{"short static", []ParameterType{Address()}, make([]byte, 31)},
		{"offset out of range", []ParameterType{String()}, word(64)},
		{"string length exceeds payload", []ParameterType{String()}, concat(word(32), word(100))},
		{"array length exceeds payload", []ParameterType{Array(Uint(256), 0)}, concat(word(32), word(5), word(1))},
		{"uint8 overflow", []ParameterType{Uint(8)}, word(256)},
		{"int8 not sign extended", []ParameterType{Int(8)}, word(200)},
		{"huge offset", []ParameterType{DynamicBytes()}, common.LeftPadBytes(bigFromString(t, "0xffffffffffffffffffff").Bytes(), 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.types, tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.True(t, IsCoderError(err))
		})
	}
}
