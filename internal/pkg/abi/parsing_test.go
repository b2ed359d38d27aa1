package abi

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryABI = `[
  {"type":"function","name":"ownerOf","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],
   "outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"tokenURI","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],
   "outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"getDataForMany","stateMutability":"view",
   "inputs":[{"name":"keys","type":"string[]"},{"name":"tokenIds","type":"uint256[]"}],
   "outputs":[{"name":"resolvers","type":"address[]"},{"name":"owners","type":"address[]"},{"name":"values","type":"string[][]"}]},
  {"type":"function","name":"multicall",
   "inputs":[{"name":"data","type":"bytes[]"}],
   "outputs":[{"name":"results","type":"bytes[]"}]},
  {"type":"function","name":"aggregate",
   "inputs":[{"name":"calls","type":"tuple[]","components":[{"name":"target","type":"address"},{"name":"callData","type":"bytes"}]}],
   "outputs":[]},
  {"type":"function","name":"reverseOf","inputs":[{"name":"addr","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"reverseOf","inputs":[{"name":"addr","type":"address"},{"name":"x","type":"bool"}],"outputs":[]},
  {"type":"event","name":"Transfer","anonymous":false,
   "inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"}]},
  {"type":"constructor","inputs":[]},
  {"type":"fallback"}
]`

func TestParseJSON(t *testing.T) {
	parsed, err := ParseJSON([]byte(registryABI))
	require.NoError(t, err)
	require.Len(t, parsed.Elements(), 10)

	m, err := parsed.Method("getDataForMany")
	require.NoError(t, err)
	assert.Equal(t, "getDataForMany(string[],uint256[])", m.Signature())
	assert.True(t, m.Constant)
	assert.Equal(t, "string[][]", m.Outputs[2].Type.String())

	agg, err := parsed.Method("aggregate")
	require.NoError(t, err)
	assert.Equal(t, "aggregate((address,bytes)[])", agg.Signature())
	assert.Equal(t, "tuple(address,bytes)[]", agg.Inputs[0].Type.String())

	ev, err := parsed.Event("Transfer")
	require.NoError(t, err)
	assert.True(t, ev.Inputs[0].Indexed)
}

func TestSelectorDerivation(t *testing.T) {
	parsed, err := ParseJSON([]byte(registryABI))
	require.NoError(t, err)

	tests := []struct {
		method string
		want   string
	}{
		{"ownerOf", "6352211e"},
		{"tokenURI", "c87b56dd"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, err := parsed.Method(tt.method)
			require.NoError(t, err)
			sel := m.Selector()
			assert.Equal(t, tt.want, hex.EncodeToString(sel[:]))
		})
	}

	// Argument names do not take part in the selector.
	renamed := Element{Type: ElementFunction, Name: "ownerOf", Inputs: []Argument{{Name: "somethingElse", Type: Uint(256)}}}
	m, _ := parsed.Method("ownerOf")
	assert.Equal(t, m.Selector(), renamed.Selector())

	gdm, _ := parsed.Method("getDataForMany")
	sel := gdm.Selector()
	assert.Equal(t, crypto.Keccak256([]byte("getDataForMany(string[],uint256[])"))[:4], sel[:])

	ev, _ := parsed.Event("Transfer")
	assert.Equal(t,
		common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"),
		ev.Topic(),
	)
}

func TestMethodLookup(t *testing.T) {
	parsed, err := ParseJSON([]byte(registryABI))
	require.NoError(t, err)

	_, err = parsed.Method("missing")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	_, err = parsed.Method("reverseOf")
	assert.ErrorIs(t, err, ErrUnknownMethod, "overloaded names are ambiguous")

	_, err = parsed.EncodeCall("missing")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestEncodeCallAndDecodeOutputs(t *testing.T) {
	parsed, err := ParseJSON([]byte(registryABI))
	require.NoError(t, err)

	payload, err := parsed.EncodeCall("ownerOf", "0x2a")
	require.NoError(t, err)
	require.Len(t, payload, 4+32)
	assert.Equal(t, "6352211e", hex.EncodeToString(payload[:4]))
	assert.Equal(t, byte(0x2a), payload[35])

	owner := common.HexToAddress("0x8aaD44321A86b170879d7A244c1e8d360c99DdA8")
	ret, err := Encode([]ParameterType{Array(Address(), 0), Array(Address(), 0), Array(Array(String(), 0), 0)},
		[]any{[]any{owner}, []any{owner}, []any{[]any{"v"}}})
	require.NoError(t, err)

	values, err := parsed.DecodeHexOutputs("getDataForMany", "0x"+hex.EncodeToString(ret))
	require.NoError(t, err)
	assert.Equal(t, values["1"], values["owners"])
	v, ok := values.At(2)
	require.True(t, ok)
	assert.Equal(t, []any{[]any{"v"}}, v)

	_, err = parsed.DecodeHexOutputs("tokenURI", "0x")
	assert.ErrorIs(t, err, ErrDecode)

	n, err := parsed.DecodeOutputs("reverseOf", nil)
	assert.Nil(t, n)
	assert.ErrorIs(t, err, ErrUnknownMethod)

}

func TestParseTypeStrings(t *testing.T) {
	valid := map[string]string{
		"uint":         "uint256",
		"int":          "int256",
		"uint8":        "uint8",
		"bytes":        "bytes",
		"bytes4":       "bytes4",
		"address[]":    "address[]",
		"string[][]":   "string[][]",
		"uint256[2][]": "uint256[2][]",
		"bool[3]":      "bool[3]",
		"function":     "function",
	}
	for in, want := range valid {
		t.Run(in, func(t *testing.T) {
			typ, err := ParseType(in)
			require.NoError(t, err)
			assert.Equal(t, want, typ.String())
		})
	}

	for _, in := range []string{"uint7", "uint512", "bytes33", "foo", "uint256[x]", "uint256[0]", "tuple"} {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseType(in)
			assert.ErrorIs(t, err, ErrInvalidType)
		})
	}

	_, err := ParseJSON([]byte(`[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint9"}]}]`))
	assert.ErrorIs(t, err, ErrInvalidType, "invalid contracts fail at parse time")
}
