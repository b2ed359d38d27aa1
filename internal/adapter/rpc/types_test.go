package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamElement_Unmarshal(t *testing.T) {
	var p ParamElement
	require.NoError(t, json.Unmarshal([]byte(`{
		"records": {"0xabc": {"argtypes": [], "arguments": ["0xowner", "0xresolver"], "constructor": "Record"}},
		"count": 12,
		"flag": true,
		"call": {"data": "0x01", "to": "0x02"}
	}`), &p))

	require.Equal(t, KindMap, p.Kind)
	assert.Equal(t, []string{"call", "count", "flag", "records"}, p.Keys())

	count, _ := p.Field("count")
	assert.Equal(t, String("12"), count)
	flag, _ := p.Field("flag")
	assert.Equal(t, String("true"), flag)
	call, _ := p.Field("call")
	assert.Equal(t, Call("0x01", "0x02"), call)

	records, ok := p.Field("records")
	require.True(t, ok)
	rec, ok := records.Field("0xabc")
	require.True(t, ok)
	args, _ := rec.Field("arguments")
	assert.Equal(t, Strings("0xowner", "0xresolver"), args)

	_, ok = count.Field("x")
	assert.False(t, ok)
}

func TestParamElement_UnmarshalNested(t *testing.T) {
	var p ParamElement
	assert.Error(t, json.Unmarshal([]byte(`{"a": null}`), &p))
}

func TestParamElement_Marshal(t *testing.T) {
	tests := []struct {
		name string
		in   ParamElement
		want string
	}{
		{"string", String("latest"), `"latest"`},
		{"call", Call("0x01", "0x02"), `{"data":"0x01","to":"0x02"}`},
		{"empty array", Array(), `[]`},
		{"strings", Strings("a", "b"), `["a","b"]`},
		{"map", Map(map[string]ParamElement{"k": Strings()}), `{"k":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestParamElement_Interface(t *testing.T) {
	p := Map(map[string]ParamElement{
		"list": Strings("x"),
		"call": Call("d", "t"),
	})
	assert.Equal(t, map[string]any{
		"list": []any{"x"},
		"call": map[string]any{"data": "d", "to": "t"},
	}, p.Interface())
}
