package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterTypeLayout(t *testing.T) {
	tests := []struct {
		name     string
		typ      ParameterType
		repr     string
		static   bool
		memUsage int
	}{
		{"uint256", Uint(256), "uint256", true, 32},
		{"int8", Int(8), "int8", true, 32},
		{"address", Address(), "address", true, 32},
		{"bool", Bool(), "bool", true, 32},
		{"bytes32", FixedBytes(32), "bytes32", true, 32},
		{"bytes", DynamicBytes(), "bytes", false, 32},
		{"string", String(), "string", false, 32},
		{"function", Function(), "function", true, 32},
		{"static array", Array(Uint(256), 3), "uint256[3]", true, 96},
		{"dynamic array", Array(Uint(256), 0), "uint256[]", false, 32},
		{"static array of strings", Array(String(), 2), "string[2]", false, 32},
		{"nested static arrays", Array(Array(Bool(), 2), 3), "bool[2][3]", true, 192},
		{"static tuple", Tuple(Address(), Uint(8)), "tuple(address,uint8)", true, 64},
		{"dynamic tuple", Tuple(Address(), DynamicBytes()), "tuple(address,bytes)", false, 32},
		{"static array of tuples", Array(Tuple(Bool(), Bool()), 2), "tuple(bool,bool)[2]", true, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.repr, tt.typ.String())
			assert.Equal(t, tt.static, tt.typ.IsStatic())
			assert.Equal(t, tt.memUsage, tt.typ.MemoryUsage())
			assert.True(t, tt.typ.IsValid())
		})
	}
}

func TestParameterTypeValidate(t *testing.T) {
	invalid := map[string]ParameterType{
		"uint0":          Uint(0),
		"uint7":          Uint(7),
		"uint264":        Uint(264),
		"int12":          Int(12),
		"bytes0":         FixedBytes(0),
		"bytes33":        FixedBytes(33),
		"array of bad":   Array(Uint(3), 2),
		"empty tuple":    Tuple(),
		"tuple with bad": Tuple(Bool(), FixedBytes(40)),
		"no element":     {Kind: KindArray, Length: 1},
	}
	for name, typ := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.False(t, typ.IsValid())
			assert.ErrorIs(t, typ.Validate(), ErrInvalidType)
		})
	}
}
