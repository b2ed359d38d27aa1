package abi

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// record mirrors one entry of a contract ABI JSON document.
type record struct {
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	Inputs          []input `json:"inputs"`
	Outputs         []input `json:"outputs"`
	Constant        bool    `json:"constant"`
	Payable         bool    `json:"payable"`
	StateMutability string  `json:"stateMutability"`
	Anonymous       bool    `json:"anonymous"`
}

type input struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Indexed    bool    `json:"indexed"`
	Components []input `json:"components"`
}

var (
	baseTypeRe    = regexp.MustCompile(`^(u?int|bytes)([1-9][0-9]*)?|^(address|bool|string|tuple|function)`)
	arraySuffixRe = regexp.MustCompile(`^\[([1-9][0-9]*)?\]`)
)

// ParseJSON parses a contract ABI JSON array. Any invalid type fails the whole document.
func ParseJSON(data []byte) (*ABI, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed abi json: %v", ErrInvalidType, err)
	}

	elements := make([]Element, 0, len(records))
	for i, r := range records {
		el, err := r.parse()
		if err != nil {
			return nil, fmt.Errorf("abi entry %d (%s): %w", i, r.Name, err)
		}
		elements = append(elements, el)
	}
	return New(elements), nil
}

func (r record) parse() (Element, error) {
	el := Element{
		Name:      r.Name,
		Constant:  r.Constant || r.StateMutability == "view" || r.StateMutability == "pure",
		Payable:   r.Payable || r.StateMutability == "payable",
		Anonymous: r.Anonymous,
	}

	switch r.Type {
	case "function", "":
		el.Type = ElementFunction
	case "event":
		el.Type = ElementEvent
	case "constructor":
		el.Type = ElementConstructor
	case "fallback", "receive":
		el.Type = ElementFallback
	default:
		return Element{}, fmt.Errorf("%w: unknown element type %q", ErrInvalidType, r.Type)
	}

	var err error
	if el.Inputs, err = parseArguments(r.Inputs); err != nil {
		return Element{}, fmt.Errorf("inputs: %w", err)
	}
	if el.Outputs, err = parseArguments(r.Outputs); err != nil {
		return Element{}, fmt.Errorf("outputs: %w", err)
	}
	return el, nil
}

func parseArguments(inputs []input) ([]Argument, error) {
	args := make([]Argument, len(inputs))
	for i, in := range inputs {
		t, err := in.parseType()
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, in.Name, err)
		}
		args[i] = Argument{Name: in.Name, Type: t, Indexed: in.Indexed}
	}
	return args, nil
}

func (in input) parseType() (ParameterType, error) {
	var components []ParameterType
	if len(in.Components) > 0 {
		components = make([]ParameterType, len(in.Components))
		for i, c := range in.Components {
			t, err := c.parseType()
			if err != nil {
				return ParameterType{}, fmt.Errorf("component %d: %w", i, err)
			}
			components[i] = t
		}
	}
	return ParseType(in.Type, components...)
}

// ParseType parses a type string such as "uint256", "bytes32[]" or "tuple[2]".
// Components supply the member types of a tuple base.
func ParseType(s string, components ...ParameterType) (ParameterType, error) {
	loc := baseTypeRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return ParameterType{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	m := baseTypeRe.FindStringSubmatch(s)

	var t ParameterType
	switch {
	case m[1] != "":
		size := 0
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return ParameterType{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
			}
			size = n
		}
		switch m[1] {
		case "uint":
			if size == 0 {
				size = 256
			}
			t = Uint(size)
		case "int":
			if size == 0 {
				size = 256
			}
			t = Int(size)
		default:
			if size == 0 {
				t = DynamicBytes()
			} else {
				t = FixedBytes(size)
			}
		}
	case m[3] == "address":
		t = Address()
	case m[3] == "bool":
		t = Bool()
	case m[3] == "string":
		t = String()
	case m[3] == "function":
		t = Function()
	case m[3] == "tuple":
		t = Tuple(components...)
	}

	rest := s[loc[1]:]
	for rest != "" {
		am := arraySuffixRe.FindStringSubmatch(rest)
		if am == nil {
			return ParameterType{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidType, rest, s)
		}
		length := 0
		if am[1] != "" {
			n, err := strconv.Atoi(am[1])
			if err != nil {
				return ParameterType{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
			}
			length = n
		}
		t = Array(t, length)
		rest = rest[len(am[0]):]
	}

	if err := t.Validate(); err != nil {
		return ParameterType{}, fmt.Errorf("%q: %w", s, err)
	}
	return t, nil
}
