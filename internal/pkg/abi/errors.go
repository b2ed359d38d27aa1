package abi

import "errors"

var (
	// ErrInvalidType means an ABI type string or type tree is malformed.
	ErrInvalidType = errors.New("abi: invalid type")

	// ErrUnknownMethod means no method, or more than one, matched the requested name.
	ErrUnknownMethod = errors.New("abi: unknown method")

	// ErrEncode means arguments could not be encoded against their declared types.
	ErrEncode = errors.New("abi: could not encode")

	// ErrDecode means a payload could not be decoded against the declared types.
	ErrDecode = errors.New("abi: could not decode")
)

// IsCoderError reports whether err originated in the codec rather than the transport.
func IsCoderError(err error) bool {
	return errors.Is(err, ErrUnknownMethod) ||
		errors.Is(err, ErrEncode) ||
		errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrInvalidType)
}
