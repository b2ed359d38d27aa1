package entity

// Protocol defines the type for RPC protocols.
type Protocol string

// Constants for known protocols.
const (
	ProtocolHTTP    Protocol = "http"
	ProtocolHTTPS   Protocol = "https"
	ProtocolWS      Protocol = "ws"
	ProtocolWSS     Protocol = "wss"
	ProtocolUnknown Protocol = "unknown"
)

// IsWebsocket reports whether the protocol is ws or wss.
func (p Protocol) IsWebsocket() bool {
	return p == ProtocolWS || p == ProtocolWSS
}

// NamingServiceConfig is the provider and contract overrides of one layer.
type NamingServiceConfig struct {
	ProviderURL       RPCURL
	Network           string
	ProxyReader       string
	RegistryAddresses []string
	Headers           map[string]string
}
