package service

import (
	"context"

	"uns-resolution/internal/domain/entity"
)

// Transport delivers one JSON-RPC request body to a provider and returns the raw response body.
type Transport interface {
	Post(ctx context.Context, endpoint entity.RPCURL, headers map[string]string, body []byte) ([]byte, error)
}
