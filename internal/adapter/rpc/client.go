package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	domainService "uns-resolution/internal/domain/service"
	"uns-resolution/internal/metrics"
	"uns-resolution/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// JSON-RPC error codes with a dedicated error kind.
const (
	codeTooManyResponses = -32005
	codeBadRequest       = -32042
)

const executionRevertedPrefix = "execution reverted"

// ErrEmptyResult marks a response whose result member is missing or null.
var ErrEmptyResult = errors.New("json-rpc response has no result")

// Client issues JSON-RPC calls against a single provider endpoint.
type Client struct {
	transport domainService.Transport
	endpoint  entity.RPCURL
	headers   map[string]string
	nextID    atomic.Uint64
	logger    *zap.Logger
}

// NewClient creates a client for endpoint. headers are sent with every call.
func NewClient(
	transport domainService.Transport,
	endpoint entity.RPCURL,
	headers map[string]string,
	logger *zap.Logger,
) *Client {
	return &Client{
		transport: transport,
		endpoint:  endpoint,
		headers:   headers,
		logger:    logger.Named("RPCClient"),
	}
}

// Endpoint returns the provider URL the client talks to.
func (c *Client) Endpoint() entity.RPCURL {
	return c.endpoint
}

// Call invokes method with params and returns the result member of the response.
func (c *Client) Call(ctx context.Context, method string, params ...ParamElement) (ParamElement, error) {
	start := time.Now()
	result, err := c.call(ctx, method, params)
	metrics.RPCDuration.WithLabelValues(method).Observe(float64(time.Since(start).Milliseconds()))
	metrics.RPCRequests.WithLabelValues(method, metrics.Outcome(err)).Inc()
	return result, err
}

func (c *Client) call(ctx context.Context, method string, params []ParamElement) (ParamElement, error) {
	if params == nil {
		params = []ParamElement{}
	}
	req := Request{
		JSONRPC: "2.0",
		ID:      strconv.FormatUint(c.nextID.Add(1), 10),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return ParamElement{}, fmt.Errorf("%w: encode %s request: %v", apperrors.ErrInternal, method, err)
	}

	payload, err := c.transport.Post(ctx, c.endpoint, c.headers, body)
	if err != nil {
		return ParamElement{}, err
	}

	resp, err := parseResponse(payload)
	if err != nil {
		c.logger.Debug("Unusable JSON-RPC response",
			zap.String("method", method),
			zap.ByteString("body", payload),
			zap.Error(err),
		)
		return ParamElement{}, err
	}

	if resp.Error != nil {
		c.logger.Debug("JSON-RPC error",
			zap.String("method", method),
			zap.Int("code", resp.Error.Code),
			zap.String("message", resp.Error.Message),
		)
		return ParamElement{}, mapError(resp.Error)
	}

	if resp.Result == nil {
		return ParamElement{}, fmt.Errorf("%w: %w: %s", apperrors.ErrDecode, ErrEmptyResult, method)
	}
	return *resp.Result, nil
}

// parseResponse accepts a single response object or a batch array; the first
// element of a batch is used.
func parseResponse(payload []byte) (Response, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) > 0 && payload[0] == '[' {
		var batch []Response
		if err := json.Unmarshal(payload, &batch); err != nil {
			return Response{}, fmt.Errorf("%w: invalid JSON-RPC batch: %v", apperrors.ErrDecode, err)
		}
		if len(batch) == 0 {
			return Response{}, fmt.Errorf("%w: empty JSON-RPC batch", domain.ErrBadRequestOrResponse)
		}
		return batch[0], nil
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return Response{}, fmt.Errorf("%w: invalid JSON-RPC response: %v", apperrors.ErrDecode, err)
	}
	return resp, nil
}

func mapError(e *Error) error {
	var kind error
	switch {
	case strings.HasPrefix(e.Message, executionRevertedPrefix):
		kind = domain.ErrExecutionReverted
	case e.Code == codeTooManyResponses:
		kind = domain.ErrTooManyResponses
	case e.Code == codeBadRequest:
		kind = domain.ErrBadRequestOrResponse
	default:
		kind = apperrors.ErrExternalServiceFailure
	}
	return fmt.Errorf("%w: code %d: %s", kind, e.Code, e.Message)
}
