package rpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	domainService "uns-resolution/internal/domain/service"
	"uns-resolution/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.Transport = (*Transport)(nil)

const defaultTimeout = 10 * time.Second

// Transport posts JSON-RPC payloads over HTTP(S) or WS(S).
type Transport struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewTransport creates a transport whose calls give up after timeout.
func NewTransport(timeout time.Duration, logger *zap.Logger) *Transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Transport{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout: timeout,
		logger:  logger.Named("RPCTransport"),
	}
}

// Post sends body to endpoint and returns the raw response payload.
func (t *Transport) Post(
	ctx context.Context,
	endpoint entity.RPCURL,
	headers map[string]string,
	body []byte,
) ([]byte, error) {
	switch p := endpoint.Protocol(); {
	case p.IsWebsocket():
		return t.postWS(ctx, endpoint.String(), headers, body)
	case p == entity.ProtocolHTTP || p == entity.ProtocolHTTPS:
		return t.postHTTP(ctx, endpoint.String(), headers, body)
	default:
		t.logger.Warn("Unsupported protocol for RPC endpoint", zap.String("url", endpoint.String()))
		return nil, fmt.Errorf("%w: unsupported protocol in URL %s", apperrors.ErrInvalidInput, endpoint)
	}
}

// effectiveTimeout shortens the transport timeout to the context deadline.
func (t *Transport) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := t.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	return timeout
}

func (t *Transport) postHTTP(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.SetBody(body)

	timeout := t.effectiveTimeout(ctx)
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: deadline passed before request to %s", apperrors.ErrTimeout, url)
	}

	if err := t.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			t.logger.Debug("HTTP RPC request timed out",
				zap.String("url", url),
				zap.Duration("timeout", timeout),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: http request to %s timed out after %v: %v",
				apperrors.ErrTimeout, url, timeout, err,
			)
		}
		t.logger.Debug("HTTP RPC request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: http request to %s failed: %v",
			apperrors.ErrExternalServiceFailure, url, err,
		)
	}

	if err := statusError(resp.StatusCode()); err != nil {
		t.logger.Debug("HTTP RPC returned non-OK status",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: rpc %s", err, url)
	}

	payload := resp.Body()
	if bytes.EqualFold(resp.Header.ContentEncoding(), []byte("gzip")) {
		unzipped, err := resp.BodyGunzip()
		if err != nil {
			return nil, fmt.Errorf("%w: gunzip response from %s: %v", apperrors.ErrDecode, url, err)
		}
		payload = unzipped
	}

	return append([]byte(nil), payload...), nil
}

// statusError maps a non-200 HTTP status to an error kind.
func statusError(status int) error {
	switch status {
	case fasthttp.StatusOK:
		return nil
	case fasthttp.StatusUnauthorized:
		return fmt.Errorf("%w: %w", domain.ErrUnauthenticatedRequest, apperrors.ErrUnauthorized)
	case fasthttp.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrUnauthenticatedRequest, apperrors.ErrForbidden)
	case fasthttp.StatusTooManyRequests:
		return fmt.Errorf("%w: http status %d", domain.ErrRequestBeingRateLimited, status)
	default:
		return fmt.Errorf("%w: unexpected http status %d", apperrors.ErrExternalServiceFailure, status)
	}
}

func (t *Transport) postWS(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error) {
	timeout := t.effectiveTimeout(ctx)
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: deadline passed before dialing %s", apperrors.ErrTimeout, url)
	}

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
	}

	header := make(http.Header, len(headers))
	for k, v := range headers {
		header.Set(k, v)
	}

	conn, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		t.logger.Debug("WS dial failed", zap.String("url", url), zap.Error(err))
		if resp != nil {
			if sErr := statusError(resp.StatusCode); sErr != nil {
				return nil, fmt.Errorf("%w: ws dial %s", sErr, url)
			}
		}
		return nil, wsError(ctx, "dial", url, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		t.logger.Debug("WS write failed", zap.String("url", url), zap.Error(err))
		return nil, wsError(ctx, "write", url, err)
	}

	_, message, err := conn.ReadMessage()
	if err != nil {
		t.logger.Debug("WS read failed", zap.String("url", url), zap.Error(err))
		return nil, wsError(ctx, "read", url, err)
	}

	t.logger.Debug("WS received response", zap.String("url", url), zap.Int("bytes", len(message)))
	return message, nil
}

func wsError(ctx context.Context, op, url string, err error) error {
	var netErr interface{ Timeout() bool }
	if errors.Is(context.Cause(ctx), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: ws %s %s timed out: %v", apperrors.ErrTimeout, op, url, err)
	}
	return fmt.Errorf("%w: ws %s %s failed: %v", apperrors.ErrExternalServiceFailure, op, url, err)
}
