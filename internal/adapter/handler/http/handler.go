package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"uns-resolution/internal/application/port"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	"uns-resolution/internal/pkg/apperrors"
)

type ResolutionHandler struct {
	service port.ResolutionService
	logger  *zap.Logger
}

func NewResolutionHandler(service port.ResolutionService, logger *zap.Logger) *ResolutionHandler {
	return &ResolutionHandler{
		service: service,
		logger:  logger.Named("ResolutionHandler"),
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BatchRequest is the body of the batch endpoints.
type BatchRequest struct {
	Domains []string `json:"domains"`
}

// errorKinds maps sentinels to their wire code and status, most specific first.
var errorKinds = []struct {
	err    error
	code   string
	status int
}{
	{domain.ErrUnregisteredDomain, "unregisteredDomain", fasthttp.StatusNotFound},
	{domain.ErrRecordNotFound, "recordNotFound", fasthttp.StatusNotFound},
	{domain.ErrUnspecifiedResolver, "unspecifiedResolver", fasthttp.StatusNotFound},
	{domain.ErrReverseResolutionNotSpecified, "reverseResolutionNotSpecified", fasthttp.StatusNotFound},
	{domain.ErrInvalidDomainName, "invalidDomainName", fasthttp.StatusBadRequest},
	{domain.ErrUnsupportedDomain, "unsupportedDomain", fasthttp.StatusBadRequest},
	{domain.ErrInconsistentDomainArray, "inconsistentDomainArray", fasthttp.StatusBadRequest},
	{domain.ErrUnsupportedServiceName, "unsupportedServiceName", fasthttp.StatusBadRequest},
	{domain.ErrRecordNotSupported, "recordNotSupported", fasthttp.StatusBadRequest},
	{apperrors.ErrInvalidInput, "invalidInput", fasthttp.StatusBadRequest},
	{domain.ErrMethodNotSupported, "methodNotSupported", fasthttp.StatusNotImplemented},
	{domain.ErrRequestBeingRateLimited, "requestBeingRateLimited", fasthttp.StatusTooManyRequests},
	{domain.ErrTooManyResponses, "tooManyResponses", fasthttp.StatusTooManyRequests},
	{domain.ErrUnauthenticatedRequest, "unauthenticatedRequest", fasthttp.StatusBadGateway},
	{domain.ErrExecutionReverted, "executionReverted", fasthttp.StatusBadGateway},
	{domain.ErrBadRequestOrResponse, "badRequestOrResponse", fasthttp.StatusBadGateway},
	{apperrors.ErrTimeout, "timeout", fasthttp.StatusGatewayTimeout},
}

// classify returns the wire code and status for err.
func classify(err error) (string, int) {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.err) {
			return kind.code, kind.status
		}
	}
	return "unknown", fasthttp.StatusInternalServerError
}

func (h *ResolutionHandler) writeError(ctx *fasthttp.RequestCtx, err error) {
	code, status := classify(err)
	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error("Request failed", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	}
	h.writeJSON(ctx, status, ErrorResponse{Error: code, Message: err.Error()})
}

func (h *ResolutionHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func userValue(ctx *fasthttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}

// listArg splits a comma separated query argument.
func listArg(ctx *fasthttp.RequestCtx, name string) []string {
	raw := string(ctx.QueryArgs().Peek(name))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func locationArg(ctx *fasthttp.RequestCtx) (*entity.Layer, error) {
	raw := string(ctx.QueryArgs().Peek("location"))
	if raw == "" {
		return nil, nil
	}
	layer, err := entity.ParseLayer(raw)
	if err != nil {
		return nil, err
	}
	return &layer, nil
}

// Owner handles GET /domains/{domain}/owner.
func (h *ResolutionHandler) Owner(ctx *fasthttp.RequestCtx) {
	owner, err := h.service.Owner(ctx, userValue(ctx, "domain"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"owner": owner})
}

// Resolver handles GET /domains/{domain}/resolver.
func (h *ResolutionHandler) Resolver(ctx *fasthttp.RequestCtx) {
	resolver, err := h.service.Resolver(ctx, userValue(ctx, "domain"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"resolver": resolver})
}

// Records handles GET /domains/{domain}/records. Without keys every known record is returned.
func (h *ResolutionHandler) Records(ctx *fasthttp.RequestCtx) {
	name := userValue(ctx, "domain")
	var (
		records map[string]string
		err     error
	)
	if keys := listArg(ctx, "keys"); len(keys) > 0 {
		records, err = h.service.Records(ctx, name, keys)
	} else {
		records, err = h.service.AllRecords(ctx, name)
	}
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"records": records})
}

// Record handles GET /domains/{domain}/records/{key}.
func (h *ResolutionHandler) Record(ctx *fasthttp.RequestCtx) {
	key := userValue(ctx, "key")
	value, err := h.service.Record(ctx, userValue(ctx, "domain"), key)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"key": key, "value": value})
}

// Addr handles GET /domains/{domain}/addr/{ticker}.
func (h *ResolutionHandler) Addr(ctx *fasthttp.RequestCtx) {
	addr, err := h.service.Addr(ctx, userValue(ctx, "domain"), userValue(ctx, "ticker"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"address": addr})
}

// MultiChainAddr handles GET /domains/{domain}/addr/{network}/{token}.
func (h *ResolutionHandler) MultiChainAddr(ctx *fasthttp.RequestCtx) {
	addr, err := h.service.MultiChainAddr(ctx, userValue(ctx, "domain"), userValue(ctx, "network"), userValue(ctx, "token"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"address": addr})
}

// DNS handles GET /domains/{domain}/dns?types=A,AAAA.
func (h *ResolutionHandler) DNS(ctx *fasthttp.RequestCtx) {
	types := listArg(ctx, "types")
	if len(types) == 0 {
		h.writeError(ctx, fmt.Errorf("%w: types query parameter is required", apperrors.ErrInvalidInput))
		return
	}
	records, err := h.service.DNS(ctx, userValue(ctx, "domain"), types)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	if records == nil {
		records = []entity.DNSRecord{}
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"records": records})
}

// Namehash handles GET /domains/{domain}/namehash.
func (h *ResolutionHandler) Namehash(ctx *fasthttp.RequestCtx) {
	hash, err := h.service.Namehash(userValue(ctx, "domain"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"namehash": hash})
}

// TokenURI handles GET /tokens/{tokenId}/uri.
func (h *ResolutionHandler) TokenURI(ctx *fasthttp.RequestCtx) {
	uri, err := h.service.TokenURI(ctx, userValue(ctx, "tokenId"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"uri": uri})
}

// DomainName handles GET /tokens/{tokenId}/name.
func (h *ResolutionHandler) DomainName(ctx *fasthttp.RequestCtx) {
	name, err := h.service.DomainName(ctx, userValue(ctx, "tokenId"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"domain": name})
}

// Reverse handles GET /reverse/{address}.
func (h *ResolutionHandler) Reverse(ctx *fasthttp.RequestCtx) {
	location, err := locationArg(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	name, err := h.service.Reverse(ctx, userValue(ctx, "address"), location)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"domain": name})
}

// ReverseTokenID handles GET /reverse/{address}/token.
func (h *ResolutionHandler) ReverseTokenID(ctx *fasthttp.RequestCtx) {
	location, err := locationArg(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	tokenID, err := h.service.ReverseTokenID(ctx, userValue(ctx, "address"), location)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"tokenId": tokenID})
}

func (h *ResolutionHandler) batchDomains(ctx *fasthttp.RequestCtx) ([]string, bool) {
	var req BatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.writeError(ctx, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err))
		return nil, false
	}
	if len(req.Domains) == 0 {
		h.writeError(ctx, fmt.Errorf("%w: domains must not be empty", apperrors.ErrInvalidInput))
		return nil, false
	}
	return req.Domains, true
}

// BatchOwners handles POST /batch/owners.
func (h *ResolutionHandler) BatchOwners(ctx *fasthttp.RequestCtx) {
	domains, ok := h.batchDomains(ctx)
	if !ok {
		return
	}
	owners, err := h.service.BatchOwners(ctx, domains)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"owners": owners})
}

// Locations handles POST /batch/locations.
func (h *ResolutionHandler) Locations(ctx *fasthttp.RequestCtx) {
	domains, ok := h.batchDomains(ctx)
	if !ok {
		return
	}
	locations, err := h.service.Locations(ctx, domains)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"locations": locations})
}

// Layers handles GET /layers.
func (h *ResolutionHandler) Layers(ctx *fasthttp.RequestCtx) {
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"layers": h.service.Layers()})
}
