package http

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	"uns-resolution/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type mockResolutionService struct {
	mock.Mock
}

func (m *mockResolutionService) IsSupported(ctx context.Context, name string) bool {
	return m.Called(ctx, name).Bool(0)
}

func (m *mockResolutionService) Namehash(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) Owner(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) Resolver(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) Record(ctx context.Context, name, key string) (string, error) {
	args := m.Called(ctx, name, key)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) Records(ctx context.Context, name string, keys []string) (map[string]string, error) {
	args := m.Called(ctx, name, keys)
	records, _ := args.Get(0).(map[string]string)
	return records, args.Error(1)
}

func (m *mockResolutionService) AllRecords(ctx context.Context, name string) (map[string]string, error) {
	args := m.Called(ctx, name)
	records, _ := args.Get(0).(map[string]string)
	return records, args.Error(1)
}

func (m *mockResolutionService) Addr(ctx context.Context, name, ticker string) (string, error) {
	args := m.Called(ctx, name, ticker)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) MultiChainAddr(ctx context.Context, name, network, token string) (string, error) {
	args := m.Called(ctx, name, network, token)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) DNS(ctx context.Context, name string, types []string) ([]entity.DNSRecord, error) {
	args := m.Called(ctx, name, types)
	records, _ := args.Get(0).([]entity.DNSRecord)
	return records, args.Error(1)
}

func (m *mockResolutionService) TokenURI(ctx context.Context, tokenID string) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) DomainName(ctx context.Context, tokenID string) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) ReverseTokenID(ctx context.Context, address string, location *entity.Layer) (string, error) {
	args := m.Called(ctx, address, location)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) Reverse(ctx context.Context, address string, location *entity.Layer) (string, error) {
	args := m.Called(ctx, address, location)
	return args.String(0), args.Error(1)
}

func (m *mockResolutionService) Locations(ctx context.Context, names []string) (map[string]entity.Location, error) {
	args := m.Called(ctx, names)
	locations, _ := args.Get(0).(map[string]entity.Location)
	return locations, args.Error(1)
}

func (m *mockResolutionService) BatchOwners(ctx context.Context, names []string) (map[string]string, error) {
	args := m.Called(ctx, names)
	owners, _ := args.Get(0).(map[string]string)
	return owners, args.Error(1)
}

func (m *mockResolutionService) Layers() []entity.LayerInfo {
	return m.Called().Get(0).([]entity.LayerInfo)
}

func newRequest(method, uri, body string, values map[string]string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	for k, v := range values {
		ctx.SetUserValue(k, v)
	}
	return ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &out))
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{fmt.Errorf("%w: brad.crypto", domain.ErrUnregisteredDomain), "unregisteredDomain", 404},
		{domain.RecordNotFound("layer1"), "recordNotFound", 404},
		{domain.UnspecifiedResolver("znsLayer"), "unspecifiedResolver", 404},
		{domain.ErrInvalidDomainName, "invalidDomainName", 400},
		{domain.ErrInconsistentDomainArray, "inconsistentDomainArray", 400},
		{domain.ErrMethodNotSupported, "methodNotSupported", 501},
		{fmt.Errorf("%w: %w", apperrors.ErrExternalServiceFailure, domain.ErrRequestBeingRateLimited), "requestBeingRateLimited", 429},
		{fmt.Errorf("%w: %w", apperrors.ErrExternalServiceFailure, domain.ErrUnauthenticatedRequest), "unauthenticatedRequest", 502},
		{domain.ErrExecutionReverted, "executionReverted", 502},
		{apperrors.ErrTimeout, "timeout", 504},
		{apperrors.ErrExternalServiceFailure, "unknown", 500},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			code, status := classify(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestResolutionHandler_Owner(t *testing.T) {
	svc := &mockResolutionService{}
	h := NewResolutionHandler(svc, zap.NewNop())

	svc.On("Owner", mock.Anything, "brad.crypto").Return("0x8aaD44321A86b170879d7A244c1e8d360c99DdA8", nil)
	ctx := newRequest("GET", "/domains/brad.crypto/owner", "", map[string]string{"domain": "brad.crypto"})
	h.Owner(ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "0x8aaD44321A86b170879d7A244c1e8d360c99DdA8", decode(t, ctx)["owner"])

	svc.On("Owner", mock.Anything, "nobody.crypto").Return("", domain.ErrUnregisteredDomain)
	ctx = newRequest("GET", "/domains/nobody.crypto/owner", "", map[string]string{"domain": "nobody.crypto"})
	h.Owner(ctx)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	body := decode(t, ctx)
	assert.Equal(t, "unregisteredDomain", body["error"])
	assert.Equal(t, domain.ErrUnregisteredDomain.Error(), body["message"])
}

func TestResolutionHandler_Records(t *testing.T) {
	svc := &mockResolutionService{}
	h := NewResolutionHandler(svc, zap.NewNop())
	values := map[string]string{"domain": "brad.crypto"}

	svc.On("Records", mock.Anything, "brad.crypto", []string{"a", "b"}).Return(map[string]string{"a": "1", "b": ""}, nil)
	ctx := newRequest("GET", "/domains/brad.crypto/records?keys=a,%20b", "", values)
	h.Records(ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, map[string]any{"a": "1", "b": ""}, decode(t, ctx)["records"])

	svc.On("AllRecords", mock.Anything, "brad.crypto").Return(map[string]string{"a": "1"}, nil)
	ctx = newRequest("GET", "/domains/brad.crypto/records", "", values)
	h.Records(ctx)
	assert.Equal(t, map[string]any{"a": "1"}, decode(t, ctx)["records"])
	svc.AssertExpectations(t)
}

func TestResolutionHandler_DNSRequiresTypes(t *testing.T) {
	h := NewResolutionHandler(&mockResolutionService{}, zap.NewNop())
	ctx := newRequest("GET", "/domains/brad.crypto/dns", "", map[string]string{"domain": "brad.crypto"})
	h.DNS(ctx)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "invalidInput", decode(t, ctx)["error"])
}

func TestResolutionHandler_ReverseLocation(t *testing.T) {
	svc := &mockResolutionService{}
	h := NewResolutionHandler(svc, zap.NewNop())
	const addr = "0x8aaD44321A86b170879d7A244c1e8d360c99DdA8"

	layer2 := entity.Layer2
	svc.On("ReverseTokenID", mock.Anything, addr, &layer2).Return("0x01", nil)
	ctx := newRequest("GET", "/reverse/"+addr+"/token?location=layer2", "", map[string]string{"address": addr})
	h.ReverseTokenID(ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "0x01", decode(t, ctx)["tokenId"])

	ctx = newRequest("GET", "/reverse/"+addr+"?location=layer9", "", map[string]string{"address": addr})
	h.Reverse(ctx)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "unsupportedServiceName", decode(t, ctx)["error"])
}

func TestResolutionHandler_Batch(t *testing.T) {
	svc := &mockResolutionService{}
	h := NewResolutionHandler(svc, zap.NewNop())

	domains := []string{"a.crypto", "b.crypto"}
	svc.On("BatchOwners", mock.Anything, domains).Return(map[string]string{"a.crypto": "0x1", "b.crypto": ""}, nil)
	ctx := newRequest("POST", "/batch/owners", `{"domains":["a.crypto","b.crypto"]}`, nil)
	h.BatchOwners(ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, map[string]any{"a.crypto": "0x1", "b.crypto": ""}, decode(t, ctx)["owners"])

	ctx = newRequest("POST", "/batch/locations", `{"domains":[]}`, nil)
	h.Locations(ctx)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = newRequest("POST", "/batch/locations", `not json`, nil)
	h.Locations(ctx)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	svc.On("Locations", mock.Anything, []string{"a.crypto", "a.zil"}).Return(nil, domain.ErrInconsistentDomainArray)
	ctx = newRequest("POST", "/batch/locations", `{"domains":["a.crypto","a.zil"]}`, nil)
	h.Locations(ctx)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "inconsistentDomainArray", decode(t, ctx)["error"])
}

func TestResolutionHandler_MethodNotSupported(t *testing.T) {
	svc := &mockResolutionService{}
	h := NewResolutionHandler(svc, zap.NewNop())
	svc.On("MultiChainAddr", mock.Anything, "brad.zil", "ETH", "USDT").Return("", domain.ErrMethodNotSupported)

	ctx := newRequest("GET", "/domains/brad.zil/addr/ETH/USDT", "", map[string]string{
		"domain": "brad.zil", "network": "ETH", "token": "USDT",
	})
	h.MultiChainAddr(ctx)
	assert.Equal(t, fasthttp.StatusNotImplemented, ctx.Response.StatusCode())
}
