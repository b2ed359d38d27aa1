package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dto "uns-resolution/internal/adapter/storage/metadata/dto"
	"uns-resolution/internal/config"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	domainRepo "uns-resolution/internal/domain/repository"
	"uns-resolution/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.MetadataRepository = (*Repository)(nil)

const defaultRequestTimeout = 15 * time.Second

// Repository fetches token metadata documents over HTTP.
type Repository struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewRepository creates a new metadata repository instance.
func NewRepository(cfg config.MetadataConfig, logger *zap.Logger) *Repository {
	timeout := cfg.GetRequestTimeout()
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Repository{
		client:  &fasthttp.Client{},
		timeout: timeout,
		logger:  logger.Named("MetadataStorage"),
	}
}

// GetTokenMetadata fetches and parses the document served at uri.
func (r *Repository) GetTokenMetadata(ctx context.Context, uri string) (entity.TokenMetadata, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	if timeout <= 0 {
		return entity.TokenMetadata{}, fmt.Errorf("%w: deadline passed before fetching %s", apperrors.ErrTimeout, uri)
	}

	r.logger.Debug("Fetching token metadata", zap.String("uri", uri), zap.Duration("timeout", timeout))

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		r.logger.Warn("Failed to fetch token metadata", zap.String("uri", uri), zap.Error(err))
		if errors.Is(err, fasthttp.ErrTimeout) {
			return entity.TokenMetadata{}, fmt.Errorf("%w: metadata request to %s timed out: %v",
				apperrors.ErrTimeout, uri, err,
			)
		}
		return entity.TokenMetadata{}, fmt.Errorf("%w: metadata request to %s failed: %v",
			apperrors.ErrExternalServiceFailure, uri, err,
		)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		r.logger.Warn("Metadata source returned non-OK status",
			zap.String("uri", uri),
			zap.Int("statusCode", resp.StatusCode()),
		)
		if resp.StatusCode() == fasthttp.StatusNotFound {
			return entity.TokenMetadata{}, fmt.Errorf("%w: %w: metadata document %s",
				domain.ErrBadRequestOrResponse, apperrors.ErrNotFound, uri,
			)
		}
		return entity.TokenMetadata{}, fmt.Errorf("%w: metadata source %s returned status %d",
			domain.ErrBadRequestOrResponse, uri, resp.StatusCode(),
		)
	}

	body := resp.Body()
	if bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		unzipped, err := resp.BodyGunzip()
		if err != nil {
			return entity.TokenMetadata{}, fmt.Errorf("%w: failed to decompress metadata from %s: %v",
				domain.ErrBadRequestOrResponse, uri, err,
			)
		}
		body = unzipped
	}

	var raw dto.TokenMetadataRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		r.logger.Warn("Failed to parse token metadata",
			zap.String("uri", uri),
			zap.ByteString("bodySample", body[:min(512, len(body))]),
			zap.Error(err),
		)
		return entity.TokenMetadata{}, fmt.Errorf("%w: failed to parse metadata from %s: %v",
			domain.ErrBadRequestOrResponse, uri, err,
		)
	}

	return toDomainMetadata(raw), nil
}
