package http

import (
	"strconv"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	handler "uns-resolution/internal/adapter/handler/http"
	"uns-resolution/internal/metrics"
)

// NewRouter builds a router that records the matched route path, which the
// metrics middleware uses as the endpoint label.
func NewRouter() *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true
	return r
}

// RegisterRoutes sets up the resolution routes, the layer listing and the operational endpoints.
func RegisterRoutes(r *router.Router, h *handler.ResolutionHandler, logger *zap.Logger) {
	logger.Info("Setting up resolution routes...")

	domains := r.Group("/domains/{domain}")
	domains.GET("/owner", h.Owner)
	domains.GET("/resolver", h.Resolver)
	domains.GET("/records", h.Records)
	domains.GET("/records/{key}", h.Record)
	domains.GET("/addr/{ticker}", h.Addr)
	domains.GET("/addr/{network}/{token}", h.MultiChainAddr)
	domains.GET("/dns", h.DNS)
	domains.GET("/namehash", h.Namehash)

	r.GET("/tokens/{tokenId}/uri", h.TokenURI)
	r.GET("/tokens/{tokenId}/name", h.DomainName)

	r.GET("/reverse/{address}", h.Reverse)
	r.GET("/reverse/{address}/token", h.ReverseTokenID)

	r.POST("/batch/owners", h.BatchOwners)
	r.POST("/batch/locations", h.Locations)

	r.GET("/layers", h.Layers)

	logger.Info("Setting up health check and metrics routes...")
	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})
	r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))

	logger.Info("All routes registered.")
}

// Middleware logs every request and counts responses per route and status.
func Middleware(next fasthttp.RequestHandler, logger *zap.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		next(ctx)

		endpoint, _ := ctx.UserValue(router.MatchedRoutePathParam).(string)
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := ctx.Response.StatusCode()
		metrics.EndpointResponses.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()

		logger.Info("Request served",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()),
			zap.Int("status", status),
		)
	}
}
