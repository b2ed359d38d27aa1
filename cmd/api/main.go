package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	deliveryhttp "uns-resolution/internal/adapter/delivery/http"
	handlerhttp "uns-resolution/internal/adapter/handler/http"
	"uns-resolution/internal/bootstrap"
	"uns-resolution/internal/config"
	"uns-resolution/internal/logger"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	zapLogger, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	// --- Dependency Injection (Manual) ---
	startupCtx, cancel := context.WithTimeout(context.Background(), 2*cfg.Resolution.GetRequestTimeout())
	resolutionService, err := bootstrap.BuildResolutionService(startupCtx, cfg, zapLogger)
	cancel()
	if err != nil {
		zapLogger.Fatal("Failed to build resolution service", zap.Error(err))
	}
	for _, info := range resolutionService.Layers() {
		zapLogger.Info("Layer ready",
			zap.String("layer", info.Layer.String()),
			zap.String("network", info.Network),
			zap.Strings("registries", info.Registries),
		)
	}

	resolutionHandler := handlerhttp.NewResolutionHandler(resolutionService, zapLogger)

	// --- HTTP Router & Server ---
	zapLogger.Info("Setting up HTTP router...")
	r := deliveryhttp.NewRouter()
	deliveryhttp.RegisterRoutes(r, resolutionHandler, zapLogger)

	serverAddr := ":" + cfg.Server.Port
	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr))

	if err := fasthttp.ListenAndServe(serverAddr, deliveryhttp.Middleware(r.Handler, zapLogger)); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
