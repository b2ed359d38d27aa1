// Package bootstrap assembles the resolution service from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"uns-resolution/internal/adapter/naming"
	"uns-resolution/internal/adapter/rpc"
	"uns-resolution/internal/adapter/storage/memory"
	"uns-resolution/internal/adapter/storage/metadata"
	"uns-resolution/internal/adapter/storage/resources"
	"uns-resolution/internal/application"
	"uns-resolution/internal/application/port"
	"uns-resolution/internal/config"
	"uns-resolution/internal/domain/entity"
	domainRepo "uns-resolution/internal/domain/repository"
	domainService "uns-resolution/internal/domain/service"

	"go.uber.org/zap"
)

// NamingConfig converts one layer's settings into the resolver config.
func NamingConfig(layer config.LayerConfig) (entity.NamingServiceConfig, error) {
	providerURL, err := entity.NewRPCURL(layer.ProviderURL)
	if err != nil {
		return entity.NamingServiceConfig{}, err
	}
	return entity.NamingServiceConfig{
		ProviderURL:       providerURL,
		Network:           layer.Network,
		ProxyReader:       layer.ProxyReader,
		RegistryAddresses: layer.RegistryAddresses,
		Headers:           layer.Headers,
	}, nil
}

// BuildResolutionService wires the transport, the three naming layers and
// the metadata fetcher behind a resolution service. UNS layers without a
// configured network query it from their provider, so ctx bounds startup.
func BuildResolutionService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.ResolutionService, error) {
	logger.Info("Initializing resolution dependencies...")

	transport := rpc.NewTransport(cfg.Resolution.GetRequestTimeout(), logger)

	repo, err := resources.NewRepository()
	if err != nil {
		return nil, fmt.Errorf("load bundled resources: %w", err)
	}

	var metadataRepo domainRepo.MetadataRepository = metadata.NewRepository(cfg.Metadata, logger)
	if cfg.Cache.Enabled {
		cacheRepo := memory.NewCacheRepository(cfg.Cache, logger)
		metadataRepo = metadata.NewCachedRepository(metadataRepo, cacheRepo, cfg.Cache.GetDefaultExpiration(), logger)
	}

	layers := make([]domainService.NamingService, 0, 3)
	for _, l := range []struct {
		layer entity.Layer
		cfg   config.LayerConfig
	}{
		{entity.Layer1, cfg.Resolution.Layer1},
		{entity.Layer2, cfg.Resolution.Layer2},
	} {
		namingCfg, err := NamingConfig(l.cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.layer, err)
		}
		client := rpc.NewClient(transport, namingCfg.ProviderURL, namingCfg.Headers, logger)
		svc, err := naming.NewUNSLayer(ctx, l.layer, namingCfg, client, repo, metadataRepo, logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.layer, err)
		}
		layers = append(layers, svc)
	}

	znsCfg, err := NamingConfig(cfg.Resolution.ZNS)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entity.ZNSLayer, err)
	}
	zns, err := naming.NewZNSLayer(znsCfg, rpc.NewClient(transport, znsCfg.ProviderURL, znsCfg.Headers, logger), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entity.ZNSLayer, err)
	}
	layers = append(layers, zns)

	return application.NewResolutionService(logger, layers...)
}
