package application

import (
	"context"
	"errors"
	"sync"

	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	domainService "uns-resolution/internal/domain/service"
	"uns-resolution/internal/metrics"

	"go.uber.org/zap"
)

// layerCall runs one operation against a single layer.
type layerCall[T any] func(ctx context.Context, svc domainService.NamingService) (T, error)

// dispatch runs call on every listed layer concurrently and waits for all
// of them. Layers that are not configured are skipped.
func dispatch[T any](
	ctx context.Context,
	s *resolutionService,
	operation string,
	layers []entity.Layer,
	call layerCall[T],
) map[entity.Layer]entity.LayerResult[T] {
	results := make(map[entity.Layer]entity.LayerResult[T], len(layers))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, layer := range layers {
		layer := layer
		svc, ok := s.services[layer]
		if !ok {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := call(ctx, svc)
			metrics.LayerResults.WithLabelValues(layer.String(), operation, metrics.Outcome(err)).Inc()
			if err != nil {
				s.logger.Debug("Layer call failed",
					zap.String("layer", layer.String()), zap.String("operation", operation), zap.Error(err),
				)
			}

			mu.Lock()
			results[layer] = entity.LayerResult[T]{Value: value, Err: err}
			mu.Unlock()
		}()
	}

	wg.Wait()
	return results
}

// priorityFallback walks the dispatched layers in priority order. An
// unregistered domain moves on to the next layer; any other error stops the
// walk. The last layer answers unconditionally.
func priorityFallback[T any](results map[entity.Layer]entity.LayerResult[T]) (T, error) {
	var zero T
	order := make([]entity.Layer, 0, len(results))
	for _, layer := range entity.PriorityOrder {
		if _, ok := results[layer]; ok {
			order = append(order, layer)
		}
	}
	if len(order) == 0 {
		return zero, domain.ErrUnknown
	}

	for i, layer := range order {
		result := results[layer]
		if i == len(order)-1 {
			return result.Value, result.Err
		}
		if result.Err == nil {
			return result.Value, nil
		}
		if !errors.Is(result.Err, domain.ErrUnregisteredDomain) {
			return zero, result.Err
		}
	}
	return zero, domain.ErrUnknown
}

// firstError returns the first failure in priority order.
func firstError[T any](results map[entity.Layer]entity.LayerResult[T]) error {
	for _, layer := range entity.PriorityOrder {
		if result, ok := results[layer]; ok && result.Err != nil {
			return result.Err
		}
	}
	return nil
}

// resolve runs a per-domain operation on every layer and merges by priority.
// The ZNS layer only runs for domains it supports.
func resolve[T any](ctx context.Context, s *resolutionService, operation, name string, call layerCall[T]) (T, error) {
	results := dispatch(ctx, s, operation, entity.PriorityOrder,
		func(ctx context.Context, svc domainService.NamingService) (T, error) {
			if svc.Layer() == entity.ZNSLayer && !svc.IsSupported(ctx, name) {
				var zero T
				return zero, domain.ErrUnregisteredDomain
			}
			return call(ctx, svc)
		},
	)
	return priorityFallback(results)
}
