package service

import (
	"context"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/identifier"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("storefront-service/service")

type CatalogService interface {
	Search(ctx context.Context, filter entity.CatalogFilter) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	cache       repository.ProductCache
	cacheTTL    time.Duration
	metrics     *metrics.MetricsManager
	log         logger.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	cache repository.ProductCache,
	cacheTTL time.Duration,
	metricsManager *metrics.MetricsManager,
	log logger.Logger,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     metricsManager,
		log:         log,
	}
}

// Search never fails because the store is down: an unreachable store yields
// an empty page.
func (s *catalogService) Search(ctx context.Context, filter entity.CatalogFilter) ([]*entity.Product, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Search")
	defer span.End()

	products, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		s.log.Warnf("Catalog search degraded to empty result: %v", err)
		span.RecordError(err)
		s.metrics.CatalogDegradedResponse()
		return []*entity.Product{}, nil
	}
	if products == nil {
		products = []*entity.Product{}
	}
	span.SetAttributes(attribute.Int("catalog.results", len(products)))
	return products, nil
}

// GetProduct returns active and inactive products alike; the detail cache is
// consulted first and failures there only cost a store round trip.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.GetProduct")
	defer span.End()

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	id = identifier.ToPublic(oid)

	if s.cache != nil {
		cached, cacheErr := s.cache.Get(ctx, id)
		switch {
		case cacheErr == nil:
			s.metrics.CacheHit()
			return cached, nil
		case errors.Is(cacheErr, repository.ErrNotFound):
			s.metrics.CacheMiss()
		default:
			s.metrics.CacheMiss()
			s.log.Warnf("Product cache read failed for %s: %v", id, cacheErr)
		}
	}

	product, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("Failed to load product %s: %v", id, err)
		}
		return nil, storeFailure("get product", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product, s.cacheTTL); err != nil {
			s.log.Warnf("Failed to cache product %s: %v", id, err)
		}
	}
	return product, nil
}
