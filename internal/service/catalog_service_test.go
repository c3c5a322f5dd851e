package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/identifier"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testProductID = "665f1c2ab4d3e2f1a0b9c8d7"

func TestCatalogService_Search(t *testing.T) {
	minPrice := 10.0
	filter := entity.CatalogFilter{Query: "linen", MinPrice: &minPrice}

	t.Run("passes filter through", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Search", mock.Anything, filter).Return([]*entity.Product{{ID: testProductID, Title: "Linen shirt"}}, nil).Once()
		svc := NewCatalogService(repo, nil, time.Minute, nil, logger.NewNop())

		products, err := svc.Search(context.Background(), filter)
		require.NoError(t, err)
		assert.Len(t, products, 1)
		repo.AssertExpectations(t)
	})

	t.Run("store outage yields empty list", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Search", mock.Anything, filter).Return(nil, repository.ErrStoreUnavailable).Once()
		m := metrics.NewMetricsManager("test")
		svc := NewCatalogService(repo, nil, time.Minute, m, logger.NewNop())

		products, err := svc.Search(context.Background(), filter)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogDegraded))
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Search", mock.Anything, mock.Anything).Return(nil, nil).Once()
		svc := NewCatalogService(repo, nil, time.Minute, nil, logger.NewNop())

		products, err := svc.Search(context.Background(), entity.CatalogFilter{})
		require.NoError(t, err)
		assert.NotNil(t, products)
	})
}

func TestCatalogService_GetProduct_ErrorKinds(t *testing.T) {
	oid, err := identifier.ToInternal(testProductID)
	require.NoError(t, err)

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewCatalogService(repo, nil, time.Minute, nil, logger.NewNop())

		_, err := svc.GetProduct(context.Background(), "not-an-id")
		assert.ErrorIs(t, err, ErrMalformedIdentifier)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("absent", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("GetByID", mock.Anything, oid).Return(nil, repository.ErrNotFound).Once()
		svc := NewCatalogService(repo, nil, time.Minute, nil, logger.NewNop())

		_, err := svc.GetProduct(context.Background(), testProductID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("store unavailable", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("GetByID", mock.Anything, oid).Return(nil, repository.ErrStoreUnavailable).Once()
		svc := NewCatalogService(repo, nil, time.Minute, nil, logger.NewNop())

		_, err := svc.GetProduct(context.Background(), testProductID)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestCatalogService_GetProduct_Cache(t *testing.T) {
	oid, err := identifier.ToInternal(testProductID)
	require.NoError(t, err)
	product := &entity.Product{ID: testProductID, Title: "Linen shirt", Category: "shirts"}

	t.Run("hit skips the store", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockProductCache)
		cache.On("Get", mock.Anything, testProductID).Return(product, nil).Once()
		m := metrics.NewMetricsManager("test")
		svc := NewCatalogService(repo, cache, time.Minute, m, logger.NewNop())

		got, err := svc.GetProduct(context.Background(), testProductID)
		require.NoError(t, err)
		assert.Equal(t, product, got)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ProductCacheLookups.WithLabelValues("hit")))
	})

	t.Run("miss fills the cache", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockProductCache)
		cache.On("Get", mock.Anything, testProductID).Return(nil, repository.ErrNotFound).Once()
		repo.On("GetByID", mock.Anything, oid).Return(product, nil).Once()
		cache.On("Set", mock.Anything, product, 5*time.Minute).Return(nil).Once()
		svc := NewCatalogService(repo, cache, 5*time.Minute, nil, logger.NewNop())

		got, err := svc.GetProduct(context.Background(), testProductID)
		require.NoError(t, err)
		assert.Equal(t, product, got)
		cache.AssertExpectations(t)
	})

	t.Run("upper-case id reads the canonical cache key", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockProductCache)
		cache.On("Get", mock.Anything, testProductID).Return(product, nil).Once()
		svc := NewCatalogService(repo, cache, time.Minute, nil, logger.NewNop())

		got, err := svc.GetProduct(context.Background(), strings.ToUpper(testProductID))
		require.NoError(t, err)
		assert.Equal(t, product, got)
		cache.AssertExpectations(t)
	})

	t.Run("broken cache falls back to the store", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockProductCache)
		cache.On("Get", mock.Anything, testProductID).Return(nil, errors.New("redis down")).Once()
		cache.On("Set", mock.Anything, product, time.Minute).Return(errors.New("redis down")).Once()
		repo.On("GetByID", mock.Anything, oid).Return(product, nil).Once()
		svc := NewCatalogService(repo, cache, time.Minute, nil, logger.NewNop())

		got, err := svc.GetProduct(context.Background(), testProductID)
		require.NoError(t, err)
		assert.Equal(t, product, got)
	})
}
