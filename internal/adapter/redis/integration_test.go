//go:build integration

package redis

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClient *redis.Client

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start Redis resource: %s", err)
	}

	if err := pool.Retry(func() error {
		var errRetry error
		testClient, errRetry = NewClient(context.Background(), config.RedisConfig{Addr: resource.GetHostPort("6379/tcp")})
		return errRetry
	}); err != nil {
		log.Fatalf("Could not connect to Redis: %s", err)
	}

	code := m.Run()

	_ = testClient.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge Redis resource: %s", err)
	}
	os.Exit(code)
}

func TestProductCache(t *testing.T) {
	ctx := context.Background()
	cache := NewProductCache(testClient)

	_, err := cache.Get(ctx, "missing")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	p := &entity.Product{ID: "507f1f77bcf86cd799439011", Title: "Beanie", Price: 12, Category: "hats", IsActive: true}
	require.NoError(t, cache.Set(ctx, p, time.Minute))

	got, err := cache.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)

	require.NoError(t, cache.Delete(ctx, p.ID))
	_, err = cache.Get(ctx, p.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(testClient)

	s := &entity.Session{TokenID: "jti-1", UserID: "u1", Role: entity.RoleAdmin, ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	ttl, err := testClient.TTL(ctx, sessionKeyPrefix+"jti-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "jti-1"))
	_, err = store.Get(ctx, "jti-1")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	expired := &entity.Session{TokenID: "jti-2", ExpiresAt: time.Now().Add(-time.Second)}
	assert.Error(t, store.Save(ctx, expired))
}
