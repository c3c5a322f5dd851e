package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const productDetailCacheKeyPrefix = "product_detail:"

type productCache struct {
	client redis.Cmdable
}

func NewProductCache(client redis.Cmdable) repository.ProductCache {
	return &productCache{client: client}
}

func productKey(productID string) string {
	return productDetailCacheKeyPrefix + productID
}

func (c *productCache) Get(ctx context.Context, productID string) (*entity.Product, error) {
	val, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get product %s from redis: %w", productID, err)
	}

	var product entity.Product
	if err := json.Unmarshal(val, &product); err != nil {
		_ = c.Delete(ctx, productID)
		return nil, fmt.Errorf("unmarshal cached product %s: %w", productID, err)
	}
	return &product, nil
}

func (c *productCache) Set(ctx context.Context, product *entity.Product, ttl time.Duration) error {
	if product == nil || product.ID == "" {
		return errors.New("cannot cache a product without an id")
	}

	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product %s: %w", product.ID, err)
	}

	if err := c.client.Set(ctx, productKey(product.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("set product %s in redis: %w", product.ID, err)
	}
	return nil
}

func (c *productCache) Delete(ctx context.Context, productID string) error {
	if err := c.client.Del(ctx, productKey(productID)).Err(); err != nil {
		return fmt.Errorf("delete product %s from redis: %w", productID, err)
	}
	return nil
}
