package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/identifier"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

// ImageStorage puts product images somewhere publicly addressable.
type ImageStorage interface {
	Upload(ctx context.Context, productID, fileName, contentType string, data []byte) (string, error)
}

type ProductAdminService interface {
	CreateProduct(ctx context.Context, input entity.ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id, fileName, contentType string, data []byte) (string, error)
}

type productAdminService struct {
	productRepo  repository.ProductRepository
	cache        repository.ProductCache
	images       ImageStorage
	msgPublisher nats.MessagePublisher
	log          logger.Logger
	now          func() time.Time
}

// NewProductAdminService accepts a nil cache and a nil image storage; uploads
// then fail with ErrUploadsDisabled.
func NewProductAdminService(
	productRepo repository.ProductRepository,
	cache repository.ProductCache,
	images ImageStorage,
	msgPublisher nats.MessagePublisher,
	log logger.Logger,
) ProductAdminService {
	return &productAdminService{
		productRepo:  productRepo,
		cache:        cache,
		images:       images,
		msgPublisher: msgPublisher,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *productAdminService) CreateProduct(ctx context.Context, input entity.ProductInput) (*entity.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductAdminService.CreateProduct")
	defer span.End()

	product, err := entity.NewProduct(input)
	if err != nil {
		return nil, err
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.log.Errorf("Failed to insert product %q: %v", product.Title, err)
		return nil, storeFailure("create product", err)
	}
	product.ID = id

	s.publish(ctx, SubjectProductCreated, newProductEvent(product))
	s.log.Infof("Product %s created", id)
	return product, nil
}

// UpdateProduct merges the patch into the stored product and writes it back
// only if the merged product passes validation.
func (s *productAdminService) UpdateProduct(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductAdminService.UpdateProduct")
	defer span.End()

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	id = identifier.ToPublic(oid)

	current, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, storeFailure("load product for update", err)
	}

	updated, err := patch.Apply(*current, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, oid, updated); err != nil {
		s.log.Errorf("Failed to update product %s: %v", id, err)
		return nil, storeFailure("update product", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, SubjectProductUpdated, newProductEvent(updated))
	s.log.Infof("Product %s updated", id)
	return updated, nil
}

// DeleteProduct removes the document outright. Orders referencing it keep
// their own copy of title and price.
func (s *productAdminService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "ProductAdminService.DeleteProduct")
	defer span.End()

	oid, err := parseID(id)
	if err != nil {
		return err
	}
	id = identifier.ToPublic(oid)

	if err := s.productRepo.Delete(ctx, oid); err != nil {
		return storeFailure("delete product", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, SubjectProductDeleted, ProductEvent{ProductID: id, OccurredAt: s.now()})
	s.log.Infof("Product %s deleted", id)
	return nil
}

func (s *productAdminService) UploadImage(ctx context.Context, id, fileName, contentType string, data []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "ProductAdminService.UploadImage")
	defer span.End()

	if s.images == nil {
		return "", ErrUploadsDisabled
	}

	oid, err := parseID(id)
	if err != nil {
		return "", err
	}
	id = identifier.ToPublic(oid)

	current, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		return "", storeFailure("load product for image upload", err)
	}

	url, err := s.images.Upload(ctx, id, fileName, contentType, data)
	if err != nil {
		s.log.Errorf("Failed to upload image for product %s: %v", id, err)
		return "", fmt.Errorf("upload image: %w", err)
	}

	images := append(append([]string{}, current.Images...), url)
	updated, err := entity.ProductPatch{Images: &images}.Apply(*current, s.now())
	if err != nil {
		return "", err
	}
	if err := s.productRepo.Update(ctx, oid, updated); err != nil {
		return "", storeFailure("attach image to product", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, SubjectProductUpdated, newProductEvent(updated))
	return url, nil
}

func (s *productAdminService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warnf("Failed to invalidate cached product %s: %v", id, err)
	}
}

func (s *productAdminService) publish(ctx context.Context, subject string, event interface{}) {
	if err := s.msgPublisher.Publish(ctx, subject, event); err != nil {
		s.log.Warnf("Failed to publish %s event: %v", subject, err)
	}
}
